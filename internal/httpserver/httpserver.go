package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps the routes, starts the HTTP server and blocks until a
// shutdown signal, then drains in-flight requests.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Fatalf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		}
	}()

	srv.logger.Infof(ctx, "HTTP server started on port: %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	srv.logger.Info(ctx, <-ch)
	srv.logger.Info(ctx, "Stopping alert API...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "HTTP server shutdown error: %v", err)
		return err
	}

	return nil
}
