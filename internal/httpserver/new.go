package httpserver

import (
	"database/sql"
	"errors"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	pkgLog "github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	pkgRedis "github.com/UMwai/um-biotech-catalyst-radar/pkg/redis"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"

	"github.com/gin-gonic/gin"
)

// HTTPServer is the alert API server. New() only wires dependencies
// and validates them; Run() (in httpserver.go) starts serving.
type HTTPServer struct {
	gin         *gin.Engine
	logger      pkgLog.Logger
	port        int
	environment string

	// Domain surface
	alertingUC alerting.UseCase
	searchUC   search.UseCase

	// Auth & security
	jwtMgr scope.Manager

	// External services, checked by the health endpoints. Redis may
	// be nil when disabled: the engine degrades without it.
	db    *sql.DB
	redis pkgRedis.IRedis
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port        int
	Mode        string
	Environment string

	AlertingUC alerting.UseCase
	SearchUC   search.UseCase

	JWTManager scope.Manager

	DB    *sql.DB
	Redis pkgRedis.IRedis
}

// New creates a new HTTPServer instance with the provided configuration.
// It does not start any goroutines; use (*HTTPServer).Run().
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:         gin.New(),
		logger:      logger,
		port:        cfg.Port,
		environment: cfg.Environment,

		alertingUC: cfg.AlertingUC,
		searchUC:   cfg.SearchUC,

		jwtMgr: cfg.JWTManager,

		db:    cfg.DB,
		redis: cfg.Redis,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.alertingUC == nil {
		return errors.New("alerting usecase is required")
	}
	if s.searchUC == nil {
		return errors.New("search usecase is required")
	}
	if s.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if s.db == nil {
		return errors.New("database handle is required")
	}

	return nil
}
