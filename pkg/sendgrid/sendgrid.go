package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

const (
	sendURL = "https://api.sendgrid.com/v3/mail/send"

	defaultTimeout = 10 * time.Second
)

var errAPIKeyRequired = errors.New("sendgrid: API key is required")

// ISendGrid sends transactional email through the SendGrid v3 API.
type ISendGrid interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
	Close() error
}

// New creates a SendGrid sender. Logger can be nil.
func New(l log.Logger, cfg Config) (ISendGrid, error) {
	if cfg.APIKey == "" {
		return nil, errAPIKeyRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &sendgridImpl{
		l:   l,
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}, nil
}

// SendEmail posts one HTML email. A non-202 response is an error
// carrying the status code.
func (s *sendgridImpl) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	payload := sendRequest{
		Personalizations: []personalization{{To: []mailAddress{{Email: to}}}},
		From:             mailAddress{Email: s.cfg.FromEmail, Name: s.cfg.FromName},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/html", Value: htmlBody}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("sendgrid: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid: returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if s.l != nil {
		s.l.Debugf(ctx, "pkg.sendgrid.SendEmail: delivered to %s", to)
	}
	return nil
}

func (s *sendgridImpl) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
