package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

const defaultTimeout = 10 * time.Second

var errWebhookRequired = errors.New("slack: webhook URL is required")

// ISlack posts rendered messages to per-user incoming webhooks.
type ISlack interface {
	SendWebhook(ctx context.Context, webhookURL string, msg Message) error
	Close() error
}

// New creates a Slack webhook sender. Logger can be nil; a zero
// timeout falls back to the package default.
func New(l log.Logger, timeout time.Duration) ISlack {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &slackImpl{
		l: l,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

// SendWebhook posts one message. A non-200 response is an error
// carrying the status code.
func (s *slackImpl) SendWebhook(ctx context.Context, webhookURL string, msg Message) error {
	if webhookURL == "" {
		return errWebhookRequired
	}

	payload := buildPayload(msg)
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("slack: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack: webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if s.l != nil {
		s.l.Debugf(ctx, "pkg.slack.SendWebhook: message posted")
	}
	return nil
}

func buildPayload(msg Message) webhookPayload {
	payload := webhookPayload{Text: msg.Title}

	if msg.Title != "" {
		payload.Blocks = append(payload.Blocks, block{
			Type: "header",
			Text: &textObject{Type: "plain_text", Text: msg.Title},
		})
	}

	if len(msg.Fields) > 0 {
		fields := make([]textObject, 0, len(msg.Fields))
		for _, f := range msg.Fields {
			fields = append(fields, textObject{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s:*\n%s", f.Name, f.Value),
			})
		}
		payload.Blocks = append(payload.Blocks, block{Type: "section", Fields: fields})
	}

	if msg.Text != "" {
		payload.Blocks = append(payload.Blocks, block{
			Type: "section",
			Text: &textObject{Type: "mrkdwn", Text: msg.Text},
		})
	}

	return payload
}

func (s *slackImpl) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Truncate keeps field values inside Slack's text object limits.
func Truncate(v string, max int) string {
	if len(v) <= max {
		return v
	}
	if max < 3 {
		return v[:max]
	}
	return strings.TrimSpace(v[:max-3]) + "..."
}
