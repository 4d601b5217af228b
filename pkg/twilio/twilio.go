package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

const (
	messagesURLTemplate = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

	defaultTimeout = 10 * time.Second
)

var errCredentialsRequired = errors.New("twilio: account SID, auth token and from number are required")

// ITwilio sends SMS through the Twilio REST API.
type ITwilio interface {
	SendSMS(ctx context.Context, to, body string) error
	Close() error
}

// Config holds Twilio sender settings. A zero Timeout falls back to
// the package default.
type Config struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Timeout    time.Duration
}

type twilioImpl struct {
	l      log.Logger
	cfg    Config
	client *http.Client
}

// New creates a Twilio sender. Logger can be nil.
func New(l log.Logger, cfg Config) (ITwilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, errCredentialsRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &twilioImpl{
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

// SendSMS posts one message. To must be E.164. A non-201 response is an
// error carrying the status code.
func (t *twilioImpl) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf(messagesURLTemplate, t.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: failed to create request: %w", err)
	}
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio: returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if t.l != nil {
		t.l.Debugf(ctx, "pkg.twilio.SendSMS: delivered to %s", to)
	}
	return nil
}

func (t *twilioImpl) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
