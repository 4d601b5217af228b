package sendgrid

import (
	"net/http"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

// Config holds SendGrid sender settings. A zero Timeout falls back to
// the package default.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

type sendgridImpl struct {
	l      log.Logger
	cfg    Config
	client *http.Client
}

// request/response shapes for the v3 mail send API.

type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type personalization struct {
	To []mailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             mailAddress       `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}
