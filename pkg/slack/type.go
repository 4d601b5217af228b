package slack

import (
	"net/http"

	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
)

// Field is one labeled value in a message section.
type Field struct {
	Name  string
	Value string
}

// Message is the rendered payload for one webhook post.
type Message struct {
	Title  string
	Text   string
	Fields []Field
}

// Config holds Slack sender settings.
type Config struct {
	Timeout int // seconds; 0 means default
}

type slackImpl struct {
	l      log.Logger
	client *http.Client
}

// Block Kit shapes, limited to what alert messages use.

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type   string        `json:"type"`
	Text   *textObject   `json:"text,omitempty"`
	Fields []textObject  `json:"fields,omitempty"`
}

type webhookPayload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks,omitempty"`
}
