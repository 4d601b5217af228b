package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// AlertType classifies watchlist alerts.
type AlertType string

const (
	AlertTypeDateWindow     AlertType = "date_window"
	AlertTypeTimelineChange AlertType = "timeline_change"
	AlertTypeRedFlag        AlertType = "red_flag"
)

// IsValid reports whether the alert type is one of the known values.
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeDateWindow, AlertTypeTimelineChange, AlertTypeRedFlag:
		return true
	}
	return false
}

// Severity is the urgency of an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// IsValid reports whether the severity is one of the known values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// Channel is a notification delivery channel.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelSlack Channel = "slack"
)

// IsValid reports whether the channel is one of the known values.
func (ch Channel) IsValid() bool {
	switch ch {
	case ChannelEmail, ChannelSMS, ChannelSlack:
		return true
	}
	return false
}

// TierPro is the subscription tier that unlocks SMS and Slack delivery.
// Tier values are produced by the subscription system and consumed as
// opaque strings; only this one carries meaning here.
const TierPro = "pro"

// AlertContent is the rendered snapshot persisted with a notification.
// It is what every channel formats from, so a delivered alert can be
// reproduced later exactly as the user saw it.
type AlertContent struct {
	// Summary is a one-line trigger description. Watchlist alerts set
	// it; saved-search snapshots build their headline from the fields.
	Summary        string   `json:"summary,omitempty"`
	SearchName     string   `json:"search_name"`
	Ticker         string   `json:"ticker"`
	Phase          string   `json:"phase"`
	Indication     string   `json:"indication"`
	CompletionDate string   `json:"completion_date"`
	DaysUntil      null.Int `json:"days_until,omitempty"`
	MarketCap      string   `json:"market_cap"`
	Enrollment     null.Int `json:"enrollment,omitempty"`
	CatalystID     string   `json:"catalyst_id"`
}

// AlertNotification is the delivery record for a saved-search match.
// At most one exists per (search, catalyst) pair; that pair is the
// dedup key enforced by a unique constraint.
type AlertNotification struct {
	ID           string       `json:"id"`
	SearchID     string       `json:"search_id"`
	CatalystID   string       `json:"catalyst_id"`
	UserID       string       `json:"user_id"`
	Channels     []Channel    `json:"channels"`
	Content      AlertContent `json:"content"`
	SentAt       time.Time    `json:"sent_at"`
	Acknowledged bool         `json:"acknowledged"`
}

// Alert is a watchlist alert (date window, timeline change or red flag).
// Append-only; acknowledgement is the only mutation.
type Alert struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Ticker         string      `json:"ticker"`
	Type           AlertType   `json:"alert_type"`
	Severity       Severity    `json:"severity"`
	TriggerEvent   string      `json:"trigger_event"`
	CatalystID     null.String `json:"catalyst_id,omitempty"`
	ThresholdDays  null.Int    `json:"threshold_days,omitempty"`
	Condition      null.String `json:"condition,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	AcknowledgedAt null.Time   `json:"acknowledged_at,omitempty"`
}

// Acknowledged reports whether the alert has been acknowledged.
func (a Alert) IsAcknowledged() bool {
	return a.AcknowledgedAt.Valid
}
