package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// DefaultMaxAlertsPerDay is applied when preferences are created lazily
// on first access.
const DefaultMaxAlertsPerDay = 10

// NotificationPreferences is one per user, created with defaults on
// first access and mutated only by the settings surface.
// Quiet hours are HH:MM strings local to Timezone and may wrap past
// midnight (e.g. 22:00-08:00).
type NotificationPreferences struct {
	UserID          string      `json:"user_id"`
	MaxAlertsPerDay int         `json:"max_alerts_per_day"`
	QuietHoursStart null.String `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   null.String `json:"quiet_hours_end,omitempty"`
	Timezone        string      `json:"timezone"`
	EmailEnabled    bool        `json:"email_enabled"`
	SMSEnabled      bool        `json:"sms_enabled"`
	SlackEnabled    bool        `json:"slack_enabled"`
	PhoneNumber     null.String `json:"phone_number,omitempty"`
	SlackWebhookURL null.String `json:"slack_webhook_url,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// DefaultPreferences returns the row written on first access.
func DefaultPreferences(userID string) NotificationPreferences {
	return NotificationPreferences{
		UserID:          userID,
		MaxAlertsPerDay: DefaultMaxAlertsPerDay,
		Timezone:        "America/New_York",
		EmailEnabled:    true,
	}
}

// Location resolves the stored timezone, falling back to UTC when the
// name does not load.
func (p NotificationPreferences) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}
