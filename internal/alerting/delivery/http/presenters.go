package http

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"

	"github.com/aarondl/null/v8"
)

type listAlertsReq struct {
	UnreadOnly    bool `form:"unread_only"`
	PaginateQuery paginator.PaginateQuery
}

func (r listAlertsReq) toInput() alerting.ListAlertsInput {
	return alerting.ListAlertsInput{
		UnreadOnly:    r.UnreadOnly,
		PaginateQuery: r.PaginateQuery,
	}
}

type alertItem struct {
	ID             string    `json:"id"`
	Ticker         string    `json:"ticker"`
	Type           string    `json:"alert_type"`
	Severity       string    `json:"severity"`
	TriggerEvent   string    `json:"trigger_event"`
	CatalystID     string    `json:"catalyst_id,omitempty"`
	CreatedAt      string    `json:"created_at"`
	Acknowledged   bool      `json:"acknowledged"`
	AcknowledgedAt null.Time `json:"acknowledged_at,omitempty"`
}

type listAlertsResp struct {
	Items     []alertItem         `json:"items"`
	Paginator paginator.Paginator `json:"paginator"`
}

func newListAlertsResp(alerts []model.Alert, pag paginator.Paginator) listAlertsResp {
	items := make([]alertItem, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, alertItem{
			ID:             a.ID,
			Ticker:         a.Ticker,
			Type:           string(a.Type),
			Severity:       string(a.Severity),
			TriggerEvent:   a.TriggerEvent,
			CatalystID:     a.CatalystID.String,
			CreatedAt:      a.CreatedAt.Format(time.RFC3339),
			Acknowledged:   a.IsAcknowledged(),
			AcknowledgedAt: a.AcknowledgedAt,
		})
	}
	return listAlertsResp{Items: items, Paginator: pag}
}

type listNotificationsReq struct {
	UnreadOnly    bool `form:"unread_only"`
	PaginateQuery paginator.PaginateQuery
}

func (r listNotificationsReq) toInput() alerting.ListNotificationsInput {
	return alerting.ListNotificationsInput{
		UnreadOnly:    r.UnreadOnly,
		PaginateQuery: r.PaginateQuery,
	}
}

type notificationItem struct {
	ID           string             `json:"id"`
	SearchID     string             `json:"search_id"`
	CatalystID   string             `json:"catalyst_id"`
	Channels     []model.Channel    `json:"channels"`
	Content      model.AlertContent `json:"content"`
	SentAt       string             `json:"sent_at"`
	Acknowledged bool               `json:"acknowledged"`
}

type listNotificationsResp struct {
	Items     []notificationItem  `json:"items"`
	Paginator paginator.Paginator `json:"paginator"`
}

func newListNotificationsResp(notifications []model.AlertNotification, pag paginator.Paginator) listNotificationsResp {
	items := make([]notificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, notificationItem{
			ID:           n.ID,
			SearchID:     n.SearchID,
			CatalystID:   n.CatalystID,
			Channels:     n.Channels,
			Content:      n.Content,
			SentAt:       n.SentAt.Format(time.RFC3339),
			Acknowledged: n.Acknowledged,
		})
	}
	return listNotificationsResp{Items: items, Paginator: pag}
}

type updatePreferencesReq struct {
	MaxAlertsPerDay int     `json:"max_alerts_per_day"`
	QuietHoursStart *string `json:"quiet_hours_start"`
	QuietHoursEnd   *string `json:"quiet_hours_end"`
	Timezone        string  `json:"timezone"`
	EmailEnabled    bool    `json:"email_enabled"`
	SMSEnabled      bool    `json:"sms_enabled"`
	SlackEnabled    bool    `json:"slack_enabled"`
	PhoneNumber     *string `json:"phone_number"`
	SlackWebhookURL *string `json:"slack_webhook_url"`
}

func (r updatePreferencesReq) toModel() model.NotificationPreferences {
	return model.NotificationPreferences{
		MaxAlertsPerDay: r.MaxAlertsPerDay,
		QuietHoursStart: null.StringFromPtr(r.QuietHoursStart),
		QuietHoursEnd:   null.StringFromPtr(r.QuietHoursEnd),
		Timezone:        r.Timezone,
		EmailEnabled:    r.EmailEnabled,
		SMSEnabled:      r.SMSEnabled,
		SlackEnabled:    r.SlackEnabled,
		PhoneNumber:     null.StringFromPtr(r.PhoneNumber),
		SlackWebhookURL: null.StringFromPtr(r.SlackWebhookURL),
	}
}

type preferencesResp struct {
	MaxAlertsPerDay int         `json:"max_alerts_per_day"`
	QuietHoursStart null.String `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   null.String `json:"quiet_hours_end,omitempty"`
	Timezone        string      `json:"timezone"`
	EmailEnabled    bool        `json:"email_enabled"`
	SMSEnabled      bool        `json:"sms_enabled"`
	SlackEnabled    bool        `json:"slack_enabled"`
	PhoneNumber     null.String `json:"phone_number,omitempty"`
	SlackWebhookURL null.String `json:"slack_webhook_url,omitempty"`
}

func newPreferencesResp(p model.NotificationPreferences) preferencesResp {
	return preferencesResp{
		MaxAlertsPerDay: p.MaxAlertsPerDay,
		QuietHoursStart: p.QuietHoursStart,
		QuietHoursEnd:   p.QuietHoursEnd,
		Timezone:        p.Timezone,
		EmailEnabled:    p.EmailEnabled,
		SMSEnabled:      p.SMSEnabled,
		SlackEnabled:    p.SlackEnabled,
		PhoneNumber:     p.PhoneNumber,
		SlackWebhookURL: p.SlackWebhookURL,
	}
}
