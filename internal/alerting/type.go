package alerting

import (
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
)

// GateReason explains a denial.
type GateReason string

const (
	GateReasonRateLimited GateReason = "rate_limited"
	GateReasonQuietHours  GateReason = "quiet_hours"
)

// GateResult is the explicit outcome of an admission check. When Err is
// set the gate could not decide and Allowed reflects the fail-open
// default; callers that need a stricter policy can inspect Err.
type GateResult struct {
	Allowed bool
	Reason  GateReason
	Err     error
}

// DispatchInput is one notification to deliver. User supplies the email
// address and tier, Prefs the per-channel settings and contact details.
type DispatchInput struct {
	User     model.User
	Prefs    model.NotificationPreferences
	Channels []model.Channel
	Content  model.AlertContent
	Severity model.Severity
}

// DispatchResult reports per-channel outcomes of one dispatch.
type DispatchResult struct {
	Sent    []model.Channel
	Failed  []model.Channel
	Skipped []model.Channel
}

// Delivered reports whether at least one channel sent.
func (r DispatchResult) Delivered() bool {
	return len(r.Sent) > 0
}

// ListAlertsInput filters the alert listing.
type ListAlertsInput struct {
	UnreadOnly    bool
	PaginateQuery paginator.PaginateQuery
}

// ListNotificationsInput filters the saved-search notification listing.
type ListNotificationsInput struct {
	UnreadOnly    bool
	PaginateQuery paginator.PaginateQuery
}
