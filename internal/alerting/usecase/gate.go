package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"

	"github.com/friendsofgo/errors"
)

func (uc *usecase) CanNotify(ctx context.Context, prefs model.NotificationPreferences, now time.Time) alerting.GateResult {
	local := now.In(prefs.Location())

	quiet, err := inQuietHours(prefs, local)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alerting.usecase.CanNotify.inQuietHours: %v", err)
		return alerting.GateResult{Allowed: true, Err: err}
	}
	if quiet {
		metrics.GateRejections.WithLabelValues(string(alerting.GateReasonQuietHours)).Inc()
		return alerting.GateResult{Reason: alerting.GateReasonQuietHours}
	}

	sent, err := uc.sentToday(ctx, prefs.UserID, local)
	if err != nil {
		uc.l.Warnf(ctx, "internal.alerting.usecase.CanNotify.sentToday: %v", err)
		return alerting.GateResult{Allowed: true, Err: err}
	}
	if sent >= prefs.MaxAlertsPerDay {
		metrics.GateRejections.WithLabelValues(string(alerting.GateReasonRateLimited)).Inc()
		return alerting.GateResult{Reason: alerting.GateReasonRateLimited}
	}

	return alerting.GateResult{Allowed: true}
}

// sentToday returns how many notifications the user has consumed today
// in their local timezone. The Redis counter is the fast path; it counts
// gate admissions, so a passed gate reserves a slot even if delivery
// later fails. On Redis failure the authoritative store count is used.
func (uc *usecase) sentToday(ctx context.Context, userID string, local time.Time) (int, error) {
	if uc.redis != nil {
		key := fmt.Sprintf("alerts:daily:%s:%s", userID, local.Format("2006-01-02"))
		n, err := uc.redis.IncrWithExpiry(ctx, key, untilMidnight(local))
		if err == nil {
			return int(n) - 1, nil
		}
		uc.l.Warnf(ctx, "internal.alerting.usecase.sentToday.IncrWithExpiry: %v", err)
	}

	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return uc.repo.CountSentToday(ctx, userID, dayStart)
}

func untilMidnight(local time.Time) time.Duration {
	midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, local.Location())
	return midnight.Sub(local)
}

// inQuietHours reports whether local falls inside the user's quiet
// window. Windows may wrap past midnight (22:00-08:00). A window with
// equal endpoints is treated as unset.
func inQuietHours(prefs model.NotificationPreferences, local time.Time) (bool, error) {
	if !prefs.QuietHoursStart.Valid || !prefs.QuietHoursEnd.Valid {
		return false, nil
	}

	start, err := parseClock(prefs.QuietHoursStart.String)
	if err != nil {
		return false, errors.Wrap(err, "quiet_hours_start")
	}
	end, err := parseClock(prefs.QuietHoursEnd.String)
	if err != nil {
		return false, errors.Wrap(err, "quiet_hours_end")
	}
	if start == end {
		return false, nil
	}

	cur := local.Hour()*60 + local.Minute()
	if start < end {
		return cur >= start && cur < end, nil
	}
	return cur >= start || cur < end, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, errors.Errorf("invalid clock value %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}
