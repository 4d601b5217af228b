package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/sweep"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

const sweepWatchlist = "watchlist"

func (uc *usecase) RunWatchlistSweep(ctx context.Context) (sweep.WatchlistSweepSummary, error) {
	summary := sweep.WatchlistSweepSummary{
		StartedAt:    uc.clock(),
		AlertsByType: map[model.AlertType]int{},
	}
	timer := prometheus.NewTimer(metrics.SweepDuration.WithLabelValues(sweepWatchlist))
	defer timer.ObserveDuration()

	uc.l.Infof(ctx, "internal.sweep.usecase.RunWatchlistSweep: starting")

	users, err := uc.watchUsers.ListUsersWithTickers(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.sweep.usecase.RunWatchlistSweep.ListUsersWithTickers: %v", err)
		metrics.SweepRuns.WithLabelValues(sweepWatchlist, "error").Inc()
		summary.Errors++
		summary.CompletedAt = uc.clock()
		return summary, err
	}

	for _, wu := range users {
		summary.UsersChecked++
		metrics.UnitsProcessed.WithLabelValues(sweepWatchlist).Inc()

		alerts := uc.checkUser(ctx, wu, &summary)
		if len(alerts) == 0 {
			continue
		}

		summary.AlertsGenerated += len(alerts)
		for _, a := range alerts {
			summary.AlertsByType[a.Type]++
		}

		uc.notifyWatchlistAlerts(ctx, wu, alerts, &summary)
	}

	summary.CompletedAt = uc.clock()
	metrics.SweepRuns.WithLabelValues(sweepWatchlist, "ok").Inc()
	uc.l.Infof(ctx, "internal.sweep.usecase.RunWatchlistSweep: users=%d alerts=%d sent=%d errors=%d",
		summary.UsersChecked, summary.AlertsGenerated, summary.NotificationsSent, summary.Errors)

	return summary, nil
}

// checkUser runs all three checks for one user. A failing check counts
// an error and yields whatever earlier checks produced; one bad ticker
// never skips the rest of the batch.
func (uc *usecase) checkUser(ctx context.Context, wu model.WatchlistUser, summary *sweep.WatchlistSweepSummary) []model.Alert {
	var alerts []model.Alert

	checks := []func(context.Context, model.WatchlistUser) ([]model.Alert, error){
		uc.watchlist.CheckDateWindows,
		uc.watchlist.CheckTimelineChanges,
		uc.watchlist.CheckRedFlags,
	}
	for _, check := range checks {
		found, err := check(ctx, wu)
		alerts = append(alerts, found...)
		if err != nil {
			uc.l.Errorf(ctx, "internal.sweep.usecase.checkUser: user %s: %v", wu.UserID, err)
			metrics.UnitErrors.WithLabelValues(sweepWatchlist).Inc()
			summary.Errors++
		}
	}

	return alerts
}

// notifyWatchlistAlerts delivers freshly created alerts best-effort.
// The alerts are already persisted, so delivery failure loses nothing;
// it just means the user sees them in-app first.
func (uc *usecase) notifyWatchlistAlerts(ctx context.Context, wu model.WatchlistUser, alerts []model.Alert, summary *sweep.WatchlistSweepSummary) {
	owner, err := uc.users.Detail(ctx, wu.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.sweep.usecase.notifyWatchlistAlerts.Detail: user %s: %v", wu.UserID, err)
		summary.Errors++
		return
	}

	prefs, err := uc.alerts.GetOrCreatePreferences(ctx, wu.UserID)
	if err != nil {
		// Fail open: delivery beats silence. Defaults are email-only
		// with no quiet hours, so the gate still applies a daily cap.
		uc.l.Warnf(ctx, "internal.sweep.usecase.notifyWatchlistAlerts.GetOrCreatePreferences: user %s, using defaults: %v", wu.UserID, err)
		prefs = model.DefaultPreferences(wu.UserID)
	}

	for _, a := range alerts {
		gate := uc.alerting.CanNotify(ctx, prefs, uc.clock())
		if gate.Err != nil {
			uc.l.Warnf(ctx, "internal.sweep.usecase.notifyWatchlistAlerts: gate undecided, proceeding: %v", gate.Err)
		}
		if !gate.Allowed {
			uc.l.Infof(ctx, "internal.sweep.usecase.notifyWatchlistAlerts: suppressed for user %s (%s)", wu.UserID, gate.Reason)
			continue
		}

		res, err := uc.alerting.Dispatch(ctx, alerting.DispatchInput{
			User:     owner,
			Prefs:    prefs,
			Channels: enabledChannels(prefs),
			Content: model.AlertContent{
				Summary:    a.TriggerEvent,
				Ticker:     a.Ticker,
				CatalystID: a.CatalystID.String,
			},
			Severity: a.Severity,
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.sweep.usecase.notifyWatchlistAlerts.Dispatch: alert %s: %v", a.ID, err)
			summary.Errors++
			continue
		}
		if res.Delivered() {
			summary.NotificationsSent++
		}
	}
}

// enabledChannels derives the requested channel set from preferences;
// watchlist alerts have no per-search channel selection.
func enabledChannels(prefs model.NotificationPreferences) []model.Channel {
	var out []model.Channel
	if prefs.EmailEnabled {
		out = append(out, model.ChannelEmail)
	}
	if prefs.SMSEnabled {
		out = append(out, model.ChannelSMS)
	}
	if prefs.SlackEnabled {
		out = append(out, model.ChannelSlack)
	}
	return out
}
