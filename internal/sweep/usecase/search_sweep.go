package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/sweep"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const sweepSearch = "search"

func (uc *usecase) RunSearchSweep(ctx context.Context) (sweep.SearchSweepSummary, error) {
	summary := sweep.SearchSweepSummary{StartedAt: uc.clock()}
	timer := prometheus.NewTimer(metrics.SweepDuration.WithLabelValues(sweepSearch))
	defer timer.ObserveDuration()

	uc.l.Infof(ctx, "internal.sweep.usecase.RunSearchSweep: starting")

	searches, err := uc.searches.ListActive(ctx)
	if err != nil {
		// Cannot even enumerate the work; abort the whole run.
		uc.l.Errorf(ctx, "internal.sweep.usecase.RunSearchSweep.ListActive: %v", err)
		metrics.SweepRuns.WithLabelValues(sweepSearch, "error").Inc()
		summary.Errors++
		summary.CompletedAt = uc.clock()
		return summary, err
	}

	for _, s := range searches {
		summary.SearchesChecked++
		metrics.UnitsProcessed.WithLabelValues(sweepSearch).Inc()

		if err := uc.processSearch(ctx, s, &summary); err != nil {
			uc.l.Errorf(ctx, "internal.sweep.usecase.RunSearchSweep.processSearch: search %s: %v", s.ID, err)
			metrics.UnitErrors.WithLabelValues(sweepSearch).Inc()
			summary.Errors++
			continue
		}

		// Advance the window even when nothing matched or delivery
		// failed, so the same catalysts are not reprocessed forever.
		if err := uc.searches.UpdateLastChecked(ctx, s.ID, uc.clock()); err != nil {
			uc.l.Errorf(ctx, "internal.sweep.usecase.RunSearchSweep.UpdateLastChecked: search %s: %v", s.ID, err)
			metrics.UnitErrors.WithLabelValues(sweepSearch).Inc()
			summary.Errors++
		}
	}

	summary.CompletedAt = uc.clock()
	metrics.SweepRuns.WithLabelValues(sweepSearch, "ok").Inc()
	uc.l.Infof(ctx, "internal.sweep.usecase.RunSearchSweep: checked=%d matches=%d sent=%d errors=%d",
		summary.SearchesChecked, summary.MatchesFound, summary.NotificationsSent, summary.Errors)

	return summary, nil
}

func (uc *usecase) processSearch(ctx context.Context, s model.SavedSearch, summary *sweep.SearchSweepSummary) error {
	matches, err := uc.matcher.FindMatches(ctx, s.Criteria, s.LastChecked)
	if err != nil {
		return errors.Wrap(err, "find matches")
	}
	if len(matches) == 0 {
		return nil
	}

	uc.l.Infof(ctx, "internal.sweep.usecase.processSearch: %d new matches for search %q", len(matches), s.Name)
	summary.MatchesFound += len(matches)
	metrics.MatchesFound.Add(float64(len(matches)))

	for _, c := range matches {
		sent, err := uc.notifySearchMatch(ctx, s, c)
		if err != nil {
			uc.l.Errorf(ctx, "internal.sweep.usecase.processSearch.notify: catalyst %s: %v", c.ID, err)
			summary.Errors++
			continue
		}
		if sent {
			summary.NotificationsSent++
		}
	}

	return nil
}

// notifySearchMatch runs the read-check-dispatch-write sequence for one
// (search, catalyst) pair. The notification record is written only after
// at least one channel delivered; the unique constraint on the pair is
// the final dedup guarantee.
func (uc *usecase) notifySearchMatch(ctx context.Context, s model.SavedSearch, c model.Catalyst) (bool, error) {
	dup, err := uc.alerts.AlreadySent(ctx, s.ID, c.ID)
	if err != nil {
		// Fail closed: without a dedup answer, skip this catalyst for
		// the cycle instead of risking a duplicate send.
		return false, errors.Wrap(err, "dedup lookup")
	}
	if dup {
		uc.l.Debugf(ctx, "internal.sweep.usecase.notifySearchMatch: duplicate for search %s catalyst %s", s.ID, c.ID)
		return false, nil
	}

	owner, err := uc.users.Detail(ctx, s.UserID)
	if err != nil {
		return false, errors.Wrap(err, "resolve owner")
	}

	prefs, err := uc.alerts.GetOrCreatePreferences(ctx, s.UserID)
	if err != nil {
		// Fail open: delivery beats silence. Defaults are email-only
		// with no quiet hours, so the gate still applies a daily cap.
		uc.l.Warnf(ctx, "internal.sweep.usecase.notifySearchMatch.GetOrCreatePreferences: user %s, using defaults: %v", s.UserID, err)
		prefs = model.DefaultPreferences(s.UserID)
	}

	gate := uc.alerting.CanNotify(ctx, prefs, uc.clock())
	if gate.Err != nil {
		uc.l.Warnf(ctx, "internal.sweep.usecase.notifySearchMatch: gate undecided, proceeding: %v", gate.Err)
	}
	if !gate.Allowed {
		uc.l.Infof(ctx, "internal.sweep.usecase.notifySearchMatch: suppressed for user %s (%s)", s.UserID, gate.Reason)
		return false, nil
	}

	content := buildSearchContent(s, c, uc.clock())

	res, err := uc.alerting.Dispatch(ctx, alerting.DispatchInput{
		User:     owner,
		Prefs:    prefs,
		Channels: s.Channels,
		Content:  content,
		Severity: model.SeverityInfo,
	})
	if err != nil {
		return false, errors.Wrap(err, "dispatch")
	}
	if !res.Delivered() {
		// Nothing went out, nothing to record. The next sweep will not
		// retry this catalyst once last_checked passes it; that is the
		// documented at-most-once-per-run tradeoff.
		return false, nil
	}

	if _, err := uc.alerts.RecordSearchAlert(ctx, alertRepo.RecordSearchAlertOptions{
		SearchID:   s.ID,
		CatalystID: c.ID,
		UserID:     s.UserID,
		Channels:   res.Sent,
		Content:    content,
		SentAt:     uc.clock(),
	}); err != nil {
		if errors.Is(err, alertRepo.ErrDuplicate) {
			// Lost a race with a concurrent worker; the constraint did
			// its job and the user got exactly one notification.
			return true, nil
		}
		return true, errors.Wrap(err, "record notification")
	}

	return true, nil
}

func buildSearchContent(s model.SavedSearch, c model.Catalyst, now time.Time) model.AlertContent {
	content := model.AlertContent{
		SearchName:     s.Name,
		Ticker:         c.Ticker.String,
		Phase:          c.Phase.String,
		Indication:     c.Indication.String,
		CompletionDate: "TBD",
		MarketCap:      "N/A",
		Enrollment:     c.Enrollment,
		CatalystID:     c.ID,
	}

	if c.CompletionDate.Valid {
		content.CompletionDate = c.CompletionDate.Time.Format("2006-01-02")
	}
	if days, ok := c.DaysUntil(now); ok && days >= 0 {
		content.DaysUntil = null.IntFrom(days)
	}
	if c.MarketCap.Valid {
		content.MarketCap = fmt.Sprintf("$%.2fB", c.MarketCap.Float64/1_000_000_000)
	}

	return content
}
