package usecase

import (
	"context"
	"fmt"

	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
)

const lowCashRunwayMonths = 6

// redFlagCondition is one tripped rule: the stable name keys dedup, the
// detail lands in the trigger text.
type redFlagCondition struct {
	name   string
	detail string
}

func (uc *usecase) CheckRedFlags(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	now := uc.clock()
	var created []model.Alert

	for _, ticker := range user.Tickers {
		filing, err := uc.feed.LatestFiling(ctx, ticker)
		if err != nil {
			if errors.Is(err, feed.ErrFilingNotFound) {
				// No filing data is not a risk signal.
				continue
			}
			uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckRedFlags.LatestFiling: %v", err)
			return created, err
		}

		for _, cond := range evaluateFiling(filing) {
			// Fast path in front of the store lookup; the store stays
			// authoritative, so a redis miss or error just falls through.
			if uc.redFlagSeenRecently(ctx, user.UserID, ticker, cond.name) {
				continue
			}

			dup, err := uc.alerts.AlreadyAlerted(ctx, alertRepo.AlertedOptions{
				UserID:    user.UserID,
				Ticker:    ticker,
				Type:      model.AlertTypeRedFlag,
				Condition: null.StringFrom(cond.name),
				Since:     null.TimeFrom(now.Add(-uc.redFlagWindow)),
			})
			if err != nil {
				uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckRedFlags.AlreadyAlerted: %v", err)
				continue
			}
			if dup {
				continue
			}

			saved, err := uc.alerts.RecordWatchlistAlert(ctx, model.Alert{
				UserID:       user.UserID,
				Ticker:       ticker,
				Type:         model.AlertTypeRedFlag,
				Severity:     model.SeverityCritical,
				TriggerEvent: fmt.Sprintf("%s: RED FLAG - %s", ticker, cond.detail),
				Condition:    null.StringFrom(cond.name),
			})
			if err != nil {
				uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckRedFlags.RecordWatchlistAlert: %v", err)
				continue
			}

			metrics.AlertsGenerated.WithLabelValues(string(model.AlertTypeRedFlag), string(model.SeverityCritical)).Inc()
			uc.markRedFlagSeen(ctx, user.UserID, ticker, cond.name)
			created = append(created, saved)
		}
	}

	return created, nil
}

func redFlagKey(userID, ticker, condition string) string {
	return fmt.Sprintf("alerts:redflag:%s:%s:%s", userID, ticker, condition)
}

func (uc *usecase) redFlagSeenRecently(ctx context.Context, userID, ticker, condition string) bool {
	if uc.redis == nil {
		return false
	}
	_, err := uc.redis.Get(ctx, redFlagKey(userID, ticker, condition))
	return err == nil
}

// markRedFlagSeen is written only after the alert row exists, so a
// failed insert never leaves a suppressing key behind.
func (uc *usecase) markRedFlagSeen(ctx context.Context, userID, ticker, condition string) {
	if uc.redis == nil {
		return
	}
	if _, err := uc.redis.SetNX(ctx, redFlagKey(userID, ticker, condition), uc.redFlagWindow); err != nil {
		uc.l.Warnf(ctx, "internal.watchlist.usecase.markRedFlagSeen.SetNX: %v", err)
	}
}

// evaluateFiling applies the red-flag rule set to one filing. Every
// tripped rule is critical; conditions are independent.
func evaluateFiling(f model.Filing) []redFlagCondition {
	var out []redFlagCondition

	if f.CashRunwayMonths.Valid && f.CashRunwayMonths.Float64 < lowCashRunwayMonths {
		out = append(out, redFlagCondition{
			name:   "cash_runway",
			detail: fmt.Sprintf("Cash runway only %.0f months", f.CashRunwayMonths.Float64),
		})
	}
	if f.ClinicalHold {
		out = append(out, redFlagCondition{
			name:   "clinical_hold",
			detail: "Clinical hold in effect",
		})
	}
	if f.CEODeparture {
		out = append(out, redFlagCondition{
			name:   "ceo_departure",
			detail: "CEO departure disclosed",
		})
	}
	if f.GoingConcernWarning {
		out = append(out, redFlagCondition{
			name:   "going_concern_warning",
			detail: "Going concern warning",
		})
	}

	return out
}
