package usecase

import (
	"context"
	"fmt"

	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"

	"github.com/aarondl/null/v8"
)

func (uc *usecase) CheckDateWindows(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	now := uc.clock()
	var created []model.Alert

	for _, ticker := range user.Tickers {
		catalysts, err := uc.feed.ListUpcoming(ctx, ticker, uc.horizon)
		if err != nil {
			uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckDateWindows.ListUpcoming: %v", err)
			return created, err
		}

		for _, c := range catalysts {
			days, ok := c.DaysUntil(now)
			if !ok || days < 0 {
				continue
			}

			// Walk the staircase outside-in. The first threshold the
			// catalyst is inside and that has not alerted yet wins;
			// smaller thresholds wait for later passes.
			for _, th := range uc.staircase {
				if days > th.Days {
					continue
				}

				dup, err := uc.alerts.AlreadyAlerted(ctx, alertRepo.AlertedOptions{
					UserID:        user.UserID,
					Ticker:        ticker,
					Type:          model.AlertTypeDateWindow,
					ThresholdDays: null.IntFrom(th.Days),
					Since:         null.TimeFrom(now.Add(-uc.retention)),
				})
				if err != nil {
					// Without a dedup answer we cannot prove novelty;
					// skip this catalyst rather than risk a repeat.
					uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckDateWindows.AlreadyAlerted: %v", err)
					break
				}
				if dup {
					continue
				}

				saved, err := uc.alerts.RecordWatchlistAlert(ctx, model.Alert{
					UserID:        user.UserID,
					Ticker:        ticker,
					Type:          model.AlertTypeDateWindow,
					Severity:      th.Severity,
					TriggerEvent:  dateWindowMessage(ticker, c, days),
					CatalystID:    null.StringFrom(c.ID),
					ThresholdDays: null.IntFrom(th.Days),
				})
				if err != nil {
					uc.l.Errorf(ctx, "internal.watchlist.usecase.CheckDateWindows.RecordWatchlistAlert: %v", err)
					break
				}

				metrics.AlertsGenerated.WithLabelValues(string(model.AlertTypeDateWindow), string(th.Severity)).Inc()
				created = append(created, saved)
				break
			}
		}
	}

	return created, nil
}

func dateWindowMessage(ticker string, c model.Catalyst, days int) string {
	event := "catalyst"
	if c.Phase.Valid {
		event = c.Phase.String + " readout"
	}
	return fmt.Sprintf("%s: %s in %d days", ticker, event, days)
}
