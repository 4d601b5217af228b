package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"

	"github.com/friendsofgo/errors"
)

const catalystColumns = "id, ticker, phase, market_cap, indication, completion_date, enrollment, created_at"

func (r *implRepository) List(ctx context.Context, opts feed.ListOptions) ([]model.Catalyst, error) {
	where, args := r.buildListQuery(opts)

	query := fmt.Sprintf("SELECT %s FROM catalysts", catalystColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if opts.OrderByCompletion {
		query += " ORDER BY completion_date ASC NULLS LAST"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.feed.postgres.List.Query: %v", err)
		return nil, errors.Wrap(err, "query catalysts")
	}
	defer rows.Close()

	return r.scanCatalysts(ctx, rows)
}

func (r *implRepository) ListUpcoming(ctx context.Context, ticker string, horizon time.Duration) ([]model.Catalyst, error) {
	now := r.clock()
	query := fmt.Sprintf(`SELECT %s FROM catalysts
		WHERE ticker = $1
		  AND completion_date IS NOT NULL
		  AND completion_date >= $2
		  AND completion_date <= $3
		ORDER BY completion_date ASC`, catalystColumns)

	rows, err := r.db.QueryContext(ctx, query, ticker, now, now.Add(horizon))
	if err != nil {
		r.l.Errorf(ctx, "internal.feed.postgres.ListUpcoming.Query: %v", err)
		return nil, errors.Wrap(err, "query upcoming catalysts")
	}
	defer rows.Close()

	return r.scanCatalysts(ctx, rows)
}

func (r *implRepository) LatestFiling(ctx context.Context, ticker string) (model.Filing, error) {
	query := `SELECT ticker, filing_type, cash_runway_months, clinical_hold, ceo_departure, going_concern_warning, filed_at
		FROM sec_filings
		WHERE ticker = $1
		ORDER BY filed_at DESC, CASE filing_type WHEN '10-Q' THEN 0 ELSE 1 END
		LIMIT 1`

	var f model.Filing
	err := r.db.QueryRowContext(ctx, query, ticker).Scan(
		&f.Ticker,
		&f.FilingType,
		&f.CashRunwayMonths,
		&f.ClinicalHold,
		&f.CEODeparture,
		&f.GoingConcernWarning,
		&f.FiledAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Filing{}, feed.ErrFilingNotFound
		}
		r.l.Errorf(ctx, "internal.feed.postgres.LatestFiling.Scan: %v", err)
		return model.Filing{}, errors.Wrap(err, "query latest filing")
	}

	return f, nil
}

func (r *implRepository) scanCatalysts(ctx context.Context, rows *sql.Rows) ([]model.Catalyst, error) {
	var res []model.Catalyst
	for rows.Next() {
		var c model.Catalyst
		if err := rows.Scan(
			&c.ID,
			&c.Ticker,
			&c.Phase,
			&c.MarketCap,
			&c.Indication,
			&c.CompletionDate,
			&c.Enrollment,
			&c.CreatedAt,
		); err != nil {
			r.l.Errorf(ctx, "internal.feed.postgres.scanCatalysts.Scan: %v", err)
			return nil, errors.Wrap(err, "scan catalyst")
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.feed.postgres.scanCatalysts.Rows: %v", err)
		return nil, errors.Wrap(err, "iterate catalysts")
	}
	return res, nil
}
