package postgres

import (
	"fmt"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/feed"
)

// buildListQuery translates ListOptions into WHERE fragments with
// positional args. Fragment order matches the matcher's documented
// filter order.
func (r *implRepository) buildListQuery(opts feed.ListOptions) ([]string, []any) {
	var (
		where []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.RequireTicker {
		where = append(where, "ticker IS NOT NULL")
	}
	if opts.CreatedSince.Valid {
		where = append(where, "created_at >= "+arg(opts.CreatedSince.Time))
	}
	if opts.Phase.Valid {
		where = append(where, "phase = "+arg(opts.Phase.String))
	}
	if opts.MaxMarketCap.Valid {
		where = append(where, "market_cap < "+arg(opts.MaxMarketCap.Float64))
	}
	if opts.MinMarketCap.Valid {
		where = append(where, "market_cap >= "+arg(opts.MinMarketCap.Float64))
	}
	if opts.IndicationContains.Valid {
		where = append(where, "indication ILIKE "+arg("%"+opts.IndicationContains.String+"%"))
	}
	if opts.MinEnrollment.Valid {
		where = append(where, "enrollment >= "+arg(opts.MinEnrollment.Int))
	}
	if opts.CompletionAfter.Valid {
		where = append(where, "completion_date >= "+arg(opts.CompletionAfter.Time))
	}
	if opts.CompletionBefore.Valid {
		where = append(where, "completion_date <= "+arg(opts.CompletionBefore.Time))
	}

	return where, args
}
