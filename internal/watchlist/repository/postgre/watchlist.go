package postgres

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

func (r *implRepository) ListUsersWithTickers(ctx context.Context) ([]model.WatchlistUser, error) {
	query := `SELECT u.id, u.tier, array_agg(w.ticker ORDER BY w.ticker)
		FROM users u
		JOIN watchlists w ON w.user_id = u.id
		GROUP BY u.id, u.tier
		ORDER BY u.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "internal.watchlist.repository.postgres.ListUsersWithTickers.Query: %v", err)
		return nil, errors.Wrap(err, "query watchlist users")
	}
	defer rows.Close()

	var res []model.WatchlistUser
	for rows.Next() {
		var (
			u       model.WatchlistUser
			tickers pq.StringArray
		)
		if err := rows.Scan(&u.UserID, &u.Tier, &tickers); err != nil {
			r.l.Errorf(ctx, "internal.watchlist.repository.postgres.ListUsersWithTickers.Scan: %v", err)
			return nil, errors.Wrap(err, "scan watchlist user")
		}
		u.Tickers = []string(tickers)
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.watchlist.repository.postgres.ListUsersWithTickers.Rows: %v", err)
		return nil, errors.Wrap(err, "iterate watchlist users")
	}

	return res, nil
}
