package postgres

import (
	"context"
	"database/sql"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/user/repository"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const userColumns = "id, email, tier, created_at"

func (r *implRepository) Detail(ctx context.Context, id string) (model.User, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.IsUUID: %v", err)
		return model.User{}, err
	}

	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Email, &u.Tier, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.Scan: %v", err)
		return model.User{}, errors.Wrap(err, "query user")
	}

	return u, nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var args []any
	if len(opts.IDs) > 0 {
		if err := postgresPkg.ValidateUUIDs(opts.IDs); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.List.ValidateUUIDs: %v", err)
			return nil, err
		}
		query += " WHERE id = ANY($1)"
		args = append(args, pq.Array(opts.IDs))
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Query: %v", err)
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var res []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Tier, &u.CreatedAt); err != nil {
			r.l.Errorf(ctx, "internal.user.repository.postgres.List.Scan: %v", err)
			return nil, errors.Wrap(err, "scan user")
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Rows: %v", err)
		return nil, errors.Wrap(err, "iterate users")
	}

	return res, nil
}
