package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const searchColumns = "id, user_id, name, criteria, channels, last_checked, active, created_at"

func (r *implRepository) ListActive(ctx context.Context) ([]model.SavedSearch, error) {
	query := fmt.Sprintf(`SELECT %s FROM saved_searches
		WHERE active = TRUE
		ORDER BY last_checked ASC NULLS FIRST`, searchColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.ListActive.Query: %v", err)
		return nil, errors.Wrap(err, "query active searches")
	}
	defer rows.Close()

	return r.scanSearches(ctx, rows)
}

func (r *implRepository) ListForUser(ctx context.Context, sc model.Scope, opts repository.ListOptions) ([]model.SavedSearch, error) {
	query := fmt.Sprintf("SELECT %s FROM saved_searches WHERE user_id = $1", searchColumns)
	if opts.ActiveOnly {
		query += " AND active = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.ListForUser.Query: %v", err)
		return nil, errors.Wrap(err, "query user searches")
	}
	defer rows.Close()

	return r.scanSearches(ctx, rows)
}

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.Detail.IsUUID: %v", err)
		return model.SavedSearch{}, err
	}

	query := fmt.Sprintf("SELECT %s FROM saved_searches WHERE id = $1 AND user_id = $2", searchColumns)
	row := r.db.QueryRowContext(ctx, query, id, sc.UserID)

	s, err := r.scanSearch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.SavedSearch{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.search.repository.postgres.Detail.Scan: %v", err)
		return model.SavedSearch{}, errors.Wrap(err, "scan saved search")
	}

	return s, nil
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.SavedSearch, error) {
	criteria, err := json.Marshal(opts.Criteria)
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.Create.Marshal: %v", err)
		return model.SavedSearch{}, errors.Wrap(err, "marshal criteria")
	}

	s := model.SavedSearch{
		ID:        postgresPkg.NewUUID(),
		UserID:    sc.UserID,
		Name:      opts.Name,
		Criteria:  opts.Criteria,
		Channels:  opts.Channels,
		Active:    true,
		CreatedAt: r.clock(),
	}

	query := `INSERT INTO saved_searches (id, user_id, name, criteria, channels, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.Name, criteria, channelArray(s.Channels), s.Active, s.CreatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.Create.Exec: %v", err)
		return model.SavedSearch{}, errors.Wrap(err, "insert saved search")
	}

	return s, nil
}

func (r *implRepository) UpdateLastChecked(ctx context.Context, id string, checkedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE saved_searches SET last_checked = $1 WHERE id = $2", checkedAt, id)
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.UpdateLastChecked.Exec: %v", err)
		return errors.Wrap(err, "update last_checked")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.UpdateLastChecked.RowsAffected: %v", err)
		return errors.Wrap(err, "rows affected")
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *implRepository) SetActive(ctx context.Context, sc model.Scope, id string, active bool) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.SetActive.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE saved_searches SET active = $1 WHERE id = $2 AND user_id = $3",
		active, id, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.SetActive.Exec: %v", err)
		return errors.Wrap(err, "update active")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.SetActive.RowsAffected: %v", err)
		return errors.Wrap(err, "rows affected")
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *implRepository) scanSearch(row rowScanner) (model.SavedSearch, error) {
	var (
		s        model.SavedSearch
		criteria []byte
		channels pq.StringArray
	)
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&criteria,
		&channels,
		&s.LastChecked,
		&s.Active,
		&s.CreatedAt,
	); err != nil {
		return model.SavedSearch{}, err
	}

	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &s.Criteria); err != nil {
			return model.SavedSearch{}, errors.Wrap(err, "unmarshal criteria")
		}
	}
	s.Channels = make([]model.Channel, len(channels))
	for i, c := range channels {
		s.Channels[i] = model.Channel(c)
	}

	return s, nil
}

func (r *implRepository) scanSearches(ctx context.Context, rows *sql.Rows) ([]model.SavedSearch, error) {
	var res []model.SavedSearch
	for rows.Next() {
		s, err := r.scanSearch(rows)
		if err != nil {
			r.l.Errorf(ctx, "internal.search.repository.postgres.scanSearches.Scan: %v", err)
			return nil, errors.Wrap(err, "scan saved search")
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.search.repository.postgres.scanSearches.Rows: %v", err)
		return nil, errors.Wrap(err, "iterate saved searches")
	}
	return res, nil
}

func channelArray(channels []model.Channel) pq.StringArray {
	out := make(pq.StringArray, len(channels))
	for i, c := range channels {
		out[i] = string(c)
	}
	return out
}
