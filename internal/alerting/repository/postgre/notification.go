package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func (r *implRepository) AlreadySent(ctx context.Context, searchID, catalystID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM alert_notifications WHERE search_id = $1 AND catalyst_id = $2)",
		searchID, catalystID,
	).Scan(&exists)
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.AlreadySent.Scan: %v", err)
		return false, errors.Wrap(err, "query notification existence")
	}

	return exists, nil
}

func (r *implRepository) RecordSearchAlert(ctx context.Context, opts repository.RecordSearchAlertOptions) (model.AlertNotification, error) {
	content, err := json.Marshal(opts.Content)
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.RecordSearchAlert.Marshal: %v", err)
		return model.AlertNotification{}, errors.Wrap(err, "marshal content")
	}

	n := model.AlertNotification{
		ID:         postgresPkg.NewUUID(),
		SearchID:   opts.SearchID,
		CatalystID: opts.CatalystID,
		UserID:     opts.UserID,
		Channels:   opts.Channels,
		Content:    opts.Content,
		SentAt:     opts.SentAt,
	}
	if n.SentAt.IsZero() {
		n.SentAt = r.clock()
	}

	query := `INSERT INTO alert_notifications (id, search_id, catalyst_id, user_id, channels, content, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		n.ID, n.SearchID, n.CatalystID, n.UserID, channelArray(n.Channels), content, n.SentAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.AlertNotification{}, repository.ErrDuplicate
		}
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.RecordSearchAlert.Exec: %v", err)
		return model.AlertNotification{}, errors.Wrap(err, "insert notification")
	}

	return n, nil
}

func (r *implRepository) CountSentToday(ctx context.Context, userID string, dayStart time.Time) (int, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM alert_notifications WHERE user_id = $1 AND sent_at >= $2) +
		(SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND created_at >= $2)`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, dayStart).Scan(&count); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.CountSentToday.Scan: %v", err)
		return 0, errors.Wrap(err, "count sent today")
	}

	return count, nil
}

func (r *implRepository) ListNotifications(ctx context.Context, sc model.Scope, opts repository.ListNotificationsOptions) ([]model.AlertNotification, paginator.Paginator, error) {
	where := "WHERE user_id = $1"
	if opts.UnreadOnly {
		where += " AND NOT acknowledged"
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM alert_notifications "+where, sc.UserID,
	).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListNotifications.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count notifications")
	}

	opts.PaginateQuery.Adjust()
	query := fmt.Sprintf(`SELECT id, search_id, catalyst_id, user_id, channels, content, sent_at, acknowledged
		FROM alert_notifications %s
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3`, where)

	rows, err := r.db.QueryContext(ctx, query, sc.UserID, opts.PaginateQuery.Limit, opts.PaginateQuery.Offset())
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListNotifications.Query: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "query notifications")
	}
	defer rows.Close()

	var res []model.AlertNotification
	for rows.Next() {
		var n model.AlertNotification
		var channels pq.StringArray
		var content []byte
		if err := rows.Scan(
			&n.ID,
			&n.SearchID,
			&n.CatalystID,
			&n.UserID,
			&channels,
			&content,
			&n.SentAt,
			&n.Acknowledged,
		); err != nil {
			r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListNotifications.Scan: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "scan notification")
		}
		for _, c := range channels {
			n.Channels = append(n.Channels, model.Channel(c))
		}
		if err := json.Unmarshal(content, &n.Content); err != nil {
			r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListNotifications.Unmarshal: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "unmarshal content")
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListNotifications.Rows: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "iterate notifications")
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}

	return res, pag, nil
}

func (r *implRepository) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	if err := postgresPkg.IsUUID(notificationID); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.AcknowledgeNotification.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE alert_notifications SET acknowledged = TRUE
		 WHERE id = $1 AND user_id = $2`,
		notificationID, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.AcknowledgeNotification.Exec: %v", err)
		return errors.Wrap(err, "acknowledge notification")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.AcknowledgeNotification.RowsAffected: %v", err)
		return errors.Wrap(err, "rows affected")
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func channelArray(channels []model.Channel) pq.StringArray {
	out := make(pq.StringArray, len(channels))
	for i, c := range channels {
		out[i] = string(c)
	}
	return out
}
