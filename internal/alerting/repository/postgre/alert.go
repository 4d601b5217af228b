package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"

	"github.com/friendsofgo/errors"
)

const alertColumns = "id, user_id, ticker, alert_type, severity, trigger_event, catalyst_id, threshold_days, condition, created_at, acknowledged_at"

func (r *implRepository) AlreadyAlerted(ctx context.Context, opts repository.AlertedOptions) (bool, error) {
	where := []string{"user_id = $1", "ticker = $2", "alert_type = $3"}
	args := []any{opts.UserID, opts.Ticker, string(opts.Type)}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.CatalystID.Valid {
		where = append(where, "catalyst_id = "+arg(opts.CatalystID.String))
	}
	if opts.ThresholdDays.Valid {
		where = append(where, "threshold_days = "+arg(opts.ThresholdDays.Int))
	}
	if opts.Condition.Valid {
		where = append(where, "condition = "+arg(opts.Condition.String))
	}
	if opts.Since.Valid {
		where = append(where, "created_at >= "+arg(opts.Since.Time))
	}

	query := "SELECT EXISTS(SELECT 1 FROM alerts WHERE " + strings.Join(where, " AND ") + ")"

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.AlreadyAlerted.Scan: %v", err)
		return false, errors.Wrap(err, "query alert existence")
	}

	return exists, nil
}

func (r *implRepository) RecordWatchlistAlert(ctx context.Context, alert model.Alert) (model.Alert, error) {
	if alert.ID == "" {
		alert.ID = postgresPkg.NewUUID()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = r.clock()
	}

	query := `INSERT INTO alerts (id, user_id, ticker, alert_type, severity, trigger_event, catalyst_id, threshold_days, condition, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.UserID, alert.Ticker, string(alert.Type), string(alert.Severity),
		alert.TriggerEvent, alert.CatalystID, alert.ThresholdDays, alert.Condition, alert.CreatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.RecordWatchlistAlert.Exec: %v", err)
		return model.Alert{}, errors.Wrap(err, "insert alert")
	}

	return alert, nil
}

func (r *implRepository) ListAlerts(ctx context.Context, sc model.Scope, opts repository.ListAlertsOptions) ([]model.Alert, paginator.Paginator, error) {
	where := "WHERE user_id = $1"
	if opts.UnreadOnly {
		where += " AND acknowledged_at IS NULL"
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM alerts "+where, sc.UserID,
	).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListAlerts.Count: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "count alerts")
	}

	opts.PaginateQuery.Adjust()
	query := fmt.Sprintf(`SELECT %s FROM alerts %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, alertColumns, where)

	rows, err := r.db.QueryContext(ctx, query, sc.UserID, opts.PaginateQuery.Limit, opts.PaginateQuery.Offset())
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListAlerts.Query: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "query alerts")
	}
	defer rows.Close()

	var res []model.Alert
	for rows.Next() {
		var a model.Alert
		var alertType, severity string
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Ticker,
			&alertType,
			&severity,
			&a.TriggerEvent,
			&a.CatalystID,
			&a.ThresholdDays,
			&a.Condition,
			&a.CreatedAt,
			&a.AcknowledgedAt,
		); err != nil {
			r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListAlerts.Scan: %v", err)
			return nil, paginator.Paginator{}, errors.Wrap(err, "scan alert")
		}
		a.Type = model.AlertType(alertType)
		a.Severity = model.Severity(severity)
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.ListAlerts.Rows: %v", err)
		return nil, paginator.Paginator{}, errors.Wrap(err, "iterate alerts")
	}

	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}

	return res, pag, nil
}

func (r *implRepository) Acknowledge(ctx context.Context, sc model.Scope, alertID string, at time.Time) error {
	if err := postgresPkg.IsUUID(alertID); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.Acknowledge.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET acknowledged_at = $1
		 WHERE id = $2 AND user_id = $3 AND acknowledged_at IS NULL`,
		at, alertID, sc.UserID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.Acknowledge.Exec: %v", err)
		return errors.Wrap(err, "acknowledge alert")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.Acknowledge.RowsAffected: %v", err)
		return errors.Wrap(err, "rows affected")
	}
	if rows == 0 {
		// Either unknown, not the caller's, or already acknowledged;
		// acknowledging twice is not an error for an existing row.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM alerts WHERE id = $1 AND user_id = $2)",
			alertID, sc.UserID,
		).Scan(&exists); err != nil {
			r.l.Errorf(ctx, "internal.alerting.repository.postgres.Acknowledge.Exists: %v", err)
			return errors.Wrap(err, "query alert existence")
		}
		if !exists {
			return repository.ErrNotFound
		}
	}

	return nil
}
