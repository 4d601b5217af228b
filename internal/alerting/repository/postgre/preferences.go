package postgres

import (
	"context"
	"database/sql"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"

	"github.com/friendsofgo/errors"
)

const preferenceColumns = "user_id, max_alerts_per_day, quiet_hours_start, quiet_hours_end, timezone, email_enabled, sms_enabled, slack_enabled, phone_number, slack_webhook_url, updated_at"

func (r *implRepository) GetOrCreatePreferences(ctx context.Context, userID string) (model.NotificationPreferences, error) {
	prefs, err := r.getPreferences(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if err != sql.ErrNoRows {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.GetOrCreatePreferences.get: %v", err)
		return model.NotificationPreferences{}, errors.Wrap(err, "query preferences")
	}

	// First access: write the default row. A concurrent writer wins
	// via ON CONFLICT and we read back whatever landed.
	def := model.DefaultPreferences(userID)
	def.UpdatedAt = r.clock()

	query := `INSERT INTO notification_preferences
		(user_id, max_alerts_per_day, quiet_hours_start, quiet_hours_end, timezone, email_enabled, sms_enabled, slack_enabled, phone_number, slack_webhook_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query,
		def.UserID, def.MaxAlertsPerDay, def.QuietHoursStart, def.QuietHoursEnd, def.Timezone,
		def.EmailEnabled, def.SMSEnabled, def.SlackEnabled, def.PhoneNumber, def.SlackWebhookURL, def.UpdatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.GetOrCreatePreferences.insert: %v", err)
		return model.NotificationPreferences{}, errors.Wrap(err, "insert default preferences")
	}

	prefs, err = r.getPreferences(ctx, userID)
	if err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.GetOrCreatePreferences.reload: %v", err)
		return model.NotificationPreferences{}, errors.Wrap(err, "reload preferences")
	}

	return prefs, nil
}

func (r *implRepository) UpdatePreferences(ctx context.Context, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	prefs.UpdatedAt = r.clock()

	query := `INSERT INTO notification_preferences
		(user_id, max_alerts_per_day, quiet_hours_start, quiet_hours_end, timezone, email_enabled, sms_enabled, slack_enabled, phone_number, slack_webhook_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			max_alerts_per_day = EXCLUDED.max_alerts_per_day,
			quiet_hours_start = EXCLUDED.quiet_hours_start,
			quiet_hours_end = EXCLUDED.quiet_hours_end,
			timezone = EXCLUDED.timezone,
			email_enabled = EXCLUDED.email_enabled,
			sms_enabled = EXCLUDED.sms_enabled,
			slack_enabled = EXCLUDED.slack_enabled,
			phone_number = EXCLUDED.phone_number,
			slack_webhook_url = EXCLUDED.slack_webhook_url,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		prefs.UserID, prefs.MaxAlertsPerDay, prefs.QuietHoursStart, prefs.QuietHoursEnd, prefs.Timezone,
		prefs.EmailEnabled, prefs.SMSEnabled, prefs.SlackEnabled, prefs.PhoneNumber, prefs.SlackWebhookURL, prefs.UpdatedAt,
	); err != nil {
		r.l.Errorf(ctx, "internal.alerting.repository.postgres.UpdatePreferences.Exec: %v", err)
		return model.NotificationPreferences{}, errors.Wrap(err, "upsert preferences")
	}

	return prefs, nil
}

func (r *implRepository) getPreferences(ctx context.Context, userID string) (model.NotificationPreferences, error) {
	var p model.NotificationPreferences
	err := r.db.QueryRowContext(ctx,
		"SELECT "+preferenceColumns+" FROM notification_preferences WHERE user_id = $1", userID,
	).Scan(
		&p.UserID,
		&p.MaxAlertsPerDay,
		&p.QuietHoursStart,
		&p.QuietHoursEnd,
		&p.Timezone,
		&p.EmailEnabled,
		&p.SMSEnabled,
		&p.SlackEnabled,
		&p.PhoneNumber,
		&p.SlackWebhookURL,
		&p.UpdatedAt,
	)
	return p, err
}
