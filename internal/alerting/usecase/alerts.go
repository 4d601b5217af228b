package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"

	"github.com/friendsofgo/errors"
)

func (uc *usecase) ListAlerts(ctx context.Context, sc model.Scope, input alerting.ListAlertsInput) ([]model.Alert, paginator.Paginator, error) {
	alerts, pag, err := uc.repo.ListAlerts(ctx, sc, repository.ListAlertsOptions{
		UnreadOnly:    input.UnreadOnly,
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alerting.usecase.ListAlerts.repo: %v", err)
		return nil, paginator.Paginator{}, err
	}

	return alerts, pag, nil
}

func (uc *usecase) Acknowledge(ctx context.Context, sc model.Scope, alertID string) error {
	if err := uc.repo.Acknowledge(ctx, sc, alertID, uc.clock()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return alerting.ErrAlertNotFound
		}
		uc.l.Errorf(ctx, "internal.alerting.usecase.Acknowledge.repo: %v", err)
		return err
	}

	return nil
}

func (uc *usecase) ListNotifications(ctx context.Context, sc model.Scope, input alerting.ListNotificationsInput) ([]model.AlertNotification, paginator.Paginator, error) {
	notifications, pag, err := uc.repo.ListNotifications(ctx, sc, repository.ListNotificationsOptions{
		UnreadOnly:    input.UnreadOnly,
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alerting.usecase.ListNotifications.repo: %v", err)
		return nil, paginator.Paginator{}, err
	}

	return notifications, pag, nil
}

func (uc *usecase) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	if err := uc.repo.AcknowledgeNotification(ctx, sc, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return alerting.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.alerting.usecase.AcknowledgeNotification.repo: %v", err)
		return err
	}

	return nil
}

func (uc *usecase) GetPreferences(ctx context.Context, sc model.Scope) (model.NotificationPreferences, error) {
	prefs, err := uc.repo.GetOrCreatePreferences(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alerting.usecase.GetPreferences.repo: %v", err)
		return model.NotificationPreferences{}, err
	}

	return prefs, nil
}

func (uc *usecase) UpdatePreferences(ctx context.Context, sc model.Scope, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	prefs.UserID = sc.UserID

	if err := validatePreferences(prefs); err != nil {
		return model.NotificationPreferences{}, errors.Wrap(alerting.ErrInvalidPreferences, err.Error())
	}

	updated, err := uc.repo.UpdatePreferences(ctx, prefs)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alerting.usecase.UpdatePreferences.repo: %v", err)
		return model.NotificationPreferences{}, err
	}

	return updated, nil
}

func validatePreferences(prefs model.NotificationPreferences) error {
	if prefs.MaxAlertsPerDay < 1 {
		return errors.New("max_alerts_per_day must be positive")
	}
	if prefs.QuietHoursStart.Valid != prefs.QuietHoursEnd.Valid {
		return errors.New("quiet hours require both start and end")
	}
	if prefs.QuietHoursStart.Valid {
		if _, err := parseClock(prefs.QuietHoursStart.String); err != nil {
			return err
		}
		if _, err := parseClock(prefs.QuietHoursEnd.String); err != nil {
			return err
		}
	}
	if prefs.Timezone == "" {
		return errors.New("timezone is required")
	}

	return nil
}
