package usecase

import (
	"context"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/metrics"
)

const (
	resultSent        = "sent"
	resultFailed      = "failed"
	resultSkippedTier = "skipped_tier"
)

func (uc *usecase) Dispatch(ctx context.Context, input alerting.DispatchInput) (alerting.DispatchResult, error) {
	var res alerting.DispatchResult
	attempted := 0

	for _, ch := range input.Channels {
		switch ch {
		case model.ChannelEmail:
			if !input.Prefs.EmailEnabled || uc.email == nil || input.User.Email == "" {
				uc.l.Debugf(ctx, "internal.alerting.usecase.Dispatch: email unavailable for user %s", input.User.ID)
				res.Skipped = append(res.Skipped, ch)
				continue
			}
			attempted++
			subject, body := renderEmail(input.Content, input.Severity)
			if err := uc.email.SendEmail(ctx, input.User.Email, subject, body); err != nil {
				uc.l.Errorf(ctx, "internal.alerting.usecase.Dispatch.SendEmail: %v", err)
				metrics.NotificationsSent.WithLabelValues(string(ch), resultFailed).Inc()
				res.Failed = append(res.Failed, ch)
				continue
			}
			metrics.NotificationsSent.WithLabelValues(string(ch), resultSent).Inc()
			res.Sent = append(res.Sent, ch)

		case model.ChannelSMS:
			if input.User.Tier != model.TierPro {
				uc.l.Debugf(ctx, "internal.alerting.usecase.Dispatch: sms requires pro tier, user %s is %q", input.User.ID, input.User.Tier)
				metrics.NotificationsSent.WithLabelValues(string(ch), resultSkippedTier).Inc()
				res.Skipped = append(res.Skipped, ch)
				continue
			}
			if !input.Prefs.SMSEnabled || uc.sms == nil || !input.Prefs.PhoneNumber.Valid {
				uc.l.Debugf(ctx, "internal.alerting.usecase.Dispatch: sms unavailable for user %s", input.User.ID)
				res.Skipped = append(res.Skipped, ch)
				continue
			}
			attempted++
			if err := uc.sms.SendSMS(ctx, input.Prefs.PhoneNumber.String, renderSMS(input.Content)); err != nil {
				uc.l.Errorf(ctx, "internal.alerting.usecase.Dispatch.SendSMS: %v", err)
				metrics.NotificationsSent.WithLabelValues(string(ch), resultFailed).Inc()
				res.Failed = append(res.Failed, ch)
				continue
			}
			metrics.NotificationsSent.WithLabelValues(string(ch), resultSent).Inc()
			res.Sent = append(res.Sent, ch)

		case model.ChannelSlack:
			if input.User.Tier != model.TierPro {
				uc.l.Debugf(ctx, "internal.alerting.usecase.Dispatch: slack requires pro tier, user %s is %q", input.User.ID, input.User.Tier)
				metrics.NotificationsSent.WithLabelValues(string(ch), resultSkippedTier).Inc()
				res.Skipped = append(res.Skipped, ch)
				continue
			}
			if !input.Prefs.SlackEnabled || uc.slack == nil || !input.Prefs.SlackWebhookURL.Valid {
				uc.l.Debugf(ctx, "internal.alerting.usecase.Dispatch: slack unavailable for user %s", input.User.ID)
				res.Skipped = append(res.Skipped, ch)
				continue
			}
			attempted++
			if err := uc.slack.SendWebhook(ctx, input.Prefs.SlackWebhookURL.String, renderSlack(input.Content, input.Severity)); err != nil {
				uc.l.Errorf(ctx, "internal.alerting.usecase.Dispatch.SendWebhook: %v", err)
				metrics.NotificationsSent.WithLabelValues(string(ch), resultFailed).Inc()
				res.Failed = append(res.Failed, ch)
				continue
			}
			metrics.NotificationsSent.WithLabelValues(string(ch), resultSent).Inc()
			res.Sent = append(res.Sent, ch)

		default:
			uc.l.Warnf(ctx, "internal.alerting.usecase.Dispatch: unknown channel %q", ch)
		}
	}

	if attempted > 0 && len(res.Sent) == 0 {
		return res, alerting.ErrNoChannelDelivered
	}

	return res, nil
}
