package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	slackPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/slack"

	"github.com/aarondl/null/v8"
)

type mockEmailSender struct {
	sent []string
	err  error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *mockEmailSender) Close() error { return nil }

type mockSMSSender struct {
	sent []string
	body string
	err  error
}

func (m *mockSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.body = body
	return nil
}

func (m *mockSMSSender) Close() error { return nil }

type mockSlackSender struct {
	sent []slackPkg.Message
	err  error
}

func (m *mockSlackSender) SendWebhook(ctx context.Context, webhookURL string, msg slackPkg.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockSlackSender) Close() error { return nil }

func proInput() alerting.DispatchInput {
	return alerting.DispatchInput{
		User: model.User{ID: "user-1", Email: "u@example.com", Tier: model.TierPro},
		Prefs: model.NotificationPreferences{
			UserID:          "user-1",
			EmailEnabled:    true,
			SMSEnabled:      true,
			SlackEnabled:    true,
			PhoneNumber:     null.StringFrom("+15551234567"),
			SlackWebhookURL: null.StringFrom("https://hooks.slack.com/services/T/B/X"),
			Timezone:        "UTC",
		},
		Channels: []model.Channel{model.ChannelEmail, model.ChannelSMS, model.ChannelSlack},
		Content: model.AlertContent{
			SearchName:     "Phase 3 oncology",
			Ticker:         "ACME",
			Phase:          "Phase 3",
			Indication:     "NSCLC",
			CompletionDate: "2026-09-15",
			DaysUntil:      null.IntFrom(45),
			MarketCap:      "$1.2B",
		},
		Severity: model.SeverityInfo,
	}
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("pro user gets all requested channels", func(t *testing.T) {
		email := &mockEmailSender{}
		sms := &mockSMSSender{}
		slk := &mockSlackSender{}
		uc := New(&mockLogger{}, &mockRepo{}, nil, email, sms, slk).(*usecase)

		res, err := uc.Dispatch(ctx, proInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Sent) != 3 {
			t.Errorf("sent = %v", res.Sent)
		}
		if len(email.sent) != 1 || len(sms.sent) != 1 || len(slk.sent) != 1 {
			t.Errorf("delivery counts: email=%d sms=%d slack=%d", len(email.sent), len(sms.sent), len(slk.sent))
		}
	})

	t.Run("free tier only gets email", func(t *testing.T) {
		email := &mockEmailSender{}
		sms := &mockSMSSender{}
		slk := &mockSlackSender{}
		uc := New(&mockLogger{}, &mockRepo{}, nil, email, sms, slk).(*usecase)

		input := proInput()
		input.User.Tier = "free"

		res, err := uc.Dispatch(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Sent) != 1 || res.Sent[0] != model.ChannelEmail {
			t.Errorf("sent = %v", res.Sent)
		}
		if len(sms.sent) != 0 || len(slk.sent) != 0 {
			t.Error("sms/slack must not deliver below pro tier")
		}
		if len(res.Skipped) != 2 {
			t.Errorf("skipped = %v", res.Skipped)
		}
	})

	t.Run("channel failure does not block the others", func(t *testing.T) {
		email := &mockEmailSender{err: errors.New("sendgrid 500")}
		sms := &mockSMSSender{}
		slk := &mockSlackSender{}
		uc := New(&mockLogger{}, &mockRepo{}, nil, email, sms, slk).(*usecase)

		res, err := uc.Dispatch(ctx, proInput())
		if err != nil {
			t.Fatalf("one channel delivered, dispatch should succeed: %v", err)
		}
		if len(res.Failed) != 1 || res.Failed[0] != model.ChannelEmail {
			t.Errorf("failed = %v", res.Failed)
		}
		if len(res.Sent) != 2 {
			t.Errorf("sent = %v", res.Sent)
		}
	})

	t.Run("all channels failing is an error", func(t *testing.T) {
		email := &mockEmailSender{err: errors.New("down")}
		sms := &mockSMSSender{err: errors.New("down")}
		slk := &mockSlackSender{err: errors.New("down")}
		uc := New(&mockLogger{}, &mockRepo{}, nil, email, sms, slk).(*usecase)

		res, err := uc.Dispatch(ctx, proInput())
		if !errors.Is(err, alerting.ErrNoChannelDelivered) {
			t.Errorf("err = %v, want ErrNoChannelDelivered", err)
		}
		if res.Delivered() {
			t.Error("nothing should have delivered")
		}
	})

	t.Run("unconfigured senders are skipped, not attempted", func(t *testing.T) {
		uc := New(&mockLogger{}, &mockRepo{}, nil, nil, nil, nil).(*usecase)

		res, err := uc.Dispatch(ctx, proInput())
		if err != nil {
			t.Fatalf("skipping everything is not a failure: %v", err)
		}
		if len(res.Skipped) != 3 || len(res.Failed) != 0 {
			t.Errorf("skipped = %v, failed = %v", res.Skipped, res.Failed)
		}
	})

	t.Run("disabled preference skips the channel", func(t *testing.T) {
		email := &mockEmailSender{}
		uc := New(&mockLogger{}, &mockRepo{}, nil, email, nil, nil).(*usecase)

		input := proInput()
		input.Prefs.EmailEnabled = false
		input.Channels = []model.Channel{model.ChannelEmail}

		res, err := uc.Dispatch(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(email.sent) != 0 || len(res.Skipped) != 1 {
			t.Errorf("email should be skipped: %+v", res)
		}
	})
}

func TestRenderSMS(t *testing.T) {
	t.Run("includes the essentials", func(t *testing.T) {
		msg := renderSMS(proInput().Content)
		for _, want := range []string{"ACME", "Phase 3", "2026-09-15", "45d"} {
			if !strings.Contains(msg, want) {
				t.Errorf("sms %q missing %q", msg, want)
			}
		}
	})

	t.Run("never exceeds 160 characters", func(t *testing.T) {
		c := proInput().Content
		c.Indication = strings.Repeat("very long indication ", 20)
		msg := renderSMS(c)
		if len(msg) > 160 {
			t.Errorf("sms length %d", len(msg))
		}
	})
}

func TestRenderEmail(t *testing.T) {
	c := proInput().Content
	subject, body := renderEmail(c, model.SeverityCritical)

	if !strings.Contains(subject, "ACME") {
		t.Errorf("subject %q missing ticker", subject)
	}
	if !strings.Contains(body, "Phase 3 oncology") {
		t.Errorf("body missing search name")
	}
	if !strings.Contains(body, "CRITICAL") {
		t.Errorf("critical severity should be called out")
	}
}
