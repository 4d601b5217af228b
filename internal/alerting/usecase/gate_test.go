package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"

	"github.com/aarondl/null/v8"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

type mockRepo struct {
	sentToday    int
	sentTodayErr error
	ackErr       error
	prefs        model.NotificationPreferences
	prefsErr     error
}

func (m *mockRepo) AlreadySent(ctx context.Context, searchID, catalystID string) (bool, error) {
	return false, nil
}

func (m *mockRepo) RecordSearchAlert(ctx context.Context, opts repository.RecordSearchAlertOptions) (model.AlertNotification, error) {
	return model.AlertNotification{}, nil
}

func (m *mockRepo) CountSentToday(ctx context.Context, userID string, dayStart time.Time) (int, error) {
	return m.sentToday, m.sentTodayErr
}

func (m *mockRepo) AlreadyAlerted(ctx context.Context, opts repository.AlertedOptions) (bool, error) {
	return false, nil
}

func (m *mockRepo) RecordWatchlistAlert(ctx context.Context, alert model.Alert) (model.Alert, error) {
	return alert, nil
}

func (m *mockRepo) ListAlerts(ctx context.Context, sc model.Scope, opts repository.ListAlertsOptions) ([]model.Alert, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (m *mockRepo) Acknowledge(ctx context.Context, sc model.Scope, alertID string, at time.Time) error {
	return m.ackErr
}

func (m *mockRepo) ListNotifications(ctx context.Context, sc model.Scope, opts repository.ListNotificationsOptions) ([]model.AlertNotification, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (m *mockRepo) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	return nil
}

func (m *mockRepo) GetOrCreatePreferences(ctx context.Context, userID string) (model.NotificationPreferences, error) {
	return m.prefs, m.prefsErr
}

func (m *mockRepo) UpdatePreferences(ctx context.Context, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	return prefs, nil
}

type mockRedis struct {
	counts map[string]int64
	err    error
}

func (m *mockRedis) IncrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *mockRedis) Get(ctx context.Context, key string) (string, error) { return "", m.err }
func (m *mockRedis) SetNX(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return true, m.err
}
func (m *mockRedis) Ping(ctx context.Context) error { return m.err }
func (m *mockRedis) Close() error                   { return nil }

func basePrefs() model.NotificationPreferences {
	return model.NotificationPreferences{
		UserID:          "user-1",
		MaxAlertsPerDay: 3,
		Timezone:        "UTC",
		EmailEnabled:    true,
	}
}

func TestCanNotifyQuietHours(t *testing.T) {
	ctx := context.Background()
	// 02:30 UTC
	now := time.Date(2026, 4, 10, 2, 30, 0, 0, time.UTC)

	newUC := func(repo *mockRepo) *usecase {
		uc := New(&mockLogger{}, repo, nil, nil, nil, nil).(*usecase)
		return uc
	}

	t.Run("inside a wrapping window is rejected", func(t *testing.T) {
		prefs := basePrefs()
		prefs.QuietHoursStart = null.StringFrom("22:00")
		prefs.QuietHoursEnd = null.StringFrom("08:00")

		res := newUC(&mockRepo{}).CanNotify(ctx, prefs, now)
		if res.Allowed {
			t.Error("expected rejection inside quiet hours")
		}
		if res.Reason != alerting.GateReasonQuietHours {
			t.Errorf("reason = %q", res.Reason)
		}
	})

	t.Run("outside the window is allowed", func(t *testing.T) {
		prefs := basePrefs()
		prefs.QuietHoursStart = null.StringFrom("09:00")
		prefs.QuietHoursEnd = null.StringFrom("17:00")

		res := newUC(&mockRepo{}).CanNotify(ctx, prefs, now)
		if !res.Allowed {
			t.Errorf("expected admission, got reason %q", res.Reason)
		}
	})

	t.Run("window boundaries follow the user timezone", func(t *testing.T) {
		prefs := basePrefs()
		prefs.Timezone = "America/New_York"
		// 02:30 UTC is 22:30 previous day in New York.
		prefs.QuietHoursStart = null.StringFrom("22:00")
		prefs.QuietHoursEnd = null.StringFrom("23:00")

		res := newUC(&mockRepo{}).CanNotify(ctx, prefs, now)
		if res.Allowed {
			t.Error("expected rejection in user-local quiet hours")
		}
	})

	t.Run("equal endpoints disable the window", func(t *testing.T) {
		prefs := basePrefs()
		prefs.QuietHoursStart = null.StringFrom("08:00")
		prefs.QuietHoursEnd = null.StringFrom("08:00")

		res := newUC(&mockRepo{}).CanNotify(ctx, prefs, now)
		if !res.Allowed {
			t.Errorf("expected admission, got reason %q", res.Reason)
		}
	})

	t.Run("unparseable window fails open with error", func(t *testing.T) {
		prefs := basePrefs()
		prefs.QuietHoursStart = null.StringFrom("bogus")
		prefs.QuietHoursEnd = null.StringFrom("08:00")

		res := newUC(&mockRepo{}).CanNotify(ctx, prefs, now)
		if !res.Allowed {
			t.Error("gate failure must not block delivery")
		}
		if res.Err == nil {
			t.Error("expected the parse error to surface")
		}
	})
}

func TestCanNotifyDailyCap(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	t.Run("store count under the cap is allowed", func(t *testing.T) {
		repo := &mockRepo{sentToday: 2}
		uc := New(&mockLogger{}, repo, nil, nil, nil, nil).(*usecase)

		res := uc.CanNotify(ctx, basePrefs(), now)
		if !res.Allowed {
			t.Errorf("expected admission, got reason %q", res.Reason)
		}
	})

	t.Run("store count at the cap is rejected", func(t *testing.T) {
		repo := &mockRepo{sentToday: 3}
		uc := New(&mockLogger{}, repo, nil, nil, nil, nil).(*usecase)

		res := uc.CanNotify(ctx, basePrefs(), now)
		if res.Allowed {
			t.Error("expected rate limit rejection")
		}
		if res.Reason != alerting.GateReasonRateLimited {
			t.Errorf("reason = %q", res.Reason)
		}
	})

	t.Run("redis fast path counts admissions", func(t *testing.T) {
		rds := &mockRedis{}
		uc := New(&mockLogger{}, &mockRepo{}, rds, nil, nil, nil).(*usecase)

		prefs := basePrefs()
		allowed := 0
		for i := 0; i < 5; i++ {
			if uc.CanNotify(ctx, prefs, now).Allowed {
				allowed++
			}
		}
		if allowed != prefs.MaxAlertsPerDay {
			t.Errorf("allowed %d admissions, cap is %d", allowed, prefs.MaxAlertsPerDay)
		}
	})

	t.Run("redis failure falls back to the store", func(t *testing.T) {
		rds := &mockRedis{err: errors.New("connection refused")}
		repo := &mockRepo{sentToday: 0}
		uc := New(&mockLogger{}, repo, rds, nil, nil, nil).(*usecase)

		res := uc.CanNotify(ctx, basePrefs(), now)
		if !res.Allowed {
			t.Errorf("expected store fallback admission, got reason %q", res.Reason)
		}
		if res.Err != nil {
			t.Errorf("fallback succeeded, Err should be nil: %v", res.Err)
		}
	})

	t.Run("counting failure fails open with error", func(t *testing.T) {
		repo := &mockRepo{sentTodayErr: errors.New("db down")}
		uc := New(&mockLogger{}, repo, nil, nil, nil, nil).(*usecase)

		res := uc.CanNotify(ctx, basePrefs(), now)
		if !res.Allowed {
			t.Error("gate failure must not block delivery")
		}
		if res.Err == nil {
			t.Error("expected the count error to surface")
		}
	})
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
