package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/middleware"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/paginator"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"

	"github.com/gin-gonic/gin"
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

type mockUseCase struct {
	alerts        []model.Alert
	listedInput   alerting.ListAlertsInput
	ackedID       string
	ackErr        error
	notifications []model.AlertNotification
	notifAckedID  string
	notifAckErr   error
	prefs         model.NotificationPreferences
}

func (m *mockUseCase) CanNotify(ctx context.Context, prefs model.NotificationPreferences, now time.Time) alerting.GateResult {
	return alerting.GateResult{Allowed: true}
}

func (m *mockUseCase) Dispatch(ctx context.Context, input alerting.DispatchInput) (alerting.DispatchResult, error) {
	return alerting.DispatchResult{}, nil
}

func (m *mockUseCase) ListAlerts(ctx context.Context, sc model.Scope, opts alerting.ListAlertsInput) ([]model.Alert, paginator.Paginator, error) {
	m.listedInput = opts
	return m.alerts, paginator.Paginator{Total: int64(len(m.alerts)), Count: int64(len(m.alerts))}, nil
}

func (m *mockUseCase) Acknowledge(ctx context.Context, sc model.Scope, alertID string) error {
	if m.ackErr != nil {
		return m.ackErr
	}
	m.ackedID = alertID
	return nil
}

func (m *mockUseCase) ListNotifications(ctx context.Context, sc model.Scope, opts alerting.ListNotificationsInput) ([]model.AlertNotification, paginator.Paginator, error) {
	return m.notifications, paginator.Paginator{Total: int64(len(m.notifications)), Count: int64(len(m.notifications))}, nil
}

func (m *mockUseCase) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	if m.notifAckErr != nil {
		return m.notifAckErr
	}
	m.notifAckedID = notificationID
	return nil
}

func (m *mockUseCase) GetPreferences(ctx context.Context, sc model.Scope) (model.NotificationPreferences, error) {
	return m.prefs, nil
}

func (m *mockUseCase) UpdatePreferences(ctx context.Context, sc model.Scope, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	return prefs, nil
}

func newTestRouter(t *testing.T, uc alerting.UseCase) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := scope.New("test-secret")
	token, err := jwtManager.CreateToken(scope.Payload{UserID: "user-1", Email: "u@example.com", Tier: "pro"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	r := gin.New()
	api := r.Group("/api/v1")
	New(&mockLogger{}, uc).RegisterRoutes(api, middleware.New(&mockLogger{}, jwtManager))

	return r, token
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListAlerts(t *testing.T) {
	uc := &mockUseCase{alerts: []model.Alert{
		{ID: "a1", Ticker: "ACME", Type: model.AlertTypeRedFlag, Severity: model.SeverityCritical, TriggerEvent: "ACME: RED FLAG - Clinical hold in effect"},
	}}
	r, token := newTestRouter(t, uc)

	t.Run("missing token is rejected", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/alerts", "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("returns the caller's alerts", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/alerts?unread_only=true&page=2&limit=5", token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			Data listAlertsResp `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Data.Items) != 1 || resp.Data.Items[0].ID != "a1" {
			t.Errorf("items = %+v", resp.Data.Items)
		}
		if !uc.listedInput.UnreadOnly {
			t.Error("unread_only not propagated")
		}
		if uc.listedInput.PaginateQuery.Page != 2 || uc.listedInput.PaginateQuery.Limit != 5 {
			t.Errorf("pagination = %+v", uc.listedInput.PaginateQuery)
		}
	})
}

func TestAcknowledge(t *testing.T) {
	const alertID = "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"

	t.Run("valid id is acknowledged", func(t *testing.T) {
		uc := &mockUseCase{}
		r, token := newTestRouter(t, uc)

		w := doRequest(r, http.MethodPost, "/api/v1/alerts/"+alertID+"/acknowledge", token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if uc.ackedID != alertID {
			t.Errorf("acked %q", uc.ackedID)
		}
	})

	t.Run("malformed id is a validation error", func(t *testing.T) {
		uc := &mockUseCase{}
		r, token := newTestRouter(t, uc)

		w := doRequest(r, http.MethodPost, "/api/v1/alerts/not-a-uuid/acknowledge", token, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown alert maps to 404", func(t *testing.T) {
		uc := &mockUseCase{ackErr: alerting.ErrAlertNotFound}
		r, token := newTestRouter(t, uc)

		w := doRequest(r, http.MethodPost, "/api/v1/alerts/"+alertID+"/acknowledge", token, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestListNotifications(t *testing.T) {
	uc := &mockUseCase{notifications: []model.AlertNotification{
		{
			ID:           "n1",
			SearchID:     "s1",
			CatalystID:   "c1",
			Channels:     []model.Channel{model.ChannelEmail},
			Content:      model.AlertContent{SearchName: "Phase 3 readouts", Ticker: "ACME"},
			Acknowledged: true,
		},
	}}
	r, token := newTestRouter(t, uc)

	w := doRequest(r, http.MethodGet, "/api/v1/notifications", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data listNotificationsResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.Items) != 1 {
		t.Fatalf("items = %+v", resp.Data.Items)
	}
	item := resp.Data.Items[0]
	if item.ID != "n1" || !item.Acknowledged || item.Content.Ticker != "ACME" {
		t.Errorf("item = %+v", item)
	}
}

func TestAcknowledgeNotification(t *testing.T) {
	const notificationID = "7a6b5c4d-3e2f-4190-8807-16253449586a"

	t.Run("valid id is acknowledged", func(t *testing.T) {
		uc := &mockUseCase{}
		r, token := newTestRouter(t, uc)

		w := doRequest(r, http.MethodPost, "/api/v1/notifications/"+notificationID+"/acknowledge", token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if uc.notifAckedID != notificationID {
			t.Errorf("acked %q", uc.notifAckedID)
		}
	})

	t.Run("unknown notification maps to 404", func(t *testing.T) {
		uc := &mockUseCase{notifAckErr: alerting.ErrNotificationNotFound}
		r, token := newTestRouter(t, uc)

		w := doRequest(r, http.MethodPost, "/api/v1/notifications/"+notificationID+"/acknowledge", token, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestUpdatePreferences(t *testing.T) {
	uc := &mockUseCase{}
	r, token := newTestRouter(t, uc)

	body := `{"max_alerts_per_day": 5, "timezone": "UTC", "email_enabled": true, "quiet_hours_start": "22:00", "quiet_hours_end": "07:00"}`
	w := doRequest(r, http.MethodPut, "/api/v1/preferences", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data preferencesResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.MaxAlertsPerDay != 5 || resp.Data.Timezone != "UTC" {
		t.Errorf("prefs = %+v", resp.Data)
	}
	if resp.Data.QuietHoursStart.String != "22:00" {
		t.Errorf("quiet hours start = %+v", resp.Data.QuietHoursStart)
	}
}
