package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	alertRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	searchRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository"
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

type fakeSearchRepo struct {
	searches    []model.SavedSearch
	listErr     error
	lastChecked map[string]time.Time
}

func (f *fakeSearchRepo) ListActive(ctx context.Context) ([]model.SavedSearch, error) {
	return f.searches, f.listErr
}

func (f *fakeSearchRepo) ListForUser(ctx context.Context, sc model.Scope, opts searchRepo.ListOptions) ([]model.SavedSearch, error) {
	return f.searches, nil
}

func (f *fakeSearchRepo) Detail(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error) {
	return model.SavedSearch{}, searchRepo.ErrNotFound
}

func (f *fakeSearchRepo) Create(ctx context.Context, sc model.Scope, opts searchRepo.CreateOptions) (model.SavedSearch, error) {
	return model.SavedSearch{}, nil
}

func (f *fakeSearchRepo) UpdateLastChecked(ctx context.Context, id string, checkedAt time.Time) error {
	if f.lastChecked == nil {
		f.lastChecked = map[string]time.Time{}
	}
	f.lastChecked[id] = checkedAt
	return nil
}

func (f *fakeSearchRepo) SetActive(ctx context.Context, sc model.Scope, id string, active bool) error {
	return nil
}

type fakeMatcher struct {
	matches    map[string][]model.Catalyst // keyed by criteria phase
	err        error
	errByPhase map[string]error
	calls      int
}

func (f *fakeMatcher) FindMatches(ctx context.Context, criteria model.SearchCriteria, lastChecked null.Time) ([]model.Catalyst, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errByPhase[criteria.Phase.String]; err != nil {
		return nil, err
	}
	return f.matches[criteria.Phase.String], nil
}

func (f *fakeMatcher) ListSearches(ctx context.Context, sc model.Scope) ([]model.SavedSearch, error) {
	return nil, nil
}

func (f *fakeMatcher) DetailSearch(ctx context.Context, sc model.Scope, id string) (model.SavedSearch, error) {
	return model.SavedSearch{}, search.ErrSearchNotFound
}

func (f *fakeMatcher) CreateSearch(ctx context.Context, sc model.Scope, input search.CreateSearchInput) (model.SavedSearch, error) {
	return model.SavedSearch{}, nil
}

func (f *fakeMatcher) SetActive(ctx context.Context, sc model.Scope, id string, active bool) error {
	return nil
}

type fakeUsers struct {
	users map[string]model.User
}

func (f *fakeUsers) Detail(ctx context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, errors.New("user not found")
	}
	return u, nil
}

// memNotificationStore tracks (search, catalyst) pairs like the
// postgres repository's unique constraint does.
type memNotificationStore struct {
	recorded map[[2]string]bool
	dedupErr error
	prefsErr error
}

func (m *memNotificationStore) AlreadySent(ctx context.Context, searchID, catalystID string) (bool, error) {
	if m.dedupErr != nil {
		return false, m.dedupErr
	}
	return m.recorded[[2]string{searchID, catalystID}], nil
}

func (m *memNotificationStore) RecordSearchAlert(ctx context.Context, opts alertRepo.RecordSearchAlertOptions) (model.AlertNotification, error) {
	if m.recorded == nil {
		m.recorded = map[[2]string]bool{}
	}
	key := [2]string{opts.SearchID, opts.CatalystID}
	if m.recorded[key] {
		return model.AlertNotification{}, alertRepo.ErrDuplicate
	}
	m.recorded[key] = true
	return model.AlertNotification{SearchID: opts.SearchID, CatalystID: opts.CatalystID}, nil
}

func (m *memNotificationStore) CountSentToday(ctx context.Context, userID string, dayStart time.Time) (int, error) {
	return 0, nil
}

func (m *memNotificationStore) AlreadyAlerted(ctx context.Context, opts alertRepo.AlertedOptions) (bool, error) {
	return false, nil
}

func (m *memNotificationStore) RecordWatchlistAlert(ctx context.Context, alert model.Alert) (model.Alert, error) {
	return alert, nil
}

func (m *memNotificationStore) ListAlerts(ctx context.Context, sc model.Scope, opts alertRepo.ListAlertsOptions) ([]model.Alert, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (m *memNotificationStore) Acknowledge(ctx context.Context, sc model.Scope, alertID string, at time.Time) error {
	return nil
}

func (m *memNotificationStore) ListNotifications(ctx context.Context, sc model.Scope, opts alertRepo.ListNotificationsOptions) ([]model.AlertNotification, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (m *memNotificationStore) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	return nil
}

func (m *memNotificationStore) GetOrCreatePreferences(ctx context.Context, userID string) (model.NotificationPreferences, error) {
	if m.prefsErr != nil {
		return model.NotificationPreferences{}, m.prefsErr
	}
	return model.DefaultPreferences(userID), nil
}

func (m *memNotificationStore) UpdatePreferences(ctx context.Context, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	return prefs, nil
}

type fakeAlerting struct {
	gate        alerting.GateResult
	dispatch    alerting.DispatchResult
	dispatchErr error
	dispatched  []alerting.DispatchInput
}

func (f *fakeAlerting) CanNotify(ctx context.Context, prefs model.NotificationPreferences, now time.Time) alerting.GateResult {
	return f.gate
}

func (f *fakeAlerting) Dispatch(ctx context.Context, input alerting.DispatchInput) (alerting.DispatchResult, error) {
	f.dispatched = append(f.dispatched, input)
	return f.dispatch, f.dispatchErr
}

func (f *fakeAlerting) ListAlerts(ctx context.Context, sc model.Scope, opts alerting.ListAlertsInput) ([]model.Alert, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (f *fakeAlerting) Acknowledge(ctx context.Context, sc model.Scope, alertID string) error {
	return nil
}

func (f *fakeAlerting) ListNotifications(ctx context.Context, sc model.Scope, opts alerting.ListNotificationsInput) ([]model.AlertNotification, paginator.Paginator, error) {
	return nil, paginator.Paginator{}, nil
}

func (f *fakeAlerting) AcknowledgeNotification(ctx context.Context, sc model.Scope, notificationID string) error {
	return nil
}

func (f *fakeAlerting) GetPreferences(ctx context.Context, sc model.Scope) (model.NotificationPreferences, error) {
	return model.DefaultPreferences(sc.UserID), nil
}

func (f *fakeAlerting) UpdatePreferences(ctx context.Context, sc model.Scope, prefs model.NotificationPreferences) (model.NotificationPreferences, error) {
	return prefs, nil
}

type fakeWatchlist struct {
	dateAlerts []model.Alert
	flagAlerts []model.Alert
	dateErr    error
}

func (f *fakeWatchlist) CheckDateWindows(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	return f.dateAlerts, f.dateErr
}

func (f *fakeWatchlist) CheckTimelineChanges(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	return nil, nil
}

func (f *fakeWatchlist) CheckRedFlags(ctx context.Context, user model.WatchlistUser) ([]model.Alert, error) {
	return f.flagAlerts, nil
}

type fakeWatchRepo struct {
	users   []model.WatchlistUser
	listErr error
}

func (f *fakeWatchRepo) ListUsersWithTickers(ctx context.Context) ([]model.WatchlistUser, error) {
	return f.users, f.listErr
}

func testSearch(id, phase string) model.SavedSearch {
	return model.SavedSearch{
		ID:       id,
		UserID:   "user-1",
		Name:     "my search " + id,
		Criteria: model.SearchCriteria{Phase: null.StringFrom(phase)},
		Channels: []model.Channel{model.ChannelEmail},
		Active:   true,
	}
}

func testCatalyst(id string) model.Catalyst {
	return model.Catalyst{
		ID:             id,
		Ticker:         null.StringFrom("ACME"),
		Phase:          null.StringFrom("Phase 3"),
		CompletionDate: null.TimeFrom(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		MarketCap:      null.Float64From(1.2e9),
	}
}

func newSweepUC(sr *fakeSearchRepo, fm *fakeMatcher, store *memNotificationStore, al *fakeAlerting, wl *fakeWatchlist, wr *fakeWatchRepo) *usecase {
	users := &fakeUsers{users: map[string]model.User{
		"user-1": {ID: "user-1", Email: "u@example.com", Tier: "free"},
	}}
	return New(&mockLogger{}, sr, fm, users, store, al, wl, wr).(*usecase)
}

func TestRunSearchSweep(t *testing.T) {
	ctx := context.Background()

	allowAll := alerting.GateResult{Allowed: true}
	emailSent := alerting.DispatchResult{Sent: []model.Channel{model.ChannelEmail}}

	t.Run("match produces one notification and advances last_checked", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{matches: map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}}}
		store := &memNotificationStore{}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.SearchesChecked != 1 || summary.MatchesFound != 1 || summary.NotificationsSent != 1 || summary.Errors != 0 {
			t.Errorf("summary = %+v", summary)
		}
		if _, ok := sr.lastChecked["s1"]; !ok {
			t.Error("last_checked not advanced")
		}
		if !store.recorded[[2]string{"s1", "c1"}] {
			t.Error("notification not recorded")
		}
	})

	t.Run("second run with no new catalysts sends nothing", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{matches: map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}}}
		store := &memNotificationStore{}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}
		uc := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{})

		first, _ := uc.RunSearchSweep(ctx)
		second, _ := uc.RunSearchSweep(ctx)

		if first.NotificationsSent != 1 {
			t.Errorf("first run sent %d", first.NotificationsSent)
		}
		if second.NotificationsSent != 0 {
			t.Errorf("second run sent %d, idempotence broken", second.NotificationsSent)
		}
		if len(store.recorded) != 1 {
			t.Errorf("%d notifications recorded for one pair", len(store.recorded))
		}
	})

	t.Run("matcher failure skips the unit and leaves last_checked alone", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{err: errors.New("feed down")}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(sr, fm, &memNotificationStore{}, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("a unit error must not abort the batch: %v", err)
		}
		if summary.Errors != 1 {
			t.Errorf("errors = %d", summary.Errors)
		}
		if len(sr.lastChecked) != 0 {
			t.Error("last_checked must not advance past an unprocessed window")
		}
	})

	t.Run("one bad search does not stop the rest", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{
			testSearch("s1", "Phase 1"),
			testSearch("s2", "Phase 3"),
		}}
		fm := &fakeMatcher{
			matches:    map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}},
			errByPhase: map[string]error{"Phase 1": errors.New("feed down")},
		}
		store := &memNotificationStore{}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.SearchesChecked != 2 || summary.NotificationsSent != 1 || summary.Errors != 1 {
			t.Errorf("summary = %+v", summary)
		}
		if _, ok := sr.lastChecked["s1"]; ok {
			t.Error("failed unit must not advance last_checked")
		}
		if _, ok := sr.lastChecked["s2"]; !ok {
			t.Error("healthy unit must advance last_checked")
		}
	})

	t.Run("gate rejection suppresses dispatch and record", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{matches: map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}}}
		store := &memNotificationStore{}
		al := &fakeAlerting{gate: alerting.GateResult{Reason: alerting.GateReasonRateLimited}}

		summary, err := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.NotificationsSent != 0 || len(al.dispatched) != 0 || len(store.recorded) != 0 {
			t.Errorf("suppressed match leaked: %+v", summary)
		}
		if _, ok := sr.lastChecked["s1"]; !ok {
			t.Error("last_checked still advances on suppression")
		}
	})

	t.Run("failed dedup lookup skips the catalyst, not the sweep", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{matches: map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}}}
		store := &memNotificationStore{dedupErr: errors.New("db down")}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(al.dispatched) != 0 {
			t.Error("must not dispatch without a dedup answer")
		}
		if summary.Errors != 1 {
			t.Errorf("errors = %d", summary.Errors)
		}
	})

	t.Run("failed preference lookup falls back to defaults and delivers", func(t *testing.T) {
		sr := &fakeSearchRepo{searches: []model.SavedSearch{testSearch("s1", "Phase 3")}}
		fm := &fakeMatcher{matches: map[string][]model.Catalyst{"Phase 3": {testCatalyst("c1")}}}
		store := &memNotificationStore{prefsErr: errors.New("db down")}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(sr, fm, store, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.NotificationsSent != 1 || summary.Errors != 0 {
			t.Errorf("prefs lookup failure must not silence delivery: %+v", summary)
		}
		if len(al.dispatched) != 1 {
			t.Fatalf("dispatched %d times", len(al.dispatched))
		}
		if prefs := al.dispatched[0].Prefs; !prefs.EmailEnabled || prefs.UserID != "user-1" {
			t.Errorf("expected default preferences, got %+v", prefs)
		}
		if !store.recorded[[2]string{"s1", "c1"}] {
			t.Error("notification not recorded")
		}
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		sr := &fakeSearchRepo{listErr: errors.New("db down")}
		al := &fakeAlerting{gate: allowAll}

		_, err := newSweepUC(sr, &fakeMatcher{}, &memNotificationStore{}, al, &fakeWatchlist{}, &fakeWatchRepo{}).RunSearchSweep(ctx)
		if err == nil {
			t.Fatal("expected a fatal error when the work list is unreachable")
		}
	})
}

func TestRunWatchlistSweep(t *testing.T) {
	ctx := context.Background()

	allowAll := alerting.GateResult{Allowed: true}
	emailSent := alerting.DispatchResult{Sent: []model.Channel{model.ChannelEmail}}

	dateAlert := model.Alert{
		ID: "a1", UserID: "user-1", Ticker: "ACME",
		Type: model.AlertTypeDateWindow, Severity: model.SeverityWarning,
		TriggerEvent: "ACME: Phase 3 readout in 12 days",
	}
	flagAlert := model.Alert{
		ID: "a2", UserID: "user-1", Ticker: "ACME",
		Type: model.AlertTypeRedFlag, Severity: model.SeverityCritical,
		TriggerEvent: "ACME: RED FLAG - Cash runway only 4 months",
	}

	t.Run("alerts are counted by type and notified", func(t *testing.T) {
		wl := &fakeWatchlist{dateAlerts: []model.Alert{dateAlert}, flagAlerts: []model.Alert{flagAlert}}
		wr := &fakeWatchRepo{users: []model.WatchlistUser{{UserID: "user-1", Tier: "free", Tickers: []string{"ACME"}}}}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(&fakeSearchRepo{}, &fakeMatcher{}, &memNotificationStore{}, al, wl, wr).RunWatchlistSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.UsersChecked != 1 || summary.AlertsGenerated != 2 {
			t.Errorf("summary = %+v", summary)
		}
		if summary.AlertsByType[model.AlertTypeDateWindow] != 1 || summary.AlertsByType[model.AlertTypeRedFlag] != 1 {
			t.Errorf("alerts by type = %+v", summary.AlertsByType)
		}
		if summary.NotificationsSent != 2 {
			t.Errorf("sent = %d", summary.NotificationsSent)
		}
		if len(al.dispatched) != 2 || al.dispatched[0].Content.Summary == "" {
			t.Errorf("dispatch inputs = %+v", al.dispatched)
		}
	})

	t.Run("check failure keeps earlier alerts and counts the error", func(t *testing.T) {
		wl := &fakeWatchlist{dateErr: errors.New("feed down"), flagAlerts: []model.Alert{flagAlert}}
		wr := &fakeWatchRepo{users: []model.WatchlistUser{{UserID: "user-1", Tickers: []string{"ACME"}}}}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(&fakeSearchRepo{}, &fakeMatcher{}, &memNotificationStore{}, al, wl, wr).RunWatchlistSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Errors != 1 || summary.AlertsGenerated != 1 {
			t.Errorf("summary = %+v", summary)
		}
	})

	t.Run("failed preference lookup falls back to defaults and delivers", func(t *testing.T) {
		wl := &fakeWatchlist{flagAlerts: []model.Alert{flagAlert}}
		wr := &fakeWatchRepo{users: []model.WatchlistUser{{UserID: "user-1", Tickers: []string{"ACME"}}}}
		store := &memNotificationStore{prefsErr: errors.New("db down")}
		al := &fakeAlerting{gate: allowAll, dispatch: emailSent}

		summary, err := newSweepUC(&fakeSearchRepo{}, &fakeMatcher{}, store, al, wl, wr).RunWatchlistSweep(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.NotificationsSent != 1 || summary.Errors != 0 {
			t.Errorf("prefs lookup failure must not silence delivery: %+v", summary)
		}
		if len(al.dispatched) != 1 || !al.dispatched[0].Prefs.EmailEnabled {
			t.Errorf("expected one delivery with default preferences, got %+v", al.dispatched)
		}
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		wr := &fakeWatchRepo{listErr: errors.New("db down")}
		al := &fakeAlerting{gate: allowAll}

		_, err := newSweepUC(&fakeSearchRepo{}, &fakeMatcher{}, &memNotificationStore{}, al, &fakeWatchlist{}, wr).RunWatchlistSweep(ctx)
		if err == nil {
			t.Fatal("expected a fatal error when the user list is unreachable")
		}
	})
}
