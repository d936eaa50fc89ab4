package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/history"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/prefs"
	"github.com/ngmaloney/weather-terminal/internal/weather"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *prefs.MemoryStore
	provider *weather.Provider
	history  *history.History
}

// newTestModel builds a model backed by a demo-mode provider and in-memory stores
func newTestModel(t *testing.T, locator geolocation.Locator) (Model, *testEnv) {
	t.Helper()

	store := prefs.NewMemoryStore()
	env := &testEnv{
		store:    store,
		provider: weather.NewProvider(store, nil, weather.WithClock(func() time.Time { return testNow })),
		history:  history.New(store),
	}

	m := NewModel(Deps{
		Weather:      env.provider,
		History:      env.history,
		Locator:      locator,
		InitialQuery: models.CityQuery("London"),
	})
	m.loc = time.UTC
	m.now = func() time.Time { return testNow }
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func demoSnapshot(name string) weather.Snapshot {
	current := weather.DemoConditions(testNow)
	current.Name = name
	return weather.Snapshot{
		RequestID: "test-" + name,
		Query:     models.CityQuery(name),
		Current:   current,
		Forecast:  weather.DemoForecast(name, testNow, fixedRand(0.5)),
		Demo:      true,
		FetchedAt: testNow,
	}
}

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.state != StateSearch {
		t.Errorf("NewModel() state = %v, want StateSearch", m.state)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
	if m.refreshInterval != DefaultRefreshInterval {
		t.Errorf("refreshInterval = %v, want %v", m.refreshInterval, DefaultRefreshInterval)
	}
	if m.Init() == nil {
		t.Error("Init() should return commands")
	}
}

func TestNewModel_LoadsRecentSearches(t *testing.T) {
	store := prefs.NewMemoryStore()
	h := history.New(store)
	h.Add(models.SearchHistoryEntry{Name: "Oslo"})
	h.Add(models.SearchHistoryEntry{Name: "Rome"})

	m := NewModel(Deps{Weather: weather.NewProvider(store, nil), History: h})

	if len(m.recent) != 2 || m.recent[0].Name != "Rome" {
		t.Errorf("recent = %+v, want [Rome Oslo]", m.recent)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Errorf("After WindowSizeMsg, size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, _ := newTestModel(t, nil)
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", key)
		}
	}
}

func TestModel_SearchRecordsHistoryAndLoads(t *testing.T) {
	m, env := newTestModel(t, nil)

	m = typeText(t, m, "  Paris ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != StateLoading || !m.loading {
		t.Errorf("state = %v loading = %v, want StateLoading and true", m.state, m.loading)
	}
	if m.searchInput.Value() != "" {
		t.Errorf("search input = %q, want cleared", m.searchInput.Value())
	}

	saved, _ := env.history.List()
	if len(saved) != 1 || saved[0].Name != "Paris" || saved[0].Latitude != 0 {
		t.Errorf("history = %+v, want one zero-coordinate Paris entry", saved)
	}
	if !saved[0].SearchedAt.Equal(testNow) {
		t.Errorf("SearchedAt = %v", saved[0].SearchedAt)
	}

	msg := cmd()
	snap, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want snapshotMsg", msg)
	}

	m, _ = update(t, m, snap)
	if m.state != StateDisplay || m.loading {
		t.Errorf("state = %v loading = %v after load", m.state, m.loading)
	}
	if m.snapshot.Current.Name != "Paris" {
		t.Errorf("Current.Name = %q, want Paris", m.snapshot.Current.Name)
	}
	if !m.lastUpdated.Equal(testNow) {
		t.Errorf("lastUpdated = %v", m.lastUpdated)
	}
	if m.notification == nil || m.notification.title != "Using Demo Data" {
		t.Errorf("notification = %+v, want demo notice", m.notification)
	}
}

func TestModel_EmptySearchIgnored(t *testing.T) {
	m, env := newTestModel(t, nil)

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("Expected no command for a blank search")
	}
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if saved, _ := env.history.List(); len(saved) != 0 {
		t.Errorf("history = %+v, want empty", saved)
	}
}

func TestModel_FailureKeepsDisplayedData(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, snapshotMsg{snapshot: demoSnapshot("Paris")})

	m, _ = update(t, m, snapshotMsg{err: weather.ErrFetchFailed})

	if m.snapshot == nil || m.snapshot.Current.Name != "Paris" {
		t.Error("displayed data should be kept after a failed load")
	}
	if m.state != StateDisplay {
		t.Errorf("state = %v, want StateDisplay", m.state)
	}
	if !errors.Is(m.err, weather.ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", m.err)
	}
	if m.notification == nil || m.notification.kind != notifyError {
		t.Errorf("notification = %+v, want error", m.notification)
	}
}

func TestModel_FailureWithoutDataThenRecover(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, snapshotMsg{err: weather.ErrFetchFailed})
	if m.state != StateError {
		t.Errorf("state = %v, want StateError", m.state)
	}

	// Typing again clears the error
	m = typeText(t, m, "Rome")
	if m.err != nil {
		t.Error("Error should be cleared when user modifies search")
	}
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if m.searchInput.Value() != "Rome" {
		t.Errorf("search input = %q, want Rome", m.searchInput.Value())
	}
}

// Loads are not cancelled or sequenced: the last result to arrive wins, even
// when it belongs to an older request.
func TestModel_LastArrivingResultWins(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = typeText(t, m, "Paris")
	m, parisCmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "Tokyo")
	m, tokyoCmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tokyo := tokyoCmd().(snapshotMsg)
	paris := parisCmd().(snapshotMsg)

	m, _ = update(t, m, tokyo)
	m, _ = update(t, m, paris)

	if got := m.snapshot.Current.Name; got != "Paris" {
		t.Errorf("displayed %q, want the later-arriving Paris result", got)
	}
}

func TestModel_LocateSuccess(t *testing.T) {
	m, _ := newTestModel(t, geolocation.NewFixed(35.68, 139.69))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.loading || m.state != StateLoading {
		t.Errorf("loading = %v state = %v", m.loading, m.state)
	}

	located, ok := cmd().(locatedMsg)
	if !ok {
		t.Fatal("expected locatedMsg")
	}
	m, cmd = update(t, m, located)

	snap := cmd().(snapshotMsg)
	if snap.source != sourceLocate || !snap.snapshot.Query.IsCoords() {
		t.Errorf("snapshot source = %v query = %v", snap.source, snap.snapshot.Query)
	}

	m, _ = update(t, m, snap)
	// Demo coordinate lookups keep the built-in identity
	if m.snapshot.Current.Name != "London" {
		t.Errorf("Current.Name = %q, want London", m.snapshot.Current.Name)
	}
	if m.notification == nil || m.notification.title != "Location Found" {
		t.Errorf("notification = %+v", m.notification)
	}
	if !strings.Contains(m.notification.body, "London") {
		t.Errorf("notification body = %q", m.notification.body)
	}
}

func TestModel_LocateFailure(t *testing.T) {
	m, _ := newTestModel(t, geolocation.Unconfigured())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	m, _ = update(t, m, cmd())

	if m.loading {
		t.Error("loading should stop after a locator failure")
	}
	if m.state != StateSearch {
		t.Errorf("state = %v, want StateSearch", m.state)
	}
	if m.notification == nil || m.notification.title != "Location Error" {
		t.Errorf("notification = %+v, want Location Error", m.notification)
	}
}

func TestModel_LocateWeatherFailure(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, snapshotMsg{source: sourceLocate, err: weather.ErrFetchFailed})

	if m.err != errLocationWeather {
		t.Errorf("err = %v, want %v", m.err, errLocationWeather)
	}
}

func TestModel_RefreshTick(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, refreshTickMsg(testNow))
	if cmd == nil {
		t.Fatal("refresh tick should reschedule itself")
	}
	if m.loading {
		t.Error("nothing displayed, refresh should not load")
	}

	m, _ = update(t, m, snapshotMsg{snapshot: demoSnapshot("Oslo")})
	m, _ = update(t, m, refreshTickMsg(testNow))
	if !m.loading {
		t.Error("refresh should reload the displayed location")
	}
}

func TestModel_ManualRefresh(t *testing.T) {
	m, _ := newTestModel(t, nil)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd != nil {
		t.Error("refresh with nothing displayed should do nothing")
	}

	m, _ = update(t, m, snapshotMsg{snapshot: demoSnapshot("Oslo")})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	snap := cmd().(snapshotMsg)
	if snap.snapshot.Query.City != "Oslo" {
		t.Errorf("refreshed %q, want Oslo", snap.snapshot.Query.City)
	}
}

// lastCmd returns the final command of a batch without running the others
func lastCmd(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatalf("expected a batch, got %T", batch)
	}
	return batch[len(batch)-1]
}

// recordingSource answers every fetch with an empty snapshot for the query
type recordingSource struct {
	*weather.Provider
}

func (r recordingSource) FetchSnapshot(_ context.Context, q models.LocationQuery) (weather.Snapshot, error) {
	return weather.Snapshot{Query: q}, nil
}

func TestModel_RefreshKeepsCoordinateQuery(t *testing.T) {
	located := demoSnapshot("")
	located.Query = models.CoordsQuery(35, 139)

	tests := []struct {
		name    string
		refresh func(m Model) tea.Cmd
	}{
		{"manual", func(m Model) tea.Cmd {
			_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
			return cmd
		}},
		{"timer", func(m Model) tea.Cmd {
			_, cmd := update(t, m, refreshTickMsg(testNow))
			return lastCmd(t, cmd)
		}},
		{"credential saved", func(m Model) tea.Cmd {
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
			m = typeText(t, m, "4a1a91fd")
			_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			return lastCmd(t, cmd)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			m := NewModel(Deps{
				Weather: recordingSource{weather.NewProvider(store, nil)},
				History: history.New(store),
			})
			m, _ = update(t, m, snapshotMsg{snapshot: located, source: sourceLocate})

			snap, ok := tt.refresh(m)().(snapshotMsg)
			if !ok {
				t.Fatal("expected snapshotMsg")
			}
			q := snap.snapshot.Query
			if !q.IsCoords() || q.City != "" {
				t.Fatalf("refreshed as %+v, want coordinates", q)
			}
			if q.Coords.Latitude != 35 || q.Coords.Longitude != 139 {
				t.Errorf("coords = %+v, want 35,139", *q.Coords)
			}
			if snap.source != sourceRefresh {
				t.Errorf("source = %v, want sourceRefresh", snap.source)
			}
		})
	}
}

func TestModel_NotificationExpiry(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, snapshotMsg{err: weather.ErrFetchFailed})
	first := m.notification.id

	m, _ = update(t, m, snapshotMsg{err: weather.ErrFetchFailed})

	// The older timer must not hide the newer notification
	m, _ = update(t, m, notificationExpiredMsg{id: first})
	if m.notification == nil {
		t.Fatal("newer notification hidden by older timer")
	}

	m, _ = update(t, m, notificationExpiredMsg{id: m.notification.id})
	if m.notification != nil {
		t.Error("notification should expire")
	}
}

func TestModel_ChartMetricCycles(t *testing.T) {
	m, _ := newTestModel(t, nil)

	want := []chartMetric{metricHumidity, metricWind, metricTemperature}
	for _, w := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
		if m.chartMetric != w {
			t.Errorf("chartMetric = %v, want %v", m.chartMetric, w)
		}
	}
}
