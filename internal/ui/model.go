package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/history"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/weather"
)

const (
	// DefaultRefreshInterval is how often the displayed location reloads
	DefaultRefreshInterval = 15 * time.Minute

	notificationTTL = 4 * time.Second
)

// AppState represents the current state of the application
type AppState int

const (
	StateSearch  AppState = iota // Nothing loaded yet, waiting for a search
	StateLoading                 // First load in flight
	StateDisplay                 // Showing a snapshot
	StateError                   // Last load failed and nothing is displayed
)

// WeatherSource loads snapshots and owns the API credential
type WeatherSource interface {
	FetchSnapshot(ctx context.Context, q models.LocationQuery) (weather.Snapshot, error)
	Credential() string
	SetCredential(token string) error
	IsCredentialUsable() bool
}

// Deps are the collaborators the dashboard needs
type Deps struct {
	Weather WeatherSource
	History *history.History
	Locator geolocation.Locator

	// InitialQuery is loaded on start unless LocateOnStart is set
	InitialQuery    models.LocationQuery
	LocateOnStart   bool
	RefreshInterval time.Duration
}

type notificationKind int

const (
	notifyInfo notificationKind = iota
	notifyError
)

type notification struct {
	id    int
	kind  notificationKind
	title string
	body  string
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int

	// Inline error banner; displayed data is kept
	err error

	// Search
	searchInput textinput.Model

	// Recent searches
	recent      []models.SearchHistoryEntry
	recentFocus bool
	recentIdx   int

	// Credential dialog
	showCredential  bool
	credentialInput textinput.Model

	// Collaborators
	weather WeatherSource
	history *history.History
	locator geolocation.Locator

	// Data
	snapshot    *weather.Snapshot
	lastUpdated time.Time
	chartMetric chartMetric

	// Loading
	loading bool
	spinner spinner.Model

	notification *notification
	notifySeq    int

	initialQuery    models.LocationQuery
	locateOnStart   bool
	refreshInterval time.Duration

	// Day grouping and "Today" labels use this zone and clock
	loc *time.Location
	now func() time.Time
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a city (e.g. London, Tokyo, New York)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	ki := textinput.New()
	ki.Placeholder = "Enter your OpenWeatherMap API key"
	ki.EchoMode = textinput.EchoPassword
	ki.EchoCharacter = '•'
	ki.CharLimit = 128
	ki.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	refresh := deps.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}

	m := Model{
		state:           StateSearch,
		searchInput:     ti,
		credentialInput: ki,
		weather:         deps.Weather,
		history:         deps.History,
		locator:         deps.Locator,
		spinner:         s,
		initialQuery:    deps.InitialQuery,
		locateOnStart:   deps.LocateOnStart,
		refreshInterval: refresh,
		loc:             time.Local,
		now:             time.Now,
	}

	if m.history != nil {
		if recent, err := m.history.List(); err == nil {
			m.recent = recent
		}
	}

	return m
}

// Init starts the first load and the refresh timer
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, scheduleRefresh(m.refreshInterval)}

	switch {
	case m.locateOnStart && m.locator != nil:
		cmds = append(cmds, locate(m.locator))
	case m.initialQuery.IsCoords() || m.initialQuery.City != "":
		cmds = append(cmds, loadSnapshot(m.weather, m.initialQuery, sourceSearch))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case locatedMsg:
		if msg.err != nil {
			m.loading = false
			if m.snapshot == nil {
				m.state = StateSearch
			}
			return m.notify(notifyError, "Location Error", "Unable to access your location. Please search for a city instead.")
		}
		return m, loadSnapshot(m.weather, models.CoordsQuery(msg.coords.Latitude, msg.coords.Longitude), sourceLocate)

	case refreshTickMsg:
		cmds := []tea.Cmd{scheduleRefresh(m.refreshInterval)}
		if m.snapshot != nil {
			m, cmd = m.startLoad(m.snapshot.Query, sourceRefresh)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case notificationExpiredMsg:
		if m.notification != nil && m.notification.id == msg.id {
			m.notification = nil
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.showCredential {
		m.credentialInput, cmd = m.credentialInput.Update(msg)
	} else {
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

// handleSnapshot applies a finished load. Results are applied in arrival
// order; a slower earlier request can replace a newer one.
func (m Model) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		if msg.source == sourceLocate {
			m.err = errLocationWeather
		} else {
			m.err = msg.err
		}
		if m.snapshot == nil {
			m.state = StateError
		}
		body := "Failed to fetch weather data. Please try again."
		if msg.source == sourceLocate {
			body = "Failed to fetch weather for your location"
		}
		return m.notify(notifyError, "Error", body)
	}

	snap := msg.snapshot
	m.snapshot = &snap
	m.lastUpdated = snap.FetchedAt
	m.err = nil
	m.state = StateDisplay

	switch {
	case msg.source == sourceLocate:
		return m.notify(notifyInfo, "Location Found", "Weather data for "+snap.Current.Name)
	case snap.Demo:
		return m.notify(notifyInfo, "Using Demo Data", "Add your OpenWeatherMap API key for real weather data")
	}
	return m, nil
}

// handleKey routes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showCredential {
		return m.handleCredentialKey(msg)
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "ctrl+l":
		if m.locator == nil {
			return m.notify(notifyError, "Not Supported", "Geolocation is not configured")
		}
		m.loading = true
		if m.snapshot == nil {
			m.state = StateLoading
		}
		return m, locate(m.locator)

	case "ctrl+r":
		if m.snapshot == nil {
			return m, nil
		}
		return m.startLoad(m.snapshot.Query, sourceRefresh)

	case "ctrl+k":
		m.showCredential = true
		m.credentialInput.SetValue("")
		m.searchInput.Blur()
		cmd := m.credentialInput.Focus()
		return m, cmd

	case "ctrl+t":
		m.chartMetric = m.chartMetric.next()
		return m, nil

	case "ctrl+x":
		return m.clearRecent()

	case "tab":
		return m.toggleRecentFocus()
	}

	if m.recentFocus {
		return m.handleRecentKey(msg)
	}

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter && m.snapshot == nil {
		m.err = nil
		m.state = StateSearch
	}

	if msg.Type == tea.KeyEnter {
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchInput.SetValue("")
		m.recordSearch(query)
		return m.startLoad(models.CityQuery(query), sourceSearch)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// startLoad marks a load in flight and returns its command
func (m Model) startLoad(q models.LocationQuery, from loadSource) (Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	if m.snapshot == nil {
		m.state = StateLoading
	}
	return m, loadSnapshot(m.weather, q, from)
}

// notify replaces the visible notification and schedules its expiry
func (m Model) notify(kind notificationKind, title, body string) (Model, tea.Cmd) {
	m.notifySeq++
	m.notification = &notification{id: m.notifySeq, kind: kind, title: title, body: body}
	return m, expireNotification(m.notifySeq)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showCredential {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewCredentialDialog())
	}

	var sections []string
	sections = append(sections, m.viewHeader())

	if !m.weather.IsCredentialUsable() {
		sections = append(sections, demoBannerStyle.Render(
			"⚠ Currently using demo data. Press Ctrl+K to add your OpenWeatherMap API key for real weather data."))
	}

	sections = append(sections, "", m.viewSearch())

	if recent := m.viewRecent(); recent != "" {
		sections = append(sections, recent)
	}

	if m.notification != nil {
		sections = append(sections, "", m.viewNotification())
	}

	if m.loading {
		sections = append(sections, "", m.spinner.View()+" Loading weather data...")
	}

	if m.err != nil {
		sections = append(sections, "", errorBannerStyle.Render("✗ "+m.err.Error()))
	}

	if m.snapshot != nil {
		sections = append(sections, "", m.viewDashboard())
	}

	help := helpStyle.Render("Enter: Search • Ctrl+L: My location • Ctrl+R: Refresh • Ctrl+K: API key • Tab: Recent • Ctrl+T: Chart • Esc: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the title line and last update time
func (m Model) viewHeader() string {
	title := titleStyle.Render("⛅ Weather Dashboard")
	subtitle := mutedStyle.Render("Real-time weather data and forecasts")

	header := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	if !m.lastUpdated.IsZero() {
		updated := mutedStyle.Render("Last updated: " + m.lastUpdated.Format("15:04:05"))
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "    ", updated)
	}
	return header
}

// viewSearch renders the search box
func (m Model) viewSearch() string {
	style := searchBoxStyle
	if !m.recentFocus {
		style = style.BorderForeground(colorPrimary)
	}
	return style.Width(64).Render("🔍 " + m.searchInput.View())
}

// viewNotification renders the current notification
func (m Model) viewNotification() string {
	style := notifyInfoStyle
	if m.notification.kind == notifyError {
		style = notifyErrorStyle
	}
	return style.Render(m.notification.title) + " " + mutedStyle.Render(m.notification.body)
}

// viewDashboard lays out the cards for the loaded snapshot
func (m Model) viewDashboard() string {
	width := m.width
	if width < 60 {
		width = 60
	}
	half := width/2 - 2

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCurrentCard(half),
		m.renderMapPane(half),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.renderForecastCard(width-2),
		m.renderChart(width-2),
	)
}
