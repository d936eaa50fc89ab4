package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/weather"
)

const (
	loadTimeout   = 30 * time.Second
	locateTimeout = 15 * time.Second
)

// loadSource records what triggered a load
type loadSource int

const (
	sourceSearch loadSource = iota
	sourceRefresh
	sourceLocate
)

// snapshotMsg is sent when a snapshot load finishes
type snapshotMsg struct {
	snapshot weather.Snapshot
	source   loadSource
	err      error
}

// locatedMsg is sent when the locator answers
type locatedMsg struct {
	coords models.Coordinates
	err    error
}

// refreshTickMsg fires on the auto-refresh interval
type refreshTickMsg time.Time

// notificationExpiredMsg hides the notification with the matching id
type notificationExpiredMsg struct {
	id int
}

// loadSnapshot fetches current conditions and forecast in the background
func loadSnapshot(source WeatherSource, q models.LocationQuery, from loadSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		snap, err := source.FetchSnapshot(ctx, q)
		return snapshotMsg{snapshot: snap, source: from, err: err}
	}
}

// locate asks the locator for the current position
func locate(locator geolocation.Locator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
		defer cancel()

		coords, err := locator.Locate(ctx)
		return locatedMsg{coords: coords, err: err}
	}
}

// scheduleRefresh waits for the next auto-refresh
func scheduleRefresh(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// expireNotification hides notification id after notificationTTL
func expireNotification(id int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: id}
	})
}
