package ui

import (
	"errors"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

var errLocationWeather = errors.New("failed to fetch weather for your location")

// recordSearch adds a free-text search to the recent list
func (m *Model) recordSearch(query string) {
	if m.history == nil {
		return
	}
	recent, err := m.history.Add(models.SearchHistoryEntry{
		Name:       query,
		SearchedAt: m.now(),
	})
	if err != nil {
		log.Printf("Failed to save recent search %q: %v", query, err)
		return
	}
	m.recent = recent
}

// toggleRecentFocus moves focus between the search box and the recent list
func (m Model) toggleRecentFocus() (tea.Model, tea.Cmd) {
	if m.recentFocus || len(m.recent) == 0 {
		m.recentFocus = false
		cmd := m.searchInput.Focus()
		return m, cmd
	}
	m.recentFocus = true
	m.recentIdx = 0
	m.searchInput.Blur()
	return m, nil
}

// handleRecentKey handles keys while the recent list is focused
func (m Model) handleRecentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "up", "shift+tab":
		if m.recentIdx > 0 {
			m.recentIdx--
		}
	case "right", "down":
		if m.recentIdx < len(m.recent)-1 {
			m.recentIdx++
		}
	case "enter":
		if m.recentIdx < len(m.recent) {
			return m.startLoad(models.CityQuery(m.recent[m.recentIdx].Name), sourceSearch)
		}
	case "ctrl+d", "delete":
		return m.removeRecent()
	}
	return m, nil
}

// removeRecent drops the selected entry
func (m Model) removeRecent() (tea.Model, tea.Cmd) {
	if m.history == nil || m.recentIdx >= len(m.recent) {
		return m, nil
	}
	recent, err := m.history.Remove(m.recent[m.recentIdx].Name)
	if err != nil {
		return m.notify(notifyError, "Error", "Could not update recent searches")
	}
	m.recent = recent
	if m.recentIdx >= len(m.recent) {
		m.recentIdx = len(m.recent) - 1
	}
	if len(m.recent) == 0 {
		m.recentFocus = false
		m.recentIdx = 0
		cmd := m.searchInput.Focus()
		return m, cmd
	}
	return m, nil
}

// clearRecent empties the recent list
func (m Model) clearRecent() (tea.Model, tea.Cmd) {
	if m.history == nil {
		return m, nil
	}
	if err := m.history.Clear(); err != nil {
		return m.notify(notifyError, "Error", "Could not clear recent searches")
	}
	m.recent = nil
	m.recentIdx = 0
	if m.recentFocus {
		m.recentFocus = false
		cmd := m.searchInput.Focus()
		return m, cmd
	}
	return m, nil
}

// viewRecent renders the recent searches row
func (m Model) viewRecent() string {
	if len(m.recent) == 0 {
		return ""
	}

	chips := make([]string, len(m.recent))
	for i, entry := range m.recent {
		chip := " " + entry.Name + " "
		if m.recentFocus && i == m.recentIdx {
			chips[i] = selectedStyle.Render(chip)
		} else {
			chips[i] = valueStyle.Render(chip)
		}
	}

	line := labelStyle.Render("Recent: ") + strings.Join(chips, mutedStyle.Render("│"))
	if m.recentFocus {
		line += "  " + mutedStyle.Render("←/→ select • Enter load • Ctrl+D remove • Ctrl+X clear")
	}
	return line
}
