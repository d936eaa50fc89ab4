package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleCredentialKey handles keys while the API key dialog is open
func (m Model) handleCredentialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closeCredentialDialog()

	case tea.KeyEnter:
		token := strings.TrimSpace(m.credentialInput.Value())
		if token == "" {
			return m, nil
		}

		var focusCmd, notifyCmd tea.Cmd
		m, focusCmd = m.closeCredentialDialog()
		if err := m.weather.SetCredential(token); err != nil {
			m, notifyCmd = m.notify(notifyError, "Error", "Could not save API key: "+err.Error())
			return m, tea.Batch(focusCmd, notifyCmd)
		}

		m, notifyCmd = m.notify(notifyInfo, "API Key Saved", "Your OpenWeatherMap API key has been saved. Refreshing data...")
		cmds := []tea.Cmd{focusCmd, notifyCmd}
		if m.snapshot != nil {
			var loadCmd tea.Cmd
			m, loadCmd = m.startLoad(m.snapshot.Query, sourceRefresh)
			cmds = append(cmds, loadCmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.credentialInput, cmd = m.credentialInput.Update(msg)
	return m, cmd
}

// closeCredentialDialog hides the dialog and returns focus to search
func (m Model) closeCredentialDialog() (Model, tea.Cmd) {
	m.showCredential = false
	m.credentialInput.SetValue("")
	m.credentialInput.Blur()
	if m.recentFocus {
		return m, nil
	}
	cmd := m.searchInput.Focus()
	return m, cmd
}

// viewCredentialDialog renders the API key dialog
func (m Model) viewCredentialDialog() string {
	title := titleStyle.Render("🔑 OpenWeatherMap API Key")

	status := mutedStyle.Render("No API key configured. Using demo data.")
	if m.weather.IsCredentialUsable() {
		status = mutedStyle.Render("An API key is configured. Enter a new one to replace it.")
	}

	steps := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("To get your free API key:"),
		mutedStyle.Render("1. Sign up at https://openweathermap.org/api"),
		mutedStyle.Render("2. Open your account's API keys page"),
		mutedStyle.Render("3. Copy the key and paste it below"),
	)

	input := searchBoxStyle.Width(54).Render(m.credentialInput.View())
	help := helpStyle.Render("Enter: Save • Esc: Cancel")

	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", status, "", steps, "", input, help,
	))
}
