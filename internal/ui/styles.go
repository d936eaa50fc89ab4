package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#00BFFF") // Deep sky blue
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger    = lipgloss.Color("#FF6B6B") // Red for alerts
	colorWarning   = lipgloss.Color("#FFD93D") // Yellow for warnings
	colorSuccess   = lipgloss.Color("#6BCF7F") // Green
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A90E2") // Border blue
	colorSunny     = lipgloss.Color("#FFB347") // Sunrise/sunset

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Card styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginRight(1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	bigTempStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	sunStyle = lipgloss.NewStyle().
			Foreground(colorSunny)

	// Alert styles by kind
	alertHeatStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	alertColdStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	alertStormStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C42")).
			Bold(true)

	alertSevereStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				Bold(true)

	// Banners
	demoBannerStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorWarning).
			Padding(0, 1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(colorDanger).
				Padding(0, 1)

	// Notification styles
	notifyInfoStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	notifyErrorStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	// Credential dialog
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3).
			Width(64)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Padding(0, 0, 1, 0)
)
