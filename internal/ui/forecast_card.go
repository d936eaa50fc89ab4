package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// forecastDays is how many days the forecast card and chart show
const forecastDays = 5

// renderForecastCard renders the 5-day forecast, one column per day
func (m Model) renderForecastCard(width int) string {
	days := m.snapshot.Forecast.DailySummaries(m.loc, forecastDays)

	var content strings.Builder
	content.WriteString(sectionHeaderStyle.Render("📅 5-Day Forecast"))
	content.WriteString("\n")

	if len(days) == 0 {
		content.WriteString(mutedStyle.Render("No forecast data available"))
		return paneStyle.Width(width).Render(content.String())
	}

	today := m.now().In(m.loc).Format("2006-01-02")
	colWidth := (width - 6) / forecastDays
	if colWidth < 14 {
		colWidth = 14
	}
	col := lipgloss.NewStyle().Width(colWidth)

	columns := make([]string, 0, len(days))
	for _, day := range days {
		label := day.Date.Format("Mon, Jan 2")
		if day.Date.Format("2006-01-02") == today {
			label = "Today"
		}

		lines := []string{
			labelStyle.Render(label),
			conditionIcon(day.Condition.Icon) + " " + mutedStyle.Render(day.Condition.Category),
			valueStyle.Render(fmt.Sprintf("%d° / %d°", round(day.MaxTemp), round(day.MinTemp))),
			mutedStyle.Render(fmt.Sprintf("💧 %.0f%%", day.AvgHumidity)),
			mutedStyle.Render(fmt.Sprintf("💨 %.1f m/s", day.AvgWind)),
		}
		columns = append(columns, col.Render(strings.Join(lines, "\n")))
	}

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	return paneStyle.Width(width).Render(content.String())
}
