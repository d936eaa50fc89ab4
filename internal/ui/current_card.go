package ui

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

var conditionIcons = map[string]string{
	"01d": "☀️", "01n": "🌙",
	"02d": "⛅", "02n": "☁️",
	"03d": "☁️", "03n": "☁️",
	"04d": "☁️", "04n": "☁️",
	"09d": "🌧️", "09n": "🌧️",
	"10d": "🌦️", "10n": "🌧️",
	"11d": "⛈️", "11n": "⛈️",
	"13d": "❄️", "13n": "❄️",
	"50d": "🌫️", "50n": "🌫️",
}

// conditionIcon maps an OpenWeatherMap icon code to an emoji
func conditionIcon(code string) string {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return "🌤️"
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compass converts degrees to an 8-point heading
func compass(deg float64) string {
	idx := int(math.Round(math.Mod(deg, 360)/45)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}

// round matches the half-up rounding used for displayed temperatures
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// localClock formats t in the location's own UTC offset
func localClock(t time.Time, offsetSeconds int) string {
	return t.In(time.FixedZone("", offsetSeconds)).Format("15:04")
}

// renderAlert renders the alert line, or "" when conditions are calm
func renderAlert(alert models.WeatherAlert) string {
	var style lipgloss.Style
	var icon string
	switch alert.Kind {
	case models.AlertExtremeHeat:
		style, icon = alertHeatStyle, "🔥"
	case models.AlertExtremeCold:
		style, icon = alertColdStyle, "🥶"
	case models.AlertStorm:
		style, icon = alertStormStyle, "⛈️"
	case models.AlertSevereWeather:
		style, icon = alertSevereStyle, "🌪️"
	default:
		return ""
	}
	return style.Render(icon + " " + alert.Message)
}

// renderCurrentCard renders the current conditions card
func (m Model) renderCurrentCard(width int) string {
	// Border: 2 chars, Padding: 4 chars
	contentWidth := width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	c := m.snapshot.Current
	var content strings.Builder

	content.WriteString(titleStyle.Render("📍 " + c.Location()))
	content.WriteString("\n")
	content.WriteString(mutedStyle.Render(c.ObservedAt.Format("Monday, January 2")))
	content.WriteString("\n\n")

	if alert := renderAlert(c.Alert()); alert != "" {
		content.WriteString(alert)
		content.WriteString("\n\n")
	}

	content.WriteString(conditionIcon(c.Condition.Icon) + "  ")
	content.WriteString(bigTempStyle.Render(fmt.Sprintf("%d°C", round(c.Temperature.Current))))
	content.WriteString("  ")
	content.WriteString(mutedStyle.Render(fmt.Sprintf("Feels like %d°C", round(c.Temperature.FeelsLike))))
	content.WriteString("\n")

	wrapped := lipgloss.NewStyle().Width(contentWidth)
	content.WriteString(wrapped.Render(valueStyle.Render(capitalize(c.Condition.Description))))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("H: %d°  L: %d°", round(c.Temperature.Max), round(c.Temperature.Min)))
	content.WriteString("\n\n")

	rows := [][2]string{
		{"Humidity", fmt.Sprintf("%.0f%%", c.Humidity)},
		{"Wind", fmt.Sprintf("%.1f m/s %s", c.Wind.Speed, compass(c.Wind.Direction))},
		{"Pressure", fmt.Sprintf("%.0f hPa", c.Pressure)},
		{"Visibility", fmt.Sprintf("%.1f km", c.VisibilityKm())},
		{"Clouds", fmt.Sprintf("%d%%", c.Clouds)},
	}
	for _, row := range rows {
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", row[0]+":")))
		content.WriteString(valueStyle.Render(row[1]))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(sunStyle.Render("🌅 Sunrise: " + localClock(c.Sunrise, c.Timezone)))
	content.WriteString("   ")
	content.WriteString(sunStyle.Render("🌇 Sunset: " + localClock(c.Sunset, c.Timezone)))

	return paneStyle.Width(width).Render(content.String())
}
