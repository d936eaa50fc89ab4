package ui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// chartMetric selects the series the forecast chart plots
type chartMetric int

const (
	metricTemperature chartMetric = iota
	metricHumidity
	metricWind
	metricCount
)

const chartHeight = 6

func (c chartMetric) next() chartMetric {
	return (c + 1) % metricCount
}

func (c chartMetric) String() string {
	switch c {
	case metricHumidity:
		return "Humidity"
	case metricWind:
		return "Wind Speed"
	default:
		return "Temperature"
	}
}

func (c chartMetric) unit() string {
	switch c {
	case metricHumidity:
		return "%"
	case metricWind:
		return " m/s"
	default:
		return "°C"
	}
}

// value extracts the metric from one forecast step
func (c chartMetric) value(e models.ForecastEntry) float64 {
	switch c {
	case metricHumidity:
		return e.Humidity
	case metricWind:
		return e.Wind.Speed
	default:
		return e.Temperature.Current
	}
}

// daily extracts the metric from one day summary
func (c chartMetric) daily(d models.DailySummary) float64 {
	switch c {
	case metricHumidity:
		return d.AvgHumidity
	case metricWind:
		return d.AvgWind
	default:
		return d.AvgTemp
	}
}

// chartSeries returns the metric for every entry, shifted so the smallest
// value sits just above the baseline. Sparklines cannot draw negatives.
func chartSeries(entries []models.ForecastEntry, metric chartMetric) (values []float64, lo, hi float64) {
	if len(entries) == 0 {
		return nil, 0, 0
	}

	lo, hi = metric.value(entries[0]), metric.value(entries[0])
	for _, e := range entries {
		v := metric.value(e)
		lo = min(lo, v)
		hi = max(hi, v)
	}

	values = make([]float64, len(entries))
	for i, e := range entries {
		values[i] = metric.value(e) - lo + 1
	}
	return values, lo, hi
}

// renderChart renders the forecast sparkline for the selected metric
func (m Model) renderChart(width int) string {
	var content strings.Builder

	tabs := make([]string, 0, metricCount)
	for metric := metricTemperature; metric < metricCount; metric++ {
		if metric == m.chartMetric {
			tabs = append(tabs, selectedStyle.Render(" "+metric.String()+" "))
		} else {
			tabs = append(tabs, mutedStyle.Render(" "+metric.String()+" "))
		}
	}
	content.WriteString(sectionHeaderStyle.Render("📈 Forecast Trend"))
	content.WriteString("\n")
	content.WriteString(strings.Join(tabs, " "))
	content.WriteString("\n\n")

	values, lo, hi := chartSeries(m.snapshot.Forecast.Entries, m.chartMetric)
	if len(values) == 0 {
		content.WriteString(mutedStyle.Render("No forecast data available"))
		return paneStyle.Width(width).Render(content.String())
	}

	chartWidth := width - 6
	if chartWidth > len(values) {
		chartWidth = len(values)
	}
	sl := sparkline.New(chartWidth, chartHeight,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(colorPrimary)))
	sl.PushAll(values)
	sl.Draw()

	content.WriteString(sl.View())
	content.WriteString("\n")
	unit := m.chartMetric.unit()
	content.WriteString(mutedStyle.Render(fmt.Sprintf("min %.1f%s • max %.1f%s over %d steps", lo, unit, hi, unit, len(values))))
	content.WriteString("\n")

	var avgs []string
	for _, day := range m.snapshot.Forecast.DailySummaries(m.loc, forecastDays) {
		avgs = append(avgs, fmt.Sprintf("%s %g%s", day.Date.Format("Jan 2"), m.chartMetric.daily(day), unit))
	}
	content.WriteString(valueStyle.Render("Daily avg: " + strings.Join(avgs, " │ ")))

	return paneStyle.Width(width).Render(content.String())
}
