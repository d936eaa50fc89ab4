package ui

import (
	"fmt"
	"strings"
)

// osmLink returns an OpenStreetMap URL centered on lat/lon
func osmLink(lat, lon float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.4f&mlon=%.4f#map=10/%.4f/%.4f", lat, lon, lat, lon)
}

// renderMapPane renders the location panel
func (m Model) renderMapPane(width int) string {
	c := m.snapshot.Current
	coords := c.Coordinates

	var content strings.Builder
	content.WriteString(sectionHeaderStyle.Render("🗺️  Location"))
	content.WriteString("\n")
	content.WriteString(valueStyle.Bold(true).Render(c.Location()))
	content.WriteString("\n")
	content.WriteString(mutedStyle.Render(fmt.Sprintf("Lat: %.4f, Lon: %.4f", coords.Latitude, coords.Longitude)))
	content.WriteString("\n\n")

	if m.snapshot.Query.IsCoords() {
		content.WriteString(mutedStyle.Render("Requested: " + m.snapshot.Query.String()))
		content.WriteString("\n")
	}

	if city := m.snapshot.Forecast.City; city.Population > 0 {
		content.WriteString(labelStyle.Render("Population: "))
		content.WriteString(valueStyle.Render(fmt.Sprintf("%d", city.Population)))
		content.WriteString("\n")
	}

	offset := float64(c.Timezone) / 3600
	content.WriteString(labelStyle.Render("UTC offset: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%+.1fh", offset)))
	content.WriteString("\n\n")

	content.WriteString(mutedStyle.Render(osmLink(coords.Latitude, coords.Longitude)))

	return paneStyle.Width(width).Render(content.String())
}
