package models

import "strings"

// AlertKind classifies a weather alert derived from current conditions
type AlertKind string

const (
	AlertNone          AlertKind = ""
	AlertExtremeHeat   AlertKind = "extreme-heat"
	AlertExtremeCold   AlertKind = "extreme-cold"
	AlertStorm         AlertKind = "storm"
	AlertSevereWeather AlertKind = "severe-weather"
)

// Thresholds for alert derivation
const (
	ExtremeHeatC      = 35.0
	ExtremeColdC      = -10.0
	SevereWindSpeedMS = 10.0
)

// WeatherAlert is a warning shown alongside current conditions
type WeatherAlert struct {
	Kind    AlertKind
	Message string
}

// Alert derives the alert for these conditions. The first matching rule wins;
// the zero WeatherAlert means no alert.
func (c CurrentConditions) Alert() WeatherAlert {
	category := strings.ToLower(c.Condition.Category)

	switch {
	case c.Temperature.Current > ExtremeHeatC:
		return WeatherAlert{Kind: AlertExtremeHeat, Message: "Extreme Heat Warning"}
	case c.Temperature.Current < ExtremeColdC:
		return WeatherAlert{Kind: AlertExtremeCold, Message: "Extreme Cold Warning"}
	case strings.Contains(category, "thunder"):
		return WeatherAlert{Kind: AlertStorm, Message: "Storm Alert"}
	case strings.Contains(category, "rain") && c.Wind.Speed > SevereWindSpeedMS:
		return WeatherAlert{Kind: AlertSevereWeather, Message: "Severe Weather Alert"}
	}
	return WeatherAlert{}
}

// Active reports whether the alert is set
func (a WeatherAlert) Active() bool {
	return a.Kind != AlertNone
}
