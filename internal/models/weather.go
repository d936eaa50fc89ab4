package models

import "time"

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Temperatures holds a temperature set in Celsius
type Temperatures struct {
	Current   float64
	FeelsLike float64
	Min       float64
	Max       float64
}

// Wind represents wind conditions
type Wind struct {
	Speed     float64 // m/s
	Direction float64 // degrees
}

// Condition is the primary weather descriptor (e.g. "Clear" / "clear sky" / "01d")
type Condition struct {
	ID          int
	Category    string
	Description string
	Icon        string
}

// CurrentConditions is a single location's weather snapshot.
// It is replaced wholesale on every fetch.
type CurrentConditions struct {
	CityID      int
	Name        string
	Country     string
	Coordinates Coordinates
	Temperature Temperatures
	Humidity    float64 // percent
	Pressure    float64 // hPa
	Visibility  int     // meters
	Clouds      int     // percent
	Wind        Wind
	Condition   Condition
	Sunrise     time.Time
	Sunset      time.Time
	Timezone    int // offset from UTC in seconds
	ObservedAt  time.Time
}

// VisibilityKm returns visibility in kilometers
func (c CurrentConditions) VisibilityKm() float64 {
	return float64(c.Visibility) / 1000
}

// Location returns "Name, CC" or just the name when the country is unknown
func (c CurrentConditions) Location() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country
}

// ForecastEntry is one 3-hour forecast step
type ForecastEntry struct {
	Time                     time.Time
	Temperature              Temperatures
	Pressure                 float64
	Humidity                 float64
	Wind                     Wind
	Condition                Condition
	Clouds                   int
	Visibility               int
	PrecipitationProbability float64 // 0..1
	PartOfDay                string  // "d" or "n"
}

// CityInfo is the location summary shared by every entry of a forecast
type CityInfo struct {
	ID          int
	Name        string
	Coordinates Coordinates
	Country     string
	Population  int
	Timezone    int
	Sunrise     time.Time
	Sunset      time.Time
}

// ForecastSeries is an ordered forecast for one location.
// Entries keep the order the source returned them in.
type ForecastSeries struct {
	City    CityInfo
	Entries []ForecastEntry
}
