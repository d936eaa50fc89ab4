// Package geolocation resolves the user's approximate position
package geolocation

import (
	"context"
	"errors"
	"net/http"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// ErrLocationUnavailable is returned for any failure to determine a position
var ErrLocationUnavailable = errors.New("location unavailable")

// Disabled as a geo-IP URL turns IP lookup off
const Disabled = "off"

// Locator determines the current position
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// Fixed always reports the configured coordinates
type Fixed struct {
	coords *models.Coordinates
}

// NewFixed returns a locator for lat/lon
func NewFixed(lat, lon float64) *Fixed {
	return &Fixed{coords: &models.Coordinates{Latitude: lat, Longitude: lon}}
}

// Unconfigured returns a locator that always fails
func Unconfigured() *Fixed {
	return &Fixed{}
}

// Locate returns the configured coordinates
func (f *Fixed) Locate(ctx context.Context) (models.Coordinates, error) {
	if f.coords == nil {
		return models.Coordinates{}, ErrLocationUnavailable
	}
	return *f.coords, nil
}

// New picks the locator for the given settings. Fixed coordinates win over
// the geo-IP service; a Disabled URL yields a locator that always fails.
func New(coords *models.Coordinates, geoIPURL string, httpClient *http.Client) Locator {
	switch {
	case coords != nil:
		return NewFixed(coords.Latitude, coords.Longitude)
	case geoIPURL == Disabled:
		return Unconfigured()
	default:
		return NewIPLocator(geoIPURL, httpClient)
	}
}
