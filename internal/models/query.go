package models

import (
	"fmt"
	"strings"
)

// LocationQuery is either a free-text place name or a latitude/longitude pair.
// Build one with CityQuery or CoordsQuery.
type LocationQuery struct {
	City   string
	Coords *Coordinates
}

// CityQuery builds a free-text query
func CityQuery(name string) LocationQuery {
	return LocationQuery{City: strings.TrimSpace(name)}
}

// CoordsQuery builds a coordinate query
func CoordsQuery(lat, lon float64) LocationQuery {
	return LocationQuery{Coords: &Coordinates{Latitude: lat, Longitude: lon}}
}

// IsCoords reports whether the query is a coordinate pair
func (q LocationQuery) IsCoords() bool {
	return q.Coords != nil
}

func (q LocationQuery) String() string {
	if q.Coords != nil {
		return fmt.Sprintf("%.4f, %.4f", q.Coords.Latitude, q.Coords.Longitude)
	}
	return q.City
}
