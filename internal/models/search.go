package models

import "time"

// SearchHistoryEntry is one recent search.
// Coordinates are zero when the search came from free text.
type SearchHistoryEntry struct {
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	SearchedAt time.Time `json:"searchTime"`
}
