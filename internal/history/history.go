// Package history keeps the list of recent location searches.
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/prefs"
)

const (
	// StorageKey is the preference key holding the serialized list
	StorageKey = "weather_recent_cities"

	// MaxEntries bounds the list length
	MaxEntries = 5
)

// History is the recent-search list, newest first, unique by
// case-insensitive name. Every change is persisted immediately.
type History struct {
	mu    sync.Mutex
	store prefs.Store
}

// New creates a history backed by store
func New(store prefs.Store) *History {
	return &History{store: store}
}

// List returns the persisted entries, newest first
func (h *History) List() ([]models.SearchHistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Add inserts entry at the front, dropping any entry with the same name
// (case-insensitively) and trimming the list to MaxEntries.
func (h *History) Add(entry models.SearchHistoryEntry) ([]models.SearchHistoryEntry, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return nil, fmt.Errorf("search name cannot be empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.load()
	if err != nil {
		return nil, err
	}

	updated := make([]models.SearchHistoryEntry, 0, MaxEntries)
	updated = append(updated, entry)
	for _, e := range current {
		if strings.EqualFold(e.Name, entry.Name) {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}

	if err := h.save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes entries whose name matches exactly
func (h *History) Remove(name string) ([]models.SearchHistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.load()
	if err != nil {
		return nil, err
	}

	updated := make([]models.SearchHistoryEntry, 0, len(current))
	for _, e := range current {
		if e.Name != name {
			updated = append(updated, e)
		}
	}

	if err := h.save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Clear removes every entry and the persisted key
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("clearing search history: %w", err)
	}
	return nil
}

func (h *History) load() ([]models.SearchHistoryEntry, error) {
	raw, ok, err := h.store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("loading search history: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var entries []models.SearchHistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("Ignoring malformed search history: %v", err)
		return nil, nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}

func (h *History) save(entries []models.SearchHistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("saving search history: %w", err)
	}
	return nil
}
