// Package weather decides between live OpenWeatherMap data and synthesized
// demo data, and owns the API credential that makes that decision.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/prefs"
)

const (
	// CredentialKey is the preference key holding the API credential
	CredentialKey = "openweather_api_key"

	// PlaceholderCredential marks a credential that was never configured
	PlaceholderCredential = "YOUR_OPENWEATHERMAP_API_KEY"
)

// ErrFetchFailed covers every failure of a live call: transport errors and
// non-2xx responses alike.
var ErrFetchFailed = errors.New("failed to fetch weather data")

// Fetcher performs the live API calls
type Fetcher interface {
	CurrentByCity(ctx context.Context, apiKey, city string) (models.CurrentConditions, error)
	CurrentByCoords(ctx context.Context, apiKey string, lat, lon float64) (models.CurrentConditions, error)
	ForecastByCity(ctx context.Context, apiKey, city string) (models.ForecastSeries, error)
}

// RandSource supplies values in [0, 1) for demo data
type RandSource interface {
	Float64() float64
}

// Provider resolves location queries into current conditions and forecasts.
// Construct one with NewProvider and pass it to whatever needs it.
type Provider struct {
	mu         sync.RWMutex
	credential string

	store   prefs.Store
	fetcher Fetcher
	now     func() time.Time
	logger  *log.Logger

	randMu sync.Mutex
	rand   RandSource

	defaultCredential string
}

// Option configures a Provider
type Option func(*Provider)

// WithRand injects the randomness used for demo forecasts
func WithRand(r RandSource) Option {
	return func(p *Provider) { p.rand = r }
}

// WithClock injects the time source
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithDefaultCredential sets the credential used when nothing is persisted
func WithDefaultCredential(token string) Option {
	return func(p *Provider) { p.defaultCredential = token }
}

// WithLogger sets the logger; the default discards output
func WithLogger(l *log.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// NewProvider creates a provider. The credential is read from store, falling
// back to the default credential when the store holds nothing.
func NewProvider(store prefs.Store, fetcher Fetcher, opts ...Option) *Provider {
	p := &Provider{
		store:             store,
		fetcher:           fetcher,
		rand:              rand.New(rand.NewSource(time.Now().UnixNano())),
		now:               time.Now,
		logger:            log.New(io.Discard, "", 0),
		defaultCredential: PlaceholderCredential,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.credential = p.defaultCredential
	if store != nil {
		saved, ok, err := store.Get(CredentialKey)
		switch {
		case err != nil:
			p.logger.Printf("Could not read saved credential, using default: %v", err)
		case ok && saved != "":
			p.credential = saved
		}
	}
	return p
}

// Credential returns the current API credential
func (p *Provider) Credential() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.credential
}

// SetCredential replaces the credential and persists it immediately.
// Callers reject empty input before calling.
func (p *Provider) SetCredential(token string) error {
	p.mu.Lock()
	p.credential = token
	p.mu.Unlock()

	if p.store == nil {
		return nil
	}
	if err := p.store.Set(CredentialKey, token); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}
	return nil
}

// IsCredentialUsable reports whether live calls can be made
func (p *Provider) IsCredentialUsable() bool {
	return usable(p.Credential())
}

func usable(token string) bool {
	return token != "" && token != PlaceholderCredential
}

// FetchCurrentConditions returns current conditions for q. Without a usable
// credential it returns the demo snapshot and never fails.
func (p *Provider) FetchCurrentConditions(ctx context.Context, q models.LocationQuery) (models.CurrentConditions, error) {
	token := p.Credential()
	if !usable(token) {
		demo := DemoConditions(p.now())
		if !q.IsCoords() {
			demo.Name = q.City
		}
		return demo, nil
	}

	var (
		current models.CurrentConditions
		err     error
	)
	if q.IsCoords() {
		current, err = p.fetcher.CurrentByCoords(ctx, token, q.Coords.Latitude, q.Coords.Longitude)
	} else {
		current, err = p.fetcher.CurrentByCity(ctx, token, q.City)
	}
	if err != nil {
		p.logger.Printf("Error fetching weather data for %s: %v", q, err)
		return models.CurrentConditions{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return current, nil
}

// FetchForecast returns the 5 day / 3 hour forecast for city. Without a usable
// credential it synthesizes a random demo series and never fails.
func (p *Provider) FetchForecast(ctx context.Context, city string) (models.ForecastSeries, error) {
	city = strings.TrimSpace(city)

	token := p.Credential()
	if !usable(token) {
		p.randMu.Lock()
		defer p.randMu.Unlock()
		return DemoForecast(city, p.now(), p.rand), nil
	}

	series, err := p.fetcher.ForecastByCity(ctx, token, city)
	if err != nil {
		p.logger.Printf("Error fetching forecast data for %s: %v", city, err)
		return models.ForecastSeries{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return series, nil
}
