package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	// DefaultGeoIPURL is the ip-api.com JSON endpoint for the caller's address
	DefaultGeoIPURL = "http://ip-api.com/json"
	userAgent       = "WeatherTerminal/1.0"

	// ip-api.com allows 45 requests per minute without a key
	minInterval = 1500 * time.Millisecond
)

// IPLocator estimates position from the public IP address
type IPLocator struct {
	url     string
	client  *resty.Client
	limiter *rate.Limiter
}

// ipAPIResponse is the subset of the ip-api.com response we read
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// NewIPLocator creates a locator against url; empty url means DefaultGeoIPURL
func NewIPLocator(url string, httpClient *http.Client) *IPLocator {
	if url == "" {
		url = DefaultGeoIPURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	client := resty.NewWithClient(httpClient).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &IPLocator{
		url:     url,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Locate queries the geo-IP service. Every failure is ErrLocationUnavailable.
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	coords, err := l.lookup(ctx)
	if err != nil {
		log.Printf("Geolocation failed: %v", err)
		return models.Coordinates{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	return coords, nil
}

func (l *IPLocator) lookup(ctx context.Context) (models.Coordinates, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	resp, err := l.client.R().
		SetContext(ctx).
		Get(l.url)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("executing request: %w", err)
	}

	if !resp.IsSuccess() {
		return models.Coordinates{}, fmt.Errorf("geo-IP service returned status %d", resp.StatusCode())
	}

	var result ipAPIResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return models.Coordinates{}, fmt.Errorf("decoding response: %w", err)
	}
	if result.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("lookup status %q: %s", result.Status, result.Message)
	}

	return models.Coordinates{Latitude: result.Lat, Longitude: result.Lon}, nil
}
