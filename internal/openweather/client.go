// Package openweather is a client for the OpenWeatherMap 2.5 REST API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	// DefaultBaseURL is the public OpenWeatherMap 2.5 endpoint
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	userAgent      = "WeatherTerminal/1.0 (github.com/ngmaloney/weather-terminal)"
	defaultTimeout = 10 * time.Second

	// Free tier allows 60 calls/minute; allow short bursts
	DefaultRateLimit = 1.0
	DefaultBurst     = 5
)

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openweathermap returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("openweathermap returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the OpenWeatherMap current weather and forecast endpoints
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, proxies)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.client.SetBaseURL(baseURL) }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.SetTimeout(d) }
}

// WithRateLimit replaces the default limiter with rps requests per second
// and the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient creates a client using httpClient as the transport.
// A nil httpClient uses a fresh http.Client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(DefaultBaseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout).
		SetRetryCount(0)

	c := &Client{
		client:  rc,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentByCity fetches current conditions for a place name
func (c *Client) CurrentByCity(ctx context.Context, apiKey, city string) (models.CurrentConditions, error) {
	var resp CurrentResponse
	if err := c.get(ctx, "/weather", map[string]string{"q": city}, apiKey, &resp); err != nil {
		return models.CurrentConditions{}, err
	}
	return resp.Conditions(), nil
}

// CurrentByCoords fetches current conditions for a coordinate pair
func (c *Client) CurrentByCoords(ctx context.Context, apiKey string, lat, lon float64) (models.CurrentConditions, error) {
	params := map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}
	var resp CurrentResponse
	if err := c.get(ctx, "/weather", params, apiKey, &resp); err != nil {
		return models.CurrentConditions{}, err
	}
	return resp.Conditions(), nil
}

// ForecastByCity fetches the 5 day / 3 hour forecast for a place name
func (c *Client) ForecastByCity(ctx context.Context, apiKey, city string) (models.ForecastSeries, error) {
	var resp ForecastResponse
	if err := c.get(ctx, "/forecast", map[string]string{"q": city}, apiKey, &resp); err != nil {
		return models.ForecastSeries{}, err
	}
	return resp.Series(), nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, apiKey string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("appid", apiKey).
		SetQueryParam("units", "metric").
		Get(path)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}

	if !resp.IsSuccess() {
		return parseAPIError(resp)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseAPIError builds an APIError, using the API's message when present
func parseAPIError(resp *resty.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	return &APIError{StatusCode: resp.StatusCode(), Message: body.Message}
}
