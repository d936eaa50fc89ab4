package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func serveFile(t *testing.T, path string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil)
	if c == nil {
		t.Fatal("NewClient() returned nil")
	}
	if c.client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", c.client.BaseURL, DefaultBaseURL)
	}
	if c.client.RetryCount != 0 {
		t.Errorf("RetryCount = %d, want 0", c.client.RetryCount)
	}
}

func TestClient_CurrentByCity(t *testing.T) {
	server := serveFile(t, "testdata/current_paris.json", func(r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %s, want /weather", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Paris" {
			t.Errorf("q = %s, want Paris", q.Get("q"))
		}
		if q.Get("appid") != "secret" {
			t.Errorf("appid = %s, want secret", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("units = %s, want metric", q.Get("units"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}
	})
	defer server.Close()

	c := NewClient(server.Client(), WithBaseURL(server.URL))
	got, err := c.CurrentByCity(context.Background(), "secret", "Paris")
	if err != nil {
		t.Fatalf("CurrentByCity() error = %v", err)
	}

	if got.Name != "Paris" || got.Country != "FR" {
		t.Errorf("identity = %s, %s", got.Name, got.Country)
	}
	if got.Temperature.Current != 14.2 || got.Temperature.FeelsLike != 13.6 {
		t.Errorf("temperature = %+v", got.Temperature)
	}
	if got.Humidity != 72 || got.Pressure != 1019 || got.Visibility != 10000 {
		t.Errorf("humidity/pressure/visibility = %v/%v/%v", got.Humidity, got.Pressure, got.Visibility)
	}
	if got.Wind.Speed != 4.12 || got.Wind.Direction != 240 {
		t.Errorf("wind = %+v", got.Wind)
	}
	if got.Condition.Category != "Clouds" || got.Condition.Icon != "04d" {
		t.Errorf("condition = %+v", got.Condition)
	}
	if !got.ObservedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("ObservedAt = %v", got.ObservedAt)
	}
	if !got.Sunset.Equal(time.Unix(1700019600, 0)) {
		t.Errorf("Sunset = %v", got.Sunset)
	}
}

func TestClient_CurrentByCoords(t *testing.T) {
	server := serveFile(t, "testdata/current_paris.json", func(r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "48.8534" || q.Get("lon") != "2.3488" {
			t.Errorf("lat/lon = %s/%s", q.Get("lat"), q.Get("lon"))
		}
		if q.Get("q") != "" {
			t.Errorf("q should be empty for coordinate queries, got %s", q.Get("q"))
		}
	})
	defer server.Close()

	c := NewClient(server.Client(), WithBaseURL(server.URL))
	got, err := c.CurrentByCoords(context.Background(), "secret", 48.8534, 2.3488)
	if err != nil {
		t.Fatalf("CurrentByCoords() error = %v", err)
	}
	if got.Coordinates.Latitude != 48.8534 {
		t.Errorf("Latitude = %v", got.Coordinates.Latitude)
	}
}

func TestClient_ForecastByCity(t *testing.T) {
	server := serveFile(t, "testdata/forecast_paris.json", func(r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %s, want /forecast", r.URL.Path)
		}
	})
	defer server.Close()

	c := NewClient(server.Client(), WithBaseURL(server.URL))
	got, err := c.ForecastByCity(context.Background(), "secret", "Paris")
	if err != nil {
		t.Fatalf("ForecastByCity() error = %v", err)
	}

	if len(got.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(got.Entries))
	}
	if got.City.Name != "Paris" || got.City.Population != 2138551 {
		t.Errorf("city = %+v", got.City)
	}

	first := got.Entries[0]
	if first.PrecipitationProbability != 0.42 || first.PartOfDay != "d" {
		t.Errorf("first entry pop/pod = %v/%s", first.PrecipitationProbability, first.PartOfDay)
	}
	if first.Condition.Category != "Rain" {
		t.Errorf("first condition = %s, want Rain", first.Condition.Category)
	}

	// Source order is preserved
	for i := 1; i < len(got.Entries); i++ {
		if !got.Entries[i].Time.After(got.Entries[i-1].Time) {
			t.Errorf("entry %d not after entry %d", i, i-1)
		}
	}
}

func TestClient_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{"401 invalid key", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, "Invalid API key"},
		{"404 not found", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, "city not found"},
		{"429 rate limited", http.StatusTooManyRequests, `{}`, ""},
		{"500 server error", http.StatusInternalServerError, `error`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.Client(), WithBaseURL(server.URL))
			_, err := c.CurrentByCity(context.Background(), "secret", "Nowhere")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), WithBaseURL(server.URL))
	if _, err := c.ForecastByCity(context.Background(), "secret", "Paris"); err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(nil, WithBaseURL(url), WithTimeout(time.Second))
	if _, err := c.CurrentByCity(context.Background(), "secret", "Paris"); err == nil {
		t.Error("expected transport error")
	}
}

func TestClient_RateLimit(t *testing.T) {
	var hits atomic.Int32
	server := serveFile(t, "testdata/current_paris.json", func(r *http.Request) {
		hits.Add(1)
	})
	defer server.Close()

	c := NewClient(server.Client(), WithBaseURL(server.URL), WithRateLimit(0.01, 1))
	if c.limiter.Limit() != 0.01 || c.limiter.Burst() != 1 {
		t.Fatalf("limiter = %v/%d, want 0.01/1", c.limiter.Limit(), c.limiter.Burst())
	}

	if _, err := c.CurrentByCity(context.Background(), "secret", "Paris"); err != nil {
		t.Fatalf("first call error = %v", err)
	}

	// Burst is spent; the next token is 100s away
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.CurrentByCity(ctx, "secret", "Paris"); err == nil {
		t.Error("expected rate limit error")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}
