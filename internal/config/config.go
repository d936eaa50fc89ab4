// Package config loads runtime settings from the environment and an optional .env file
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openweather"
	"github.com/ngmaloney/weather-terminal/internal/weather"
)

// Config holds everything the terminal needs at startup
type Config struct {
	APIKey      string
	BaseURL     string
	DBPath      string
	DefaultCity string
	Refresh     time.Duration
	HTTPTimeout time.Duration
	GeoIPURL    string
	Debug       bool

	// OpenWeatherMap client budget
	RateLimit float64
	RateBurst int

	// Fixed coordinates for locate; HasCoords is false when unset
	Latitude  float64
	Longitude float64
	HasCoords bool
}

// Load reads .env (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	c := &Config{
		APIKey:      getEnv("OPENWEATHER_API_KEY", weather.PlaceholderCredential),
		BaseURL:     getEnv("OPENWEATHER_BASE_URL", openweather.DefaultBaseURL),
		DBPath:      getEnv("WEATHER_DB_PATH", database.DBPath()),
		DefaultCity: getEnv("WEATHER_DEFAULT_CITY", "London"),
		Refresh:     getEnvDuration("WEATHER_REFRESH", 15*time.Minute),
		HTTPTimeout: getEnvDuration("WEATHER_HTTP_TIMEOUT", 10*time.Second),
		GeoIPURL:    getEnv("WEATHER_GEOIP_URL", geolocation.DefaultGeoIPURL),
		Debug:       getEnvBool("WEATHER_DEBUG", false),
		RateLimit:   getEnvRate("WEATHER_RATE_LIMIT", openweather.DefaultRateLimit),
		RateBurst:   getEnvInt("WEATHER_RATE_BURST", openweather.DefaultBurst),
	}

	lat, latOK := getEnvFloat("WEATHER_LAT")
	lon, lonOK := getEnvFloat("WEATHER_LON")
	if latOK && lonOK {
		c.Latitude, c.Longitude, c.HasCoords = lat, lon, true
	}

	return c
}

// Coords returns the fixed coordinates, or nil when none are configured
func (c *Config) Coords() *models.Coordinates {
	if !c.HasCoords {
		return nil
	}
	return &models.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid %s=%q, using %s", key, v, def)
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		log.Printf("Invalid %s=%q, using %v", key, v, def)
	}
	return def
}

func getEnvRate(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && f > 0 {
			return f
		}
		log.Printf("Invalid %s=%q, using %v", key, v, def)
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, v, def)
	}
	return def
}

func getEnvFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, ignoring", key, v)
		return 0, false
	}
	return f, true
}
