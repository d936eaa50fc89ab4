package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/history"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openweather"
	"github.com/ngmaloney/weather-terminal/internal/prefs"
	"github.com/ngmaloney/weather-terminal/internal/ui"
	"github.com/ngmaloney/weather-terminal/internal/weather"
)

func main() {
	cfg := config.Load()

	dbPath := flag.String("db", cfg.DBPath, "Path to the SQLite preferences database")
	city := flag.String("city", cfg.DefaultCity, "City to load on start")
	locateOnStart := flag.Bool("locate", false, "Load weather for the current location on start")
	flag.Parse()

	if cfg.Debug {
		f, err := tea.LogToFile("weather-terminal.log", "debug")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store := prefs.NewRepository(db)

	client := openweather.NewClient(nil,
		openweather.WithBaseURL(cfg.BaseURL),
		openweather.WithTimeout(cfg.HTTPTimeout),
		openweather.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	provider := weather.NewProvider(store, client,
		weather.WithDefaultCredential(cfg.APIKey),
		weather.WithLogger(log.Default()),
	)

	locator := geolocation.New(cfg.Coords(), cfg.GeoIPURL, &http.Client{Timeout: cfg.HTTPTimeout})

	model := ui.NewModel(ui.Deps{
		Weather:         provider,
		History:         history.New(store),
		Locator:         locator,
		InitialQuery:    models.CityQuery(*city),
		LocateOnStart:   *locateOnStart,
		RefreshInterval: cfg.Refresh,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
