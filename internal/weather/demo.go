package weather

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Demo data constants
const (
	DemoForecastEntries = 40
	DemoForecastStep    = 3 * time.Hour
	demoPopulation      = 8000000
	demoCityID          = 2643743
)

var (
	demoCoordinates = models.Coordinates{Latitude: 51.5074, Longitude: -0.1276}
	demoSunrise     = time.Unix(1640059200, 0)
	demoSunset      = time.Unix(1640092800, 0)
	demoCategories  = []string{"Clear", "Clouds", "Rain"}
)

// DemoConditions returns the fixed demo snapshot (London) observed at now
func DemoConditions(now time.Time) models.CurrentConditions {
	return models.CurrentConditions{
		CityID:      demoCityID,
		Name:        "London",
		Country:     "GB",
		Coordinates: demoCoordinates,
		Temperature: models.Temperatures{
			Current:   22.5,
			FeelsLike: 23.1,
			Min:       20.2,
			Max:       24.8,
		},
		Humidity:   65,
		Pressure:   1013,
		Visibility: 10000,
		Clouds:     5,
		Wind:       models.Wind{Speed: 3.2, Direction: 210},
		Condition: models.Condition{
			ID:          800,
			Category:    "Clear",
			Description: "clear sky",
			Icon:        "01d",
		},
		Sunrise:    demoSunrise,
		Sunset:     demoSunset,
		Timezone:   0,
		ObservedAt: now,
	}
}

// DemoForecast synthesizes DemoForecastEntries entries DemoForecastStep apart,
// starting at now. Values are drawn from r in a fixed order, so a seeded
// source gives reproducible output.
func DemoForecast(city string, now time.Time, r RandSource) models.ForecastSeries {
	entries := make([]models.ForecastEntry, 0, DemoForecastEntries)

	for i := 0; i < DemoForecastEntries; i++ {
		temps := models.Temperatures{
			Current:   20 + r.Float64()*10,
			FeelsLike: 21 + r.Float64()*10,
			Min:       18 + r.Float64()*8,
			Max:       22 + r.Float64()*12,
		}
		pressure := 1013 + r.Float64()*20
		humidity := 60 + r.Float64()*30

		idx := int(r.Float64() * float64(len(demoCategories)))
		if idx >= len(demoCategories) {
			idx = len(demoCategories) - 1
		}

		clouds := int(r.Float64() * 100)
		wind := models.Wind{Speed: r.Float64() * 10, Direction: r.Float64() * 360}
		pop := r.Float64()

		pod := "d"
		if i%2 == 1 {
			pod = "n"
		}

		entries = append(entries, models.ForecastEntry{
			Time:        now.Add(time.Duration(i) * DemoForecastStep),
			Temperature: temps,
			Pressure:    pressure,
			Humidity:    humidity,
			Wind:        wind,
			Condition: models.Condition{
				ID:          800,
				Category:    demoCategories[idx],
				Description: "demo weather",
				Icon:        "01d",
			},
			Clouds:                   clouds,
			Visibility:               10000,
			PrecipitationProbability: pop,
			PartOfDay:                pod,
		})
	}

	return models.ForecastSeries{
		City: models.CityInfo{
			ID:          demoCityID,
			Name:        city,
			Coordinates: demoCoordinates,
			Country:     "GB",
			Population:  demoPopulation,
			Timezone:    0,
			Sunrise:     demoSunrise,
			Sunset:      demoSunset,
		},
		Entries: entries,
	}
}
