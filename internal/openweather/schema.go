package openweather

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Wire types for the OpenWeatherMap 2.5 API

type coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	SeaLevel  float64 `json:"sea_level"`
	GrndLevel float64 `json:"grnd_level"`
	Humidity  float64 `json:"humidity"`
	TempKf    float64 `json:"temp_kf"`
}

type wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type clouds struct {
	All int `json:"all"`
}

// CurrentResponse is the /weather response body
type CurrentResponse struct {
	Coord      coord       `json:"coord"`
	Weather    []condition `json:"weather"`
	Base       string      `json:"base"`
	Main       mainBlock   `json:"main"`
	Visibility int         `json:"visibility"`
	Wind       wind        `json:"wind"`
	Clouds     clouds      `json:"clouds"`
	Dt         int64       `json:"dt"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Cod      int    `json:"cod"`
}

// ForecastResponse is the /forecast response body
type ForecastResponse struct {
	Cod     string  `json:"cod"`
	Message float64 `json:"message"`
	Cnt     int     `json:"cnt"`
	List    []struct {
		Dt         int64       `json:"dt"`
		Main       mainBlock   `json:"main"`
		Weather    []condition `json:"weather"`
		Clouds     clouds      `json:"clouds"`
		Wind       wind        `json:"wind"`
		Visibility int         `json:"visibility"`
		Pop        float64     `json:"pop"`
		Sys        struct {
			Pod string `json:"pod"`
		} `json:"sys"`
		DtTxt string `json:"dt_txt"`
	} `json:"list"`
	City struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		Coord      coord  `json:"coord"`
		Country    string `json:"country"`
		Population int    `json:"population"`
		Timezone   int    `json:"timezone"`
		Sunrise    int64  `json:"sunrise"`
		Sunset     int64  `json:"sunset"`
	} `json:"city"`
}

func firstCondition(list []condition) models.Condition {
	if len(list) == 0 {
		return models.Condition{}
	}
	c := list[0]
	return models.Condition{ID: c.ID, Category: c.Main, Description: c.Description, Icon: c.Icon}
}

func temperatures(m mainBlock) models.Temperatures {
	return models.Temperatures{Current: m.Temp, FeelsLike: m.FeelsLike, Min: m.TempMin, Max: m.TempMax}
}

// Conditions converts the response to the internal model
func (r CurrentResponse) Conditions() models.CurrentConditions {
	return models.CurrentConditions{
		CityID:      r.ID,
		Name:        r.Name,
		Country:     r.Sys.Country,
		Coordinates: models.Coordinates{Latitude: r.Coord.Lat, Longitude: r.Coord.Lon},
		Temperature: temperatures(r.Main),
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		Visibility:  r.Visibility,
		Clouds:      r.Clouds.All,
		Wind:        models.Wind{Speed: r.Wind.Speed, Direction: r.Wind.Deg},
		Condition:   firstCondition(r.Weather),
		Sunrise:     time.Unix(r.Sys.Sunrise, 0),
		Sunset:      time.Unix(r.Sys.Sunset, 0),
		Timezone:    r.Timezone,
		ObservedAt:  time.Unix(r.Dt, 0),
	}
}

// Series converts the response to the internal model, keeping entry order
func (r ForecastResponse) Series() models.ForecastSeries {
	series := models.ForecastSeries{
		City: models.CityInfo{
			ID:          r.City.ID,
			Name:        r.City.Name,
			Coordinates: models.Coordinates{Latitude: r.City.Coord.Lat, Longitude: r.City.Coord.Lon},
			Country:     r.City.Country,
			Population:  r.City.Population,
			Timezone:    r.City.Timezone,
			Sunrise:     time.Unix(r.City.Sunrise, 0),
			Sunset:      time.Unix(r.City.Sunset, 0),
		},
		Entries: make([]models.ForecastEntry, 0, len(r.List)),
	}

	for _, item := range r.List {
		series.Entries = append(series.Entries, models.ForecastEntry{
			Time:                     time.Unix(item.Dt, 0),
			Temperature:              temperatures(item.Main),
			Pressure:                 item.Main.Pressure,
			Humidity:                 item.Main.Humidity,
			Wind:                     models.Wind{Speed: item.Wind.Speed, Direction: item.Wind.Deg},
			Condition:                firstCondition(item.Weather),
			Clouds:                   item.Clouds.All,
			Visibility:               item.Visibility,
			PrecipitationProbability: item.Pop,
			PartOfDay:                item.Sys.Pod,
		})
	}
	return series
}
