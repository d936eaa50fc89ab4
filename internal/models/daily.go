package models

import (
	"math"
	"time"
)

// DailySummary aggregates the forecast entries of one calendar day
type DailySummary struct {
	Date        time.Time // midnight of the day, in the grouping location
	MinTemp     float64
	MaxTemp     float64
	AvgTemp     float64 // rounded to whole degrees
	AvgHumidity float64 // rounded to whole percent
	AvgWind     float64 // rounded to 0.1 m/s
	Condition   Condition
	Entries     int
}

// DailySummaries groups entries by calendar day in loc, keeping the order in
// which days first appear, and returns at most maxDays days.
func (f ForecastSeries) DailySummaries(loc *time.Location, maxDays int) []DailySummary {
	if loc == nil {
		loc = time.Local
	}

	type acc struct {
		date      time.Time
		temps     []float64
		humidity  float64
		wind      float64
		condition Condition
	}

	var order []string
	days := make(map[string]*acc)

	for _, e := range f.Entries {
		t := e.Time.In(loc)
		key := t.Format("2006-01-02")
		a, ok := days[key]
		if !ok {
			a = &acc{
				date:      time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
				condition: e.Condition,
			}
			days[key] = a
			order = append(order, key)
		}
		a.temps = append(a.temps, e.Temperature.Current)
		a.humidity += e.Humidity
		a.wind += e.Wind.Speed
	}

	if maxDays > 0 && len(order) > maxDays {
		order = order[:maxDays]
	}

	out := make([]DailySummary, 0, len(order))
	for _, key := range order {
		a := days[key]
		n := float64(len(a.temps))
		sum, lo, hi := 0.0, a.temps[0], a.temps[0]
		for _, v := range a.temps {
			sum += v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		out = append(out, DailySummary{
			Date:        a.date,
			MinTemp:     lo,
			MaxTemp:     hi,
			AvgTemp:     roundHalfUp(sum / n),
			AvgHumidity: roundHalfUp(a.humidity / n),
			AvgWind:     roundHalfUp(a.wind/n*10) / 10,
			Condition:   a.condition,
			Entries:     len(a.temps),
		})
	}
	return out
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
