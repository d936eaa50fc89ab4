package weather

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Snapshot is everything the dashboard shows for one location
type Snapshot struct {
	RequestID string
	Query     models.LocationQuery
	Current   models.CurrentConditions
	Forecast  models.ForecastSeries
	Demo      bool
	FetchedAt time.Time
}

// FetchSnapshot loads current conditions and forecast for q. For a city the
// two calls run concurrently; for coordinates the forecast is requested by
// the name the current-conditions call resolved. Either call failing fails
// the whole load.
func (p *Provider) FetchSnapshot(ctx context.Context, q models.LocationQuery) (Snapshot, error) {
	snap := Snapshot{
		RequestID: uuid.NewString(),
		Query:     q,
		Demo:      !p.IsCredentialUsable(),
	}
	p.logger.Printf("[%s] loading %s (demo=%v)", snap.RequestID, q, snap.Demo)

	if q.IsCoords() {
		current, err := p.FetchCurrentConditions(ctx, q)
		if err != nil {
			return Snapshot{}, err
		}
		forecast, err := p.FetchForecast(ctx, current.Name)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Current, snap.Forecast = current, forecast
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap.Current, err = p.FetchCurrentConditions(gctx, q)
			return err
		})
		g.Go(func() error {
			var err error
			snap.Forecast, err = p.FetchForecast(gctx, q.City)
			return err
		})
		if err := g.Wait(); err != nil {
			p.logger.Printf("[%s] load failed: %v", snap.RequestID, err)
			return Snapshot{}, err
		}
	}

	snap.FetchedAt = p.now()
	p.logger.Printf("[%s] loaded %s", snap.RequestID, snap.Current.Location())
	return snap, nil
}
