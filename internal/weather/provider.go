package weather

import (
	"context"

	"github.com/i474232898/solar-dashboard/internal/geo"
)

// Source abstracts the weather-by-coordinates endpoint.
type Source interface {
	FetchWeather(ctx context.Context, lat, lon float64) (Record, error)
}

// Locator resolves a free-form place name into coordinates.
type Locator interface {
	Resolve(ctx context.Context, name string) (geo.Coordinates, error)
}

// Observer is notified after the state has been mutated by an action.
// Calls happen outside the state lock, on the goroutine that ran the action.
type Observer interface {
	WeatherStored(rec Record, historyLen int)
	WeatherFailed(err error)
}
