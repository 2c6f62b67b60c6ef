package solar

import "context"

// Source abstracts the solar and prediction endpoints.
type Source interface {
	FetchSolar(ctx context.Context, lat, lon float64) (Record, error)
	FetchPredictions(ctx context.Context, lat, lon float64, days int) ([]Prediction, error)
}

// Observer is notified after the state has been mutated by an action.
// Calls happen outside the state lock, on the goroutine that ran the action.
type Observer interface {
	SolarStored(rec Record, historyLen int)
	PredictionsStored(count int)
	SolarFailed(op string, err error)
}
