package solar

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/solar-dashboard/internal/geo"
)

type fakeSource struct {
	solar    func(lat, lon float64) (Record, error)
	predict  func(days int) ([]Prediction, error)
	lastDays int
}

func (f *fakeSource) FetchSolar(_ context.Context, lat, lon float64) (Record, error) {
	return f.solar(lat, lon)
}

func (f *fakeSource) FetchPredictions(_ context.Context, _, _ float64, days int) ([]Prediction, error) {
	f.lastDays = days
	return f.predict(days)
}

func predictionsFor(prefix string, days int) []Prediction {
	out := make([]Prediction, days)
	for i := range out {
		out[i] = Prediction{Date: fmt.Sprintf("%s-%02d", prefix, i+1), Confidence: 90}
	}
	return out
}

func TestFetchSolarDataSelectsNewest(t *testing.T) {
	n := 0
	src := &fakeSource{solar: func(lat, lon float64) (Record, error) {
		n++
		return Record{Location: fmt.Sprintf("site-%d", n), Coordinates: geo.Coordinates{lat, lon}}, nil
	}}
	s := NewState(src)

	for i := 1; i <= 105; i++ {
		s.FetchSolarData(context.Background(), 27.02, 74.21)

		snap := s.Snapshot()
		require.NotNil(t, snap.SelectedLocation)
		require.Equal(t, fmt.Sprintf("site-%d", i), snap.SelectedLocation.Location)
		require.Equal(t, snap.SolarData[0], *snap.SelectedLocation)
	}

	assert.Len(t, s.Snapshot().SolarData, 100)
}

func TestFetchSolarDataFailureKeepsState(t *testing.T) {
	fail := false
	src := &fakeSource{solar: func(float64, float64) (Record, error) {
		if fail {
			return Record{}, errors.New("failed to fetch solar data: server error")
		}
		return Record{Location: "Chennai Solar Hub"}, nil
	}}
	s := NewState(src)

	s.FetchSolarData(context.Background(), 13.08, 80.27)
	before := s.Snapshot()

	fail = true
	s.FetchSolarData(context.Background(), 13.08, 80.27)
	after := s.Snapshot()

	require.NotNil(t, after.Error)
	assert.Equal(t, "failed to fetch solar data: server error", *after.Error)
	assert.Equal(t, before.SolarData, after.SolarData)
	assert.Equal(t, before.SelectedLocation, after.SelectedLocation)
	assert.False(t, after.Loading)
}

func TestGeneratePredictionsReplaces(t *testing.T) {
	call := 0
	src := &fakeSource{predict: func(days int) ([]Prediction, error) {
		call++
		return predictionsFor(fmt.Sprintf("call%d", call), days), nil
	}}
	s := NewState(src)

	s.GeneratePredictions(context.Background(), 28.61, 77.20, 7)
	require.Len(t, s.Snapshot().Predictions, 7)

	s.GeneratePredictions(context.Background(), 28.61, 77.20, 3)
	assert.Equal(t, predictionsFor("call2", 3), s.Snapshot().Predictions)
}

func TestGeneratePredictionsClampsDays(t *testing.T) {
	src := &fakeSource{predict: func(days int) ([]Prediction, error) {
		return predictionsFor("d", days+5), nil
	}}
	s := NewState(src, WithMaxPredictionDays(14))

	s.GeneratePredictions(context.Background(), 0, 0, 0)
	assert.Equal(t, 1, src.lastDays)
	assert.Len(t, s.Snapshot().Predictions, 1)

	s.GeneratePredictions(context.Background(), 0, 0, 400)
	assert.Equal(t, 14, src.lastDays)
	assert.Len(t, s.Snapshot().Predictions, 14)
}

func TestGeneratePredictionsFailureKeepsList(t *testing.T) {
	fail := false
	src := &fakeSource{predict: func(days int) ([]Prediction, error) {
		if fail {
			return nil, errors.New("failed to generate predictions")
		}
		return predictionsFor("ok", days), nil
	}}
	s := NewState(src)

	s.GeneratePredictions(context.Background(), 0, 0, DefaultPredictionDays)
	fail = true
	s.GeneratePredictions(context.Background(), 0, 0, 3)

	snap := s.Snapshot()
	assert.Len(t, snap.Predictions, DefaultPredictionDays)
	require.NotNil(t, snap.Error)
	assert.Equal(t, "failed to generate predictions", *snap.Error)
}

func TestSharedErrorSlot(t *testing.T) {
	src := &fakeSource{
		solar: func(float64, float64) (Record, error) { return Record{}, errors.New("solar down") },
		predict: func(days int) ([]Prediction, error) {
			return predictionsFor("ok", days), nil
		},
	}
	s := NewState(src)

	s.FetchSolarData(context.Background(), 0, 0)
	assert.Equal(t, "solar down", s.Err())

	// A successful action of the other kind clears it.
	s.GeneratePredictions(context.Background(), 0, 0, 2)
	assert.Empty(t, s.Err())
}

func TestSelectLocation(t *testing.T) {
	s := NewState(&fakeSource{})

	rec := Record{Location: "Leh Ladakh High Altitude", Coordinates: geo.Coordinates{34.15, 77.57}}
	s.SelectLocation(rec)

	snap := s.Snapshot()
	require.NotNil(t, snap.SelectedLocation)
	assert.Equal(t, rec, *snap.SelectedLocation)
	assert.Empty(t, snap.SolarData)
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 1, ClampDays(-3, 30))
	assert.Equal(t, 1, ClampDays(0, 30))
	assert.Equal(t, 7, ClampDays(7, 30))
	assert.Equal(t, 30, ClampDays(31, 30))
}
