package solar

import "github.com/i474232898/solar-dashboard/internal/geo"

// Record is the solar production view for a location as returned by
// GET /api/solar.
type Record struct {
	Location          string          `json:"location"`
	Coordinates       geo.Coordinates `json:"coordinates"`
	SolarIrradiance   float64         `json:"solarIrradiance"`
	PredictedOutput   float64         `json:"predictedOutput"`
	Efficiency        float64         `json:"efficiency"`
	DailyGeneration   float64         `json:"dailyGeneration"`
	MonthlyGeneration float64         `json:"monthlyGeneration"`
	YearlyGeneration  float64         `json:"yearlyGeneration"`
	PeakHours         float64         `json:"peakHours"`
	CloudCoverImpact  float64         `json:"cloudCoverImpact"`
	Timestamp         string          `json:"timestamp"`
}

// WeatherFactors are the weather inputs behind a prediction.
type WeatherFactors struct {
	CloudCover  float64 `json:"cloudCover"`
	Humidity    float64 `json:"humidity"`
	Temperature float64 `json:"temperature"`
}

// Prediction is one day of a solar forecast as returned by
// GET /api/solar/predictions.
type Prediction struct {
	Date                string         `json:"date"`
	PredictedIrradiance float64        `json:"predictedIrradiance"`
	PredictedOutput     float64        `json:"predictedOutput"`
	Confidence          float64        `json:"confidence"`
	WeatherFactors      WeatherFactors `json:"weatherFactors"`
}

// Snapshot is a point-in-time copy of the solar state.
type Snapshot struct {
	SolarData        []Record     `json:"solarData"`
	Predictions      []Prediction `json:"predictions"`
	SelectedLocation *Record      `json:"selectedLocation"`
	Loading          bool         `json:"loading"`
	Error            *string      `json:"error"`
}
