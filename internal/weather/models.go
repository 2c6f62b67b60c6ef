package weather

// Condition represents a normalized high-level sky condition.
type Condition string

const (
	ConditionUnknown  Condition = "unknown"
	ConditionClear    Condition = "clear"
	ConditionPartly   Condition = "partly-cloudy"
	ConditionCloudy   Condition = "cloudy"
	ConditionOvercast Condition = "overcast"
)

// Record is a single weather observation for a location as returned by
// GET /api/weather.
type Record struct {
	Location        string  `json:"location"`
	Temperature     float64 `json:"temperature"`
	Humidity        float64 `json:"humidity"`
	Pressure        float64 `json:"pressure"`
	WindSpeed       float64 `json:"windSpeed"`
	WindDirection   float64 `json:"windDirection"`
	CloudCover      float64 `json:"cloudCover"`
	Visibility      float64 `json:"visibility"`
	UVIndex         float64 `json:"uvIndex"`
	SolarIrradiance float64 `json:"solarIrradiance"`
	Timestamp       string  `json:"timestamp"`
}

// Condition derives the sky condition from the cloud cover percentage.
func (r Record) Condition() Condition {
	switch {
	case r.CloudCover < 0:
		return ConditionUnknown
	case r.CloudCover < 20:
		return ConditionClear
	case r.CloudCover < 50:
		return ConditionPartly
	case r.CloudCover < 85:
		return ConditionCloudy
	default:
		return ConditionOvercast
	}
}

// Snapshot is a point-in-time copy of the weather state.
type Snapshot struct {
	WeatherData    []Record `json:"weatherData"`
	CurrentWeather *Record  `json:"currentWeather"`
	Location       string   `json:"location,omitempty"`
	Loading        bool     `json:"loading"`
	Error          *string  `json:"error"`
}
