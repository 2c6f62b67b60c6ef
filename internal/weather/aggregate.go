package weather

// Summary is an averaged view over a set of weather records.
type Summary struct {
	Samples         int       `json:"samples"`
	Temperature     float64   `json:"temperature"`
	Humidity        float64   `json:"humidity"`
	Pressure        float64   `json:"pressure"`
	WindSpeed       float64   `json:"windSpeed"`
	CloudCover      float64   `json:"cloudCover"`
	Visibility      float64   `json:"visibility"`
	UVIndex         float64   `json:"uvIndex"`
	SolarIrradiance float64   `json:"solarIrradiance"`
	PeakIrradiance  float64   `json:"peakIrradiance"`
	Condition       Condition `json:"condition"`
}

// Summarize averages the numeric fields of records. The condition is the
// majority condition, ties broken by the newest record's condition.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{Condition: ConditionUnknown}
	}

	var sum Summary
	conditionCounts := make(map[Condition]int)

	for _, r := range records {
		sum.Temperature += r.Temperature
		sum.Humidity += r.Humidity
		sum.Pressure += r.Pressure
		sum.WindSpeed += r.WindSpeed
		sum.CloudCover += r.CloudCover
		sum.Visibility += r.Visibility
		sum.UVIndex += r.UVIndex
		sum.SolarIrradiance += r.SolarIrradiance

		if r.SolarIrradiance > sum.PeakIrradiance {
			sum.PeakIrradiance = r.SolarIrradiance
		}

		conditionCounts[r.Condition()]++
	}

	n := float64(len(records))

	// Pick majority condition; records are newest first.
	best := records[0].Condition()
	bestCount := conditionCounts[best]
	for cond, count := range conditionCounts {
		if count > bestCount {
			bestCount = count
			best = cond
		}
	}

	return Summary{
		Samples:         len(records),
		Temperature:     sum.Temperature / n,
		Humidity:        sum.Humidity / n,
		Pressure:        sum.Pressure / n,
		WindSpeed:       sum.WindSpeed / n,
		CloudCover:      sum.CloudCover / n,
		Visibility:      sum.Visibility / n,
		UVIndex:         sum.UVIndex / n,
		SolarIrradiance: sum.SolarIrradiance / n,
		PeakIrradiance:  sum.PeakIrradiance,
		Condition:       best,
	}
}
