// Package generator produces synthetic weather and solar readings for the
// data API. Values are randomized around the baseline of the nearest
// catalog site.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/i474232898/solar-dashboard/internal/catalog"
	"github.com/i474232898/solar-dashboard/internal/geo"
	"github.com/i474232898/solar-dashboard/internal/solar"
	"github.com/i474232898/solar-dashboard/internal/weather"
)

// nearbyKm is how close a coordinate must be to a site to take its name.
const nearbyKm = 150

// Fallback baseline for coordinates far from every site.
var fallbackSite = catalog.Site{
	Irradiance:   800,
	Efficiency:   85,
	Capacity:     100,
	Region:       catalog.RegionRural,
	PeakSunHours: 5.5,
}

// Generator is safe for concurrent use.
type Generator struct {
	catalog *catalog.Catalog
	now     func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a Generator. A zero seed picks a time based one.
func New(c *catalog.Catalog, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		catalog: c,
		now:     time.Now,
		rnd:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// WithClock overrides the time source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Weather builds a weather observation for p.
func (g *Generator) Weather(p geo.Coordinates) weather.Record {
	site, name := g.baseline(p)

	g.mu.Lock()
	defer g.mu.Unlock()

	cloud := g.between(0, 80)
	irradiance := site.Irradiance * (1 - cloud/100*0.75)

	return weather.Record{
		Location:        name,
		Temperature:     round1(35 - math.Abs(p.Lat()-15)*0.4 + g.between(-3, 3)),
		Humidity:        round1(g.humidity(site.Region)),
		Pressure:        round1(g.between(1005, 1018)),
		WindSpeed:       round1(g.between(2, 20)),
		WindDirection:   math.Round(g.between(0, 360)),
		CloudCover:      round1(cloud),
		Visibility:      round1(g.between(4, 10)),
		UVIndex:         math.Round(math.Min(11, irradiance/90)),
		SolarIrradiance: math.Round(irradiance),
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}
}

// Solar builds a solar production view for p.
func (g *Generator) Solar(p geo.Coordinates) solar.Record {
	site, name := g.baseline(p)

	g.mu.Lock()
	defer g.mu.Unlock()

	cloud := g.between(0, 80)
	impact := cloud * 0.75
	irradiance := site.Irradiance * (1 - impact/100)
	efficiency := site.Efficiency + g.between(-1.5, 1.5)
	peak := site.PeakSunHours * (1 - cloud/100*0.3)
	daily := site.Capacity * peak * efficiency / 100

	return solar.Record{
		Location:          name,
		Coordinates:       p,
		SolarIrradiance:   math.Round(irradiance),
		PredictedOutput:   round1(site.Capacity * irradiance / 1000 * efficiency / 100),
		Efficiency:        round1(efficiency),
		DailyGeneration:   round1(daily),
		MonthlyGeneration: round1(daily * 30),
		YearlyGeneration:  round1(daily * 365),
		PeakHours:         round1(peak),
		CloudCoverImpact:  round1(impact),
		Timestamp:         g.now().UTC().Format(time.RFC3339),
	}
}

// Predictions builds a forecast of days entries starting tomorrow.
// Confidence decays with the horizon.
func (g *Generator) Predictions(p geo.Coordinates, days int) []solar.Prediction {
	site, _ := g.baseline(p)

	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.now().UTC()
	out := make([]solar.Prediction, 0, days)
	for i := 1; i <= days; i++ {
		cloud := g.between(0, 80)
		irradiance := site.Irradiance * (1 - cloud/100*0.75)
		efficiency := site.Efficiency + g.between(-1.5, 1.5)
		confidence := math.Max(50, 96-float64(i)*1.5+g.between(-2, 2))

		out = append(out, solar.Prediction{
			Date:                start.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedIrradiance: math.Round(irradiance),
			PredictedOutput:     round1(site.Capacity * irradiance / 1000 * efficiency / 100),
			Confidence:          round1(confidence),
			WeatherFactors: solar.WeatherFactors{
				CloudCover:  round1(cloud),
				Humidity:    round1(g.humidity(site.Region)),
				Temperature: round1(35 - math.Abs(p.Lat()-15)*0.4 + g.between(-3, 3)),
			},
		})
	}
	return out
}

func (g *Generator) baseline(p geo.Coordinates) (catalog.Site, string) {
	site, dist, err := g.catalog.Nearest(p)
	if err != nil || dist > nearbyKm {
		return fallbackSite, fmt.Sprintf("%.4f, %.4f", p.Lat(), p.Lon())
	}
	return site, site.Name
}

func (g *Generator) humidity(r catalog.Region) float64 {
	switch r {
	case catalog.RegionCoastal:
		return g.between(65, 85)
	case catalog.RegionDesert:
		return g.between(15, 35)
	case catalog.RegionHill:
		return g.between(35, 60)
	default:
		return g.between(40, 70)
	}
}

// between must be called with g.mu held.
func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
