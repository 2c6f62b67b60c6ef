// Package dashboard holds the live headline statistics shown on the
// dashboard page.
package dashboard

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Stats are the four headline figures.
type Stats struct {
	TotalGeneration   float64    `json:"totalGeneration"`   // MWh
	AverageIrradiance float64    `json:"averageIrradiance"` // W/m²
	Efficiency        float64    `json:"efficiency"`        // %
	ActiveSites       int        `json:"activeSites"`
	UpdatedAt         *time.Time `json:"updatedAt"`
}

// HourlyPoint is one point of the daily irradiance/generation curve.
type HourlyPoint struct {
	Time       string  `json:"time"`
	Irradiance float64 `json:"irradiance"`
	Generation float64 `json:"generation"`
}

// DailyProfile is the reference irradiance and generation curve.
var DailyProfile = []HourlyPoint{
	{Time: "00:00", Irradiance: 0, Generation: 0},
	{Time: "06:00", Irradiance: 200, Generation: 150},
	{Time: "09:00", Irradiance: 600, Generation: 480},
	{Time: "12:00", Irradiance: 1000, Generation: 850},
	{Time: "15:00", Irradiance: 800, Generation: 680},
	{Time: "18:00", Irradiance: 300, Generation: 240},
	{Time: "21:00", Irradiance: 0, Generation: 0},
}

// View is the payload of the dashboard endpoint.
type View struct {
	Stats   Stats         `json:"stats"`
	Profile []HourlyPoint `json:"profile"`
}

// Board holds the current Stats. Zero until the first Refresh.
type Board struct {
	now func() time.Time

	mu    sync.RWMutex
	rnd   *rand.Rand
	stats Stats
}

// NewBoard creates a Board. A zero seed picks a time based one.
func NewBoard(seed uint64) *Board {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Board{
		now: time.Now,
		rnd: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Refresh draws a new set of figures: generation 2000-3000 MWh, irradiance
// 700-900 W/m², efficiency 85-95 % and 150-199 active sites.
func (b *Board) Refresh() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now().UTC()
	b.stats = Stats{
		TotalGeneration:   b.rnd.Float64()*1000 + 2000,
		AverageIrradiance: b.rnd.Float64()*200 + 700,
		Efficiency:        b.rnd.Float64()*10 + 85,
		ActiveSites:       b.rnd.IntN(50) + 150,
		UpdatedAt:         &now,
	}
	return b.stats
}

// Stats returns the current figures.
func (b *Board) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

// View returns the current figures together with the daily profile.
func (b *Board) View() View {
	profile := make([]HourlyPoint, len(DailyProfile))
	copy(profile, DailyProfile)
	return View{Stats: b.Stats(), Profile: profile}
}
