// Package catalog is the fixed set of Indian solar sites shown on the
// dashboard map.
package catalog

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/i474232898/solar-dashboard/internal/geo"
)

// ErrNotFound is returned when no site matches a lookup.
var ErrNotFound = errors.New("site not found")

// Status is the operational state of a site.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusOffline     Status = "offline"
)

// Region classifies the terrain of a site.
type Region string

const (
	RegionAll     Region = "all"
	RegionCity    Region = "city"
	RegionHill    Region = "hill"
	RegionRural   Region = "rural"
	RegionCoastal Region = "coastal"
	RegionDesert  Region = "desert"
)

// Site is a solar installation.
type Site struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Position     geo.Coordinates `json:"position"`
	Irradiance   float64         `json:"irradiance"` // W/m²
	Efficiency   float64         `json:"efficiency"` // %
	Capacity     float64         `json:"capacity"`   // MW
	Status       Status          `json:"status"`
	Region       Region          `json:"region"`
	State        string          `json:"state"`
	Climate      string          `json:"climate"`
	PeakSunHours float64         `json:"peakSunHours"`
	BestMonths   []string        `json:"bestMonths"`
}

// Catalog is an immutable, ordered set of sites.
type Catalog struct {
	sites []Site
}

// New builds a Catalog over sites.
func New(sites []Site) *Catalog {
	cp := make([]Site, len(sites))
	copy(cp, sites)
	return &Catalog{sites: cp}
}

// Default returns the built-in Indian site catalog.
func Default() *Catalog {
	return New(indianSites)
}

// All returns every site.
func (c *Catalog) All() []Site {
	out := make([]Site, len(c.sites))
	copy(out, c.sites)
	return out
}

// Filter returns the sites in region (RegionAll or "" for every region)
// whose name contains search, case-insensitively.
func (c *Catalog) Filter(region Region, search string) []Site {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Site, 0, len(c.sites))
	for _, s := range c.sites {
		if region != "" && region != RegionAll && s.Region != region {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Lookup finds a site by exact name, then by state, then by name fragment.
// All comparisons are case-insensitive.
func (c *Catalog) Lookup(name string) (Site, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return Site{}, ErrNotFound
	}

	for _, s := range c.sites {
		if strings.ToLower(s.Name) == q {
			return s, nil
		}
	}
	for _, s := range c.sites {
		if strings.ToLower(s.State) == q {
			return s, nil
		}
	}
	for _, s := range c.sites {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return s, nil
		}
	}
	return Site{}, ErrNotFound
}

// Nearest returns the site closest to p and its distance in km.
func (c *Catalog) Nearest(p geo.Coordinates) (Site, float64, error) {
	if len(c.sites) == 0 {
		return Site{}, 0, ErrNotFound
	}

	best := -1
	bestDist := math.Inf(1)
	for i, s := range c.sites {
		if d := geo.DistanceKm(p, s.Position); d < bestDist {
			best, bestDist = i, d
		}
	}
	return c.sites[best], bestDist, nil
}

// Stats summarises the catalog for the dashboard header.
type Stats struct {
	Sites             int     `json:"sites"`
	ActiveSites       int     `json:"activeSites"`
	TotalCapacity     float64 `json:"totalCapacity"`
	AverageIrradiance float64 `json:"averageIrradiance"`
	AverageEfficiency float64 `json:"averageEfficiency"`
}

// Stats computes aggregate figures over every site.
func (c *Catalog) Stats() Stats {
	st := Stats{Sites: len(c.sites)}
	if len(c.sites) == 0 {
		return st
	}
	for _, s := range c.sites {
		if s.Status == StatusActive {
			st.ActiveSites++
		}
		st.TotalCapacity += s.Capacity
		st.AverageIrradiance += s.Irradiance
		st.AverageEfficiency += s.Efficiency
	}
	n := float64(len(c.sites))
	st.AverageIrradiance /= n
	st.AverageEfficiency /= n
	return st
}

// Regions returns the distinct regions present, sorted.
func (c *Catalog) Regions() []Region {
	seen := make(map[Region]struct{})
	for _, s := range c.sites {
		seen[s.Region] = struct{}{}
	}
	out := make([]Region, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
