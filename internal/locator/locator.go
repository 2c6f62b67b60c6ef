// Package locator resolves place names typed into the dashboard into
// coordinates, first against the site catalog and then, when an API key is
// configured, through the Google geocoding API.
package locator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/rs/zerolog"

	"github.com/i474232898/solar-dashboard/internal/catalog"
	"github.com/i474232898/solar-dashboard/internal/geo"
)

// DefaultCountry is appended to geocoding queries.
const DefaultCountry = "India"

// ErrUnresolved is returned when a name matches no site and cannot be
// geocoded.
var ErrUnresolved = errors.New("location could not be resolved")

// GeocodeFunc matches geocoder.Geocoding.
type GeocodeFunc func(address geocoder.Address) (geocoder.Location, error)

// Locator implements weather.Locator.
type Locator struct {
	catalog *catalog.Catalog
	geocode GeocodeFunc
	country string
	logger  zerolog.Logger

	mu    sync.RWMutex
	cache map[string]geo.Coordinates
}

// New creates a Locator over the catalog. An empty apiKey disables
// geocoding.
func New(c *catalog.Catalog, apiKey string, logger zerolog.Logger) *Locator {
	var fn GeocodeFunc
	if apiKey != "" {
		geocoder.ApiKey = apiKey
		fn = geocoder.Geocoding
	}
	return NewWithGeocoder(c, fn, logger)
}

// NewWithGeocoder creates a Locator with an explicit geocoding function,
// which may be nil.
func NewWithGeocoder(c *catalog.Catalog, fn GeocodeFunc, logger zerolog.Logger) *Locator {
	return &Locator{
		catalog: c,
		geocode: fn,
		country: DefaultCountry,
		logger:  logger.With().Str("component", "locator").Logger(),
		cache:   make(map[string]geo.Coordinates),
	}
}

// Resolve implements weather.Locator.
func (l *Locator) Resolve(ctx context.Context, name string) (geo.Coordinates, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)

	if site, err := l.catalog.Lookup(name); err == nil {
		return site.Position, nil
	}

	l.mu.RLock()
	coords, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return coords, nil
	}

	if l.geocode == nil || name == "" {
		return geo.Coordinates{}, fmt.Errorf("%w: %q", ErrUnresolved, name)
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		loc, err := l.geocode(geocoder.Address{City: name, Country: l.country})
		ch <- result{loc, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return geo.Coordinates{}, ctx.Err()
	case res = <-ch:
	}

	if res.err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: %q: %v", ErrUnresolved, name, res.err)
	}

	coords = geo.Coordinates{res.loc.Latitude, res.loc.Longitude}
	if err := coords.Validate(); err != nil {
		return geo.Coordinates{}, fmt.Errorf("%w: %q: %v", ErrUnresolved, name, err)
	}

	l.mu.Lock()
	l.cache[key] = coords
	l.mu.Unlock()

	l.logger.Debug().Str("name", name).Stringer("coords", coords).Msg("geocoded location")
	return coords, nil
}
