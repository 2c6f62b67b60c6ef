// Package geo holds the coordinate type shared by the weather and solar
// records and a few helpers for working with it.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// IndiaCenter is the geographic centre of India used as the default map
// position.
var IndiaCenter = Coordinates{20.5937, 78.9629}

// ErrOutOfRange is returned by Validate for impossible coordinates.
var ErrOutOfRange = errors.New("coordinates out of range")

// Coordinates is a latitude/longitude pair. It marshals to a two element
// JSON array, [lat, lon].
type Coordinates [2]float64

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[0] }

// Lon returns the longitude.
func (c Coordinates) Lon() float64 { return c[1] }

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c[0], c[1])
}

// Validate reports whether the pair is a real position on earth.
func (c Coordinates) Validate() error {
	if math.IsNaN(c[0]) || math.IsNaN(c[1]) {
		return fmt.Errorf("%w: NaN", ErrOutOfRange)
	}
	if c[0] < -90 || c[0] > 90 {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, c[0])
	}
	if c[1] < -180 || c[1] > 180 {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, c[1])
	}
	return nil
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := toRad(a.Lat())
	lat2 := toRad(b.Lat())
	dLat := lat2 - lat1
	dLon := toRad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
