package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Fallback anchor used whenever coordinate data cannot be resolved.
// Ajmer, Rajasthan.
const (
	DefaultLatitude  = 26.4499
	DefaultLongitude = 74.6399
)

const (
	// CityDelta is the viewport half-width pair used for city-level zoom.
	CityDelta = 0.05
	// FocusDelta is the tighter zoom applied when a marker is selected.
	FocusDelta = 0.02
)

func DefaultPoint() orb.Point {
	return orb.Point{DefaultLongitude, DefaultLatitude}
}

// Region describes a map viewport as a bounding box centered at
// (Latitude, Longitude) with half-widths LatitudeDelta/2 and
// LongitudeDelta/2.
type Region struct {
	Latitude       float64
	Longitude      float64
	LatitudeDelta  float64
	LongitudeDelta float64
}

func NewRegion(center orb.Point, delta float64) Region {
	return Region{
		Latitude:       center.Lat(),
		Longitude:      center.Lon(),
		LatitudeDelta:  delta,
		LongitudeDelta: delta,
	}
}

func DefaultRegion() Region {
	return NewRegion(DefaultPoint(), CityDelta)
}

func (r Region) Center() orb.Point {
	return orb.Point{r.Longitude, r.Latitude}
}

func (r Region) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.Longitude - r.LongitudeDelta/2, r.Latitude - r.LatitudeDelta/2},
		Max: orb.Point{r.Longitude + r.LongitudeDelta/2, r.Latitude + r.LatitudeDelta/2},
	}
}

// Contains reports whether p lies within the viewport, bounds inclusive.
func (r Region) Contains(p orb.Point) bool {
	return r.Bound().Contains(p)
}

func (r Region) IsZero() bool {
	return r == Region{}
}

func Finite(p orb.Point) bool {
	return !math.IsNaN(p.Lat()) && !math.IsInf(p.Lat(), 0) &&
		!math.IsNaN(p.Lon()) && !math.IsInf(p.Lon(), 0)
}
