package geo

import (
	"fmt"
	"math"
)

// Position is a single coordinate tuple. Serialized order is
// [longitude, latitude] or [longitude, latitude, altitude].
type Position struct {
	lon, lat float64
	alt      float64
	hasAlt   bool
}

// NewPosition returns a two-dimensional position.
func NewPosition(lon, lat float64) Position {
	return Position{lon: lon, lat: lat}
}

// NewPositionZ returns a position with altitude.
func NewPositionZ(lon, lat, alt float64) Position {
	return Position{lon: lon, lat: lat, alt: alt, hasAlt: true}
}

func (p Position) Longitude() float64 { return p.lon }
func (p Position) Latitude() float64  { return p.lat }

// Altitude returns the altitude and whether the position has one.
func (p Position) Altitude() (float64, bool) { return p.alt, p.hasAlt }

// Dim returns 2 or 3.
func (p Position) Dim() int {
	if p.hasAlt {
		return 3
	}
	return 2
}

// Coords returns the tuple in serialized order.
func (p Position) Coords() []float64 {
	if p.hasAlt {
		return []float64{p.lon, p.lat, p.alt}
	}
	return []float64{p.lon, p.lat}
}

// Finite reports whether no coordinate is NaN or infinite.
func (p Position) Finite() bool {
	for _, c := range p.Coords() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Equal is exact element-wise equality; positions of different dimension are never equal.
func (p Position) Equal(o Position) bool {
	return p == o
}

func (p Position) String() string {
	if p.hasAlt {
		return fmt.Sprintf("[%v, %v, %v]", p.lon, p.lat, p.alt)
	}
	return fmt.Sprintf("[%v, %v]", p.lon, p.lat)
}
