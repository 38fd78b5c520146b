package geo

import geoerrors "github.com/woozymasta/geojson/internal/errors"

// MinLineStringPositions is the smallest number of positions in a LineString.
const MinLineStringPositions = 2

// MinRingPositions is the smallest number of positions in a linear ring.
const MinRingPositions = 4

// IsClosed reports whether the first and last positions are exactly equal.
// An empty sequence is not closed.
func IsClosed(positions []Position) bool {
	if len(positions) == 0 {
		return false
	}
	return positions[0].Equal(positions[len(positions)-1])
}

// IsLinearRing reports whether positions is closed and has at least four elements.
func IsLinearRing(positions []Position) bool {
	return len(positions) >= MinRingPositions && IsClosed(positions)
}

// validateRing returns a ConstructionError naming typ.field[i] when positions
// is not a linear ring. Pass geoerrors.NoIndex for a field that is a single ring.
func validateRing(typ, field string, i int, positions []Position) error {
	if len(positions) < MinRingPositions {
		return geoerrors.OutOfRangeAt(typ, field, i,
			"ring must have 4 or more positions")
	}
	if !IsClosed(positions) {
		return geoerrors.OutOfRangeAt(typ, field, i,
			"ring is not closed: first and last positions differ")
	}
	return nil
}
