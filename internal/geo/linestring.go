package geo

import geoerrors "github.com/woozymasta/geojson/internal/errors"

// LineString is an ordered sequence of two or more positions.
type LineString struct {
	object
	positions []Position
}

// NewLineString validates positions and returns a LineString holding a copy of them.
func NewLineString(positions []Position, opts ...Option) (*LineString, error) {
	if positions == nil {
		return nil, geoerrors.Missing("LineString", "positions")
	}
	if len(positions) < MinLineStringPositions {
		return nil, geoerrors.OutOfRange("LineString", "positions",
			"a LineString must have two or more positions")
	}
	return newLineString(clonePositions(positions), opts), nil
}

// newLineString takes ownership of positions, which must already be validated.
func newLineString(positions []Position, opts []Option) *LineString {
	return &LineString{object: newObject(KindLineString, opts), positions: positions}
}

// Len returns the number of positions.
func (l *LineString) Len() int { return len(l.positions) }

// At returns the i-th position.
func (l *LineString) At(i int) Position { return l.positions[i] }

// Positions returns a copy of the positions.
func (l *LineString) Positions() []Position { return clonePositions(l.positions) }

// IsClosed reports whether the first and last positions are equal.
func (l *LineString) IsClosed() bool { return IsClosed(l.positions) }

// IsLinearRing reports whether the line is closed with four or more positions.
func (l *LineString) IsLinearRing() bool { return IsLinearRing(l.positions) }

func clonePositions(positions []Position) []Position {
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}
