package geo

// Point is a geometry with exactly one position.
type Point struct {
	object
	pos Position
}

// NewPoint returns a Point at pos.
func NewPoint(pos Position, opts ...Option) *Point {
	return &Point{object: newObject(KindPoint, opts), pos: pos}
}

// Position returns the point's coordinate tuple.
func (p *Point) Position() Position { return p.pos }
