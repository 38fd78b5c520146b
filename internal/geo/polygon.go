package geo

import geoerrors "github.com/woozymasta/geojson/internal/errors"

// Polygon is bounded by linear rings. The first ring is the exterior
// boundary, any following rings are holes.
type Polygon struct {
	object
	rings [][]Position
}

// NewPolygon returns a Polygon from LineStrings, each of which must be a linear ring.
func NewPolygon(rings []*LineString, opts ...Option) (*Polygon, error) {
	if rings == nil {
		return nil, geoerrors.Missing("Polygon", "rings")
	}
	coords := make([][]Position, len(rings))
	for i, r := range rings {
		if r == nil {
			return nil, &geoerrors.ConstructionError{
				Type: "Polygon", Field: "rings", Index: i, Reason: geoerrors.ReasonMissing,
			}
		}
		coords[i] = r.positions
	}
	return NewPolygonFromPositions(coords, opts...)
}

// NewPolygonFromPositions returns a Polygon from raw rings. It applies the same
// checks as NewPolygon: at least one ring, and every ring closed with four or
// more positions. The first violation is reported with its ring index.
func NewPolygonFromPositions(rings [][]Position, opts ...Option) (*Polygon, error) {
	if rings == nil {
		return nil, geoerrors.Missing("Polygon", "rings")
	}
	if len(rings) == 0 {
		return nil, geoerrors.OutOfRange("Polygon", "rings", "a Polygon must have at least one ring")
	}

	owned := make([][]Position, len(rings))
	for i, r := range rings {
		if err := validateRing("Polygon", "rings", i, r); err != nil {
			return nil, err
		}
		owned[i] = clonePositions(r)
	}

	return &Polygon{object: newObject(KindPolygon, opts), rings: owned}, nil
}

// Len returns the number of rings.
func (p *Polygon) Len() int { return len(p.rings) }

// Ring returns ring i as a LineString.
func (p *Polygon) Ring(i int) *LineString {
	return newLineString(clonePositions(p.rings[i]), nil)
}

// Rings returns every ring as a LineString.
func (p *Polygon) Rings() []*LineString {
	out := make([]*LineString, len(p.rings))
	for i := range p.rings {
		out[i] = p.Ring(i)
	}
	return out
}

// Exterior returns the outer boundary.
func (p *Polygon) Exterior() *LineString { return p.Ring(0) }

// Holes returns the interior rings.
func (p *Polygon) Holes() []*LineString { return p.Rings()[1:] }

// Positions returns a deep copy of the ring coordinates.
func (p *Polygon) Positions() [][]Position {
	out := make([][]Position, len(p.rings))
	for i, r := range p.rings {
		out[i] = clonePositions(r)
	}
	return out
}
