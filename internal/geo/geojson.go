// Package geo holds the GeoJSON geometry model and its structural invariants.
package geo

import "github.com/woozymasta/geojson/internal/crs"

// Kind is the geometry type discriminant.
type Kind string

const (
	KindPoint              Kind = "Point"
	KindLineString         Kind = "LineString"
	KindPolygon            Kind = "Polygon"
	KindMultiPoint         Kind = "MultiPoint"
	KindMultiLineString    Kind = "MultiLineString"
	KindMultiPolygon       Kind = "MultiPolygon"
	KindGeometryCollection Kind = "GeometryCollection"
)

// ParseKind maps a discriminant string onto a Kind. Reserved kinds are
// recognized even though no geometry value implements them.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindPoint, KindLineString, KindPolygon,
		KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindGeometryCollection:
		return k, true
	}
	return "", false
}

// Implemented reports whether k has a geometry value type.
func (k Kind) Implemented() bool {
	return k == KindPoint || k == KindLineString || k == KindPolygon
}

// Geometry is the closed set of geometry values: *Point, *LineString and *Polygon.
type Geometry interface {
	Kind() Kind
	// CRS returns the reference to the geometry's CRS, or crs.None.
	CRS() crs.Ref
	geometry()
}

// Option configures the object base of a geometry at construction.
type Option func(*object)

// WithCRS attaches a CRS reference. The geometry does not own the CRS.
func WithCRS(ref crs.Ref) Option {
	return func(o *object) {
		o.crs = ref
	}
}

// WithCRSFrom attaches the reference returned by resolve. Options are applied
// only after a constructor's checks pass, so resolve never runs for a
// rejected geometry.
func WithCRSFrom(resolve func() crs.Ref) Option {
	return func(o *object) {
		o.crs = resolve()
	}
}

// object is the part shared by every GeoJSON object.
type object struct {
	kind Kind
	crs  crs.Ref
}

func newObject(kind Kind, opts []Option) object {
	o := object{kind: kind}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o object) Kind() Kind   { return o.kind }
func (o object) CRS() crs.Ref { return o.crs }
func (o object) geometry()    {}
