package codec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/woozymasta/geojson/internal/crs"
	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
)

const knownKinds = `one of "Point", "LineString", "Polygon"`

// variant binds a discriminant to the decoder for its coordinate payload.
type variant struct {
	target Target
	decode func(coords interface{}, opts []geo.Option) (geo.Geometry, error)
}

var variants = map[geo.Kind]variant{
	geo.KindPoint:      {target: TargetPoint, decode: decodePoint},
	geo.KindLineString: {target: TargetLineString, decode: decodeLineString},
	geo.KindPolygon:    {target: TargetPolygon, decode: decodePolygon},
}

func decodePoint(coords interface{}, opts []geo.Option) (geo.Geometry, error) {
	p, err := DecodePosition(coords, "coordinates")
	if err != nil {
		return nil, err
	}
	return geo.NewPoint(p, opts...), nil
}

func decodeLineString(coords interface{}, opts []geo.Option) (geo.Geometry, error) {
	positions, err := DecodePositions(coords, "coordinates")
	if err != nil {
		return nil, err
	}
	l, err := geo.NewLineString(positions, opts...)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func decodePolygon(coords interface{}, opts []geo.Option) (geo.Geometry, error) {
	rings, err := DecodeRings(coords, "coordinates")
	if err != nil {
		return nil, err
	}
	p, err := geo.NewPolygonFromPositions(rings, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GeometryCodec decodes and encodes geometry objects. CRS members are
// collected in a document-level table that decoded geometries reference.
type GeometryCodec struct {
	table      *crs.Table
	defaultCRS crs.Ref
}

// Option configures a GeometryCodec.
type Option func(*GeometryCodec)

// WithDefaultCRS sets the CRS referenced by geometries decoded without a crs member.
// ref must come from the codec's table.
func WithDefaultCRS(ref crs.Ref) Option {
	return func(c *GeometryCodec) {
		c.defaultCRS = ref
	}
}

// NewGeometryCodec returns a codec sharing table. A nil table gets a fresh one.
func NewGeometryCodec(table *crs.Table, opts ...Option) *GeometryCodec {
	if table == nil {
		table = crs.NewTable()
	}
	c := &GeometryCodec{table: table}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the codec's CRS table.
func (c *GeometryCodec) Table() *crs.Table { return c.table }

// DefaultCRS returns the reference applied to geometries without a crs member, or crs.None.
func (c *GeometryCodec) DefaultCRS() crs.Ref { return c.defaultCRS }

// CanHandle reports whether t is the geometry abstraction or one of its variants.
func (c *GeometryCodec) CanHandle(t Target) bool {
	if t == TargetGeometry {
		return true
	}
	for _, v := range variants {
		if v.target == t {
			return true
		}
	}
	return false
}

// Decode reads a geometry object from raw. Targets other than TargetGeometry
// require the discriminant to name that variant.
func (c *GeometryCodec) Decode(raw interface{}, t Target) (geo.Geometry, error) {
	if !c.CanHandle(t) {
		return nil, geoerrors.Unsupported(string(t))
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, geoerrors.NewParseError("", "a geometry object", raw)
	}

	discriminant, ok := obj["type"].(string)
	if !ok {
		return nil, geoerrors.NewParseError("type", knownKinds, obj["type"])
	}

	kind, _ := geo.ParseKind(discriminant)
	v, ok := variants[kind]
	if !ok {
		return nil, geoerrors.NewParseError("type", knownKinds, discriminant)
	}
	if t != TargetGeometry && t != v.target {
		return nil, geoerrors.NewParseError("type", fmt.Sprintf("%q", string(t)), discriminant)
	}

	coords, ok := obj["coordinates"]
	if !ok {
		return nil, geoerrors.NewParseError("coordinates", "a coordinates array", nil)
	}

	// The crs member is registered only once the geometry is built, so a
	// rejected geometry leaves the table untouched.
	var opts []geo.Option
	if rawCRS, ok := obj["crs"]; ok && rawCRS != nil {
		def, err := crs.Decode(rawCRS)
		if err != nil {
			return nil, err
		}
		opts = append(opts, geo.WithCRSFrom(func() crs.Ref { return c.table.Add(def) }))
	} else if c.defaultCRS.Valid() {
		opts = append(opts, geo.WithCRS(c.defaultCRS))
	}
	return v.decode(coords, opts)
}

// DecodeAll reads either a single geometry object or an array of them.
func (c *GeometryCodec) DecodeAll(raw interface{}, t Target) ([]geo.Geometry, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		g, err := c.Decode(raw, t)
		if err != nil {
			return nil, err
		}
		return []geo.Geometry{g}, nil
	}

	out := make([]geo.Geometry, len(arr))
	for i, v := range arr {
		g, err := c.Decode(v, t)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		out[i] = g
	}
	return out, nil
}

// Encode writes g as a raw value tree with its discriminant, coordinates
// and, when g references one, its CRS.
func (c *GeometryCodec) Encode(g geo.Geometry) (map[string]interface{}, error) {
	if g == nil {
		return nil, geoerrors.Unsupported("nil geometry")
	}

	out := map[string]interface{}{"type": string(g.Kind())}
	var positions []geo.Position
	switch v := g.(type) {
	case *geo.Point:
		positions = []geo.Position{v.Position()}
		out["coordinates"] = EncodePosition(v.Position())
	case *geo.LineString:
		positions = v.Positions()
		out["coordinates"] = EncodePositions(positions)
	case *geo.Polygon:
		rings := v.Positions()
		for _, r := range rings {
			positions = append(positions, r...)
		}
		out["coordinates"] = EncodeRings(rings)
	default:
		return nil, geoerrors.Unsupported(fmt.Sprintf("%T", g))
	}

	for _, p := range positions {
		if !p.Finite() {
			return nil, geoerrors.OutOfRange(string(g.Kind()), "coordinates",
				"coordinates must be finite numbers, got "+p.String())
		}
	}

	if ref := g.CRS(); ref.Valid() {
		def, ok := c.table.Lookup(ref)
		if !ok {
			return nil, errors.Errorf("geojson: %s references a CRS missing from the codec table", g.Kind())
		}
		out["crs"] = crs.Encode(def)
	}
	return out, nil
}

// EncodeAll encodes every geometry in gs.
func (c *GeometryCodec) EncodeAll(gs []geo.Geometry) ([]interface{}, error) {
	out := make([]interface{}, len(gs))
	for i, g := range gs {
		v, err := c.Encode(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		out[i] = v
	}
	return out, nil
}
