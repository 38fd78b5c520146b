// Package geomconv converts geometries to and from github.com/twpayne/go-geom
// and its WKB hex encoding.
package geomconv

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkbhex"

	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
)

// ToGeom converts g. All positions must share one dimension.
func ToGeom(g geo.Geometry) (geom.T, error) {
	switch v := g.(type) {
	case *geo.Point:
		p := v.Position()
		pt, err := geom.NewPoint(layoutFor(p)).SetCoords(toCoord(p))
		if err != nil {
			return nil, errors.Wrap(err, "converting point")
		}
		return pt, nil
	case *geo.LineString:
		positions := v.Positions()
		layout, err := commonLayout(positions)
		if err != nil {
			return nil, err
		}
		ls, err := geom.NewLineString(layout).SetCoords(toCoords(positions))
		if err != nil {
			return nil, errors.Wrap(err, "converting line string")
		}
		return ls, nil
	case *geo.Polygon:
		rings := v.Positions()
		var all []geo.Position
		coords := make([][]geom.Coord, len(rings))
		for i, r := range rings {
			all = append(all, r...)
			coords[i] = toCoords(r)
		}
		layout, err := commonLayout(all)
		if err != nil {
			return nil, err
		}
		poly, err := geom.NewPolygon(layout).SetCoords(coords)
		if err != nil {
			return nil, errors.Wrap(err, "converting polygon")
		}
		return poly, nil
	default:
		return nil, geoerrors.Unsupported(fmt.Sprintf("%T", g))
	}
}

// FromGeom converts t through the validating geo constructors. Only XY and XYZ
// points, line strings and polygons are accepted.
func FromGeom(t geom.T, opts ...geo.Option) (geo.Geometry, error) {
	if t == nil {
		return nil, geoerrors.Unsupported("nil geometry")
	}
	if l := t.Layout(); l != geom.XY && l != geom.XYZ {
		return nil, geoerrors.Unsupported(fmt.Sprintf("%v layout", l))
	}

	if p, ok := t.(*geom.Point); ok && p.Empty() {
		return nil, geoerrors.Missing("Point", "position")
	}
	if err := checkFinite(t); err != nil {
		return nil, err
	}

	switch v := t.(type) {
	case *geom.Point:
		return geo.NewPoint(fromCoord(v.Coords()), opts...), nil
	case *geom.LineString:
		l, err := geo.NewLineString(fromCoords(v.Coords()), opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case *geom.Polygon:
		coords := v.Coords()
		rings := make([][]geo.Position, len(coords))
		for i, r := range coords {
			rings[i] = fromCoords(r)
		}
		p, err := geo.NewPolygonFromPositions(rings, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, geoerrors.Unsupported(fmt.Sprintf("%T", t))
	}
}

// EncodeWKBHex returns the little-endian WKB of g as hex.
func EncodeWKBHex(g geo.Geometry) (string, error) {
	t, err := ToGeom(g)
	if err != nil {
		return "", err
	}
	s, err := wkbhex.Encode(t, binary.LittleEndian)
	return s, errors.Wrap(err, "encoding wkb")
}

// DecodeWKBHex parses hex WKB into a geometry.
func DecodeWKBHex(s string, opts ...geo.Option) (geo.Geometry, error) {
	t, err := wkbhex.Decode(s)
	if err != nil {
		return nil, geoerrors.NewParseError("", "hex encoded WKB", err.Error())
	}
	return FromGeom(t, opts...)
}

// checkFinite rejects NaN and infinite ordinates, which GeoJSON cannot carry.
func checkFinite(t geom.T) error {
	stride := t.Stride()
	for i, f := range t.FlatCoords() {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return geoerrors.NewParseError(fmt.Sprintf("coordinates[%d][%d]", i/stride, i%stride), "a finite number", f)
		}
	}
	return nil
}

func layoutFor(p geo.Position) geom.Layout {
	if p.Dim() == 3 {
		return geom.XYZ
	}
	return geom.XY
}

func commonLayout(positions []geo.Position) (geom.Layout, error) {
	if len(positions) == 0 {
		return geom.XY, nil
	}
	layout := layoutFor(positions[0])
	for _, p := range positions[1:] {
		if layoutFor(p) != layout {
			return geom.NoLayout, geoerrors.Unsupported("mixed-dimension geometry")
		}
	}
	return layout, nil
}

func toCoord(p geo.Position) geom.Coord {
	return geom.Coord(p.Coords())
}

func toCoords(positions []geo.Position) []geom.Coord {
	out := make([]geom.Coord, len(positions))
	for i, p := range positions {
		out[i] = toCoord(p)
	}
	return out
}

func fromCoord(c geom.Coord) geo.Position {
	if len(c) >= 3 {
		return geo.NewPositionZ(c[0], c[1], c[2])
	}
	return geo.NewPosition(c[0], c[1])
}

func fromCoords(coords []geom.Coord) []geo.Position {
	out := make([]geo.Position, len(coords))
	for i, c := range coords {
		out[i] = fromCoord(c)
	}
	return out
}
