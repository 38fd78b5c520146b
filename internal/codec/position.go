// Package codec converts between raw value trees (as produced by a JSON or YAML
// decoder) and the geometry model.
package codec

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cast"

	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
)

// Target names the type a caller asks a codec to produce.
type Target string

const (
	// TargetGeometry accepts any geometry variant.
	TargetGeometry   Target = "Geometry"
	TargetPoint      Target = Target(geo.KindPoint)
	TargetLineString Target = Target(geo.KindLineString)
	TargetPolygon    Target = Target(geo.KindPolygon)
	// TargetPositions is a sequence of positions.
	TargetPositions Target = "Positions"
)

const positionShape = "something like '[-122.428938,37.766713]' ([lon,lat]) or [lon,lat,alt]"

// PositionCodec converts coordinate arrays to and from positions.
type PositionCodec struct{}

// CanHandle reports whether t is the position sequence target.
func (PositionCodec) CanHandle(t Target) bool {
	return t == TargetPositions
}

// Decode reads an array of coordinate tuples.
func (c PositionCodec) Decode(raw interface{}, t Target) ([]geo.Position, error) {
	if !c.CanHandle(t) {
		return nil, geoerrors.Unsupported(string(t))
	}
	return DecodePositions(raw, "")
}

// Encode writes positions as an array of coordinate tuples.
func (PositionCodec) Encode(positions []geo.Position) []interface{} {
	return EncodePositions(positions)
}

// DecodePosition reads a single [lon, lat] or [lon, lat, alt] tuple.
func DecodePosition(raw interface{}, path string) (geo.Position, error) {
	arr, ok := raw.([]interface{})
	if !ok || (len(arr) != 2 && len(arr) != 3) {
		return geo.Position{}, geoerrors.NewParseError(path, positionShape, raw)
	}

	var vals [3]float64
	for i, token := range arr {
		f, ok := toFloat(token)
		if !ok {
			return geo.Position{}, geoerrors.NewParseError(index(path, i), "a finite number", token)
		}
		vals[i] = f
	}

	if len(arr) == 3 {
		return geo.NewPositionZ(vals[0], vals[1], vals[2]), nil
	}
	return geo.NewPosition(vals[0], vals[1]), nil
}

// DecodePositions reads an array of tuples.
func DecodePositions(raw interface{}, path string) ([]geo.Position, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, geoerrors.NewParseError(path, "an array of positions", raw)
	}
	out := make([]geo.Position, len(arr))
	for i, v := range arr {
		p, err := DecodePosition(v, index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// DecodeRings reads an array of arrays of tuples.
func DecodeRings(raw interface{}, path string) ([][]geo.Position, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, geoerrors.NewParseError(path, "an array of linear rings", raw)
	}
	out := make([][]geo.Position, len(arr))
	for i, v := range arr {
		ring, err := DecodePositions(v, index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = ring
	}
	return out, nil
}

// EncodePosition writes p in [lon, lat(, alt)] order.
func EncodePosition(p geo.Position) []interface{} {
	coords := p.Coords()
	out := make([]interface{}, len(coords))
	for i, c := range coords {
		out[i] = c
	}
	return out
}

// EncodePositions writes a nesting depth 2 array.
func EncodePositions(positions []geo.Position) []interface{} {
	out := make([]interface{}, len(positions))
	for i, p := range positions {
		out[i] = EncodePosition(p)
	}
	return out
}

// EncodeRings writes a nesting depth 3 array.
func EncodeRings(rings [][]geo.Position) []interface{} {
	out := make([]interface{}, len(rings))
	for i, r := range rings {
		out[i] = EncodePositions(r)
	}
	return out
}

// toFloat accepts numeric tokens only; strings and booleans are rejected even
// when they would convert.
func toFloat(token interface{}) (float64, bool) {
	switch token.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
	default:
		return 0, false
	}
	f, err := cast.ToFloat64E(token)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
