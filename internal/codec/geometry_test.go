package codec

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	gj "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/geojson/internal/crs"
	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
)

var allFields = cmp.Exporter(func(reflect.Type) bool { return true })

func square() [][]geo.Position {
	return [][]geo.Position{{
		geo.NewPosition(0, 0), geo.NewPosition(1, 0), geo.NewPosition(1, 1), geo.NewPosition(0, 0),
	}}
}

func samples(t *testing.T, table *crs.Table) map[string]geo.Geometry {
	t.Helper()

	named, err := crs.NewNamed("urn:ogc:def:crs:OGC:1.3:CRS84")
	require.NoError(t, err)
	ref := table.Add(named)

	line, err := geo.NewLineString([]geo.Position{geo.NewPosition(0, 0), geo.NewPosition(1, 1)})
	require.NoError(t, err)
	line3d, err := geo.NewLineString([]geo.Position{geo.NewPositionZ(0, 0, 10), geo.NewPositionZ(1, 1, 20)}, geo.WithCRS(ref))
	require.NoError(t, err)
	poly, err := geo.NewPolygonFromPositions(square())
	require.NoError(t, err)
	withHole, err := geo.NewPolygonFromPositions([][]geo.Position{
		{geo.NewPosition(0, 0), geo.NewPosition(10, 0), geo.NewPosition(10, 10), geo.NewPosition(0, 10), geo.NewPosition(0, 0)},
		{geo.NewPosition(2, 2), geo.NewPosition(2, 3), geo.NewPosition(3, 3), geo.NewPosition(2, 2)},
	}, geo.WithCRS(ref))
	require.NoError(t, err)

	return map[string]geo.Geometry{
		"point":           geo.NewPoint(geo.NewPosition(-122.428938, 37.766713)),
		"point with crs":  geo.NewPoint(geo.NewPositionZ(12.49268, 41.89029, 21), geo.WithCRS(ref)),
		"line":            line,
		"line 3d":         line3d,
		"polygon":         poly,
		"polygon w/ hole": withHole,
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewGeometryCodec(nil)
	for name, g := range samples(t, c.Table()) {
		g := g
		t.Run(name+"/tree", func(t *testing.T) {
			raw, err := c.Encode(g)
			require.NoError(t, err)
			got, err := c.Decode(raw, TargetGeometry)
			require.NoError(t, err)
			if diff := cmp.Diff(g, got, allFields); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run(name+"/json", func(t *testing.T) {
			b, err := c.EncodeJSON(g)
			require.NoError(t, err)
			got, err := c.DecodeJSON(b)
			require.NoError(t, err)
			if diff := cmp.Diff(g, got, allFields); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
		t.Run(name+"/yaml", func(t *testing.T) {
			b, err := c.EncodeYAML(g)
			require.NoError(t, err)
			got, err := c.DecodeYAML(b)
			require.NoError(t, err)
			if diff := cmp.Diff(g, got, allFields); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
	assert.Equal(t, 1, c.Table().Len(), "decoding must reuse the shared CRS entry")
}

func TestDecodePointScenario(t *testing.T) {
	c := NewGeometryCodec(nil)
	g, err := c.DecodeJSON([]byte(`{"type":"Point","coordinates":[-122.428938, 37.766713]}`))
	require.NoError(t, err)

	p, ok := g.(*geo.Point)
	require.True(t, ok)
	assert.Equal(t, -122.428938, p.Position().Longitude())
	assert.Equal(t, 37.766713, p.Position().Latitude())

	b, err := c.EncodeJSON(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[-122.428938,37.766713]}`, string(b))
}

func TestDecodeLineStrings(t *testing.T) {
	c := NewGeometryCodec(nil)

	g, err := c.DecodeJSON([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
	require.NoError(t, err)
	assert.False(t, g.(*geo.LineString).IsLinearRing())

	g, err = c.DecodeJSON([]byte(`{"type":"LineString","coordinates":[[0,0],[1,0],[1,1],[0,0]]}`))
	require.NoError(t, err)
	assert.True(t, g.(*geo.LineString).IsLinearRing())

	_, err = c.DecodeJSON([]byte(`{"type":"LineString","coordinates":[[0,0]]}`))
	require.Error(t, err)
	assert.True(t, geoerrors.IsOutOfRange(err))
}

func TestDecodePolygonValidates(t *testing.T) {
	c := NewGeometryCodec(nil)

	_, err := c.DecodeJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1]]]}`))
	require.Error(t, err)
	assert.True(t, geoerrors.IsConstruction(err))

	_, err = c.DecodeJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]],[[0,0],[1,0],[1,1],[0,1]]]}`))
	require.Error(t, err)
	ce, ok := err.(*geoerrors.ConstructionError)
	require.True(t, ok, "validation errors propagate unchanged, got %T", err)
	assert.Equal(t, 1, ce.Index)

	_, err = c.DecodeJSON([]byte(`{"type":"Polygon","coordinates":[]}`))
	assert.True(t, geoerrors.IsOutOfRange(err))
}

func TestDecodeUnknownDiscriminant(t *testing.T) {
	c := NewGeometryCodec(nil)
	for _, kind := range []string{"Circle", "MultiPolygon", "GeometryCollection", "point"} {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			_, err := c.Decode(map[string]interface{}{
				"type":        kind,
				"coordinates": []interface{}{0.0, 0.0},
			}, TargetGeometry)
			require.Error(t, err)
			assert.True(t, geoerrors.IsParse(err))
			assert.Contains(t, err.Error(), `"`+kind+`"`)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	c := NewGeometryCodec(nil)
	tests := []struct {
		name string
		raw  interface{}
	}{
		{name: "not an object", raw: []interface{}{0.0, 0.0}},
		{name: "missing type", raw: map[string]interface{}{"coordinates": []interface{}{0.0, 0.0}}},
		{name: "non-string type", raw: map[string]interface{}{"type": 1.0, "coordinates": []interface{}{0.0, 0.0}}},
		{name: "missing coordinates", raw: map[string]interface{}{"type": "Point"}},
		{name: "point arity", raw: map[string]interface{}{"type": "Point", "coordinates": []interface{}{0.0}}},
		{name: "point depth", raw: map[string]interface{}{"type": "Point", "coordinates": []interface{}{[]interface{}{0.0, 0.0}}}},
		{name: "line depth", raw: map[string]interface{}{"type": "LineString", "coordinates": []interface{}{0.0, 0.0}}},
		{name: "bad crs", raw: map[string]interface{}{"type": "Point", "coordinates": []interface{}{0.0, 0.0}, "crs": "EPSG:4326"}},
	}
	for _, test := range tests {
		tc := test
		t.Run(tc.name, func(t *testing.T) {
			g, err := c.Decode(tc.raw, TargetGeometry)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, geoerrors.IsParse(err), "want ParseError, got %v", err)
		})
	}
}

func TestDecodeJSONSyntax(t *testing.T) {
	c := NewGeometryCodec(nil)
	_, err := c.DecodeJSON([]byte(`{"type":"Point",`))
	assert.True(t, geoerrors.IsParse(err))

	_, err = c.DecodeJSON([]byte(`{"type":"Point","coordinates":[0,0]} {}`))
	assert.True(t, geoerrors.IsParse(err))
}

func TestCanHandle(t *testing.T) {
	c := NewGeometryCodec(nil)
	for _, target := range []Target{TargetGeometry, TargetPoint, TargetLineString, TargetPolygon} {
		assert.True(t, c.CanHandle(target), string(target))
	}
	for _, target := range []Target{TargetPositions, "Feature", "MultiPoint", ""} {
		assert.False(t, c.CanHandle(target), string(target))
	}
}

func TestDecodeUnsupportedTargetBeforeParsing(t *testing.T) {
	c := NewGeometryCodec(nil)
	// the raw value is garbage; the target check must fire first
	_, err := c.Decode("not even an object", "Feature")
	require.Error(t, err)
	assert.True(t, geoerrors.IsUnsupported(err))
	assert.False(t, geoerrors.IsParse(err))
}

func TestDecodeConcreteTarget(t *testing.T) {
	c := NewGeometryCodec(nil)
	raw := map[string]interface{}{
		"type":        "LineString",
		"coordinates": []interface{}{[]interface{}{0.0, 0.0}, []interface{}{1.0, 1.0}},
	}

	g, err := c.Decode(raw, TargetLineString)
	require.NoError(t, err)
	assert.Equal(t, geo.KindLineString, g.Kind())

	_, err = c.Decode(raw, TargetPoint)
	require.Error(t, err)
	assert.True(t, geoerrors.IsParse(err))
	assert.Contains(t, err.Error(), `"LineString"`)
}

func TestDecodeYAMLIntegers(t *testing.T) {
	c := NewGeometryCodec(nil)
	g, err := c.DecodeYAML([]byte("type: Polygon\ncoordinates:\n  - [[0, 0], [1, 0], [1, 1], [0, 0]]\n"))
	require.NoError(t, err)
	assert.Equal(t, square(), g.(*geo.Polygon).Positions())
}

func TestCRSSharedAcrossDocument(t *testing.T) {
	c := NewGeometryCodec(nil)
	doc := []byte(`[
		{"type":"Point","coordinates":[1,2],"crs":{"type":"name","properties":{"name":"EPSG:4326"}}},
		{"type":"LineString","coordinates":[[1,2],[3,4]],"crs":{"type":"name","properties":{"name":"EPSG:4326"}}},
		{"type":"Point","coordinates":[5,6],"crs":{"type":"link","properties":{"href":"http://example.com/crs","type":"proj4"}}},
		{"type":"Point","coordinates":[7,8]}
	]`)
	raw, err := ParseJSON(doc)
	require.NoError(t, err)

	gs, err := c.DecodeAll(raw, TargetGeometry)
	require.NoError(t, err)
	require.Len(t, gs, 4)

	assert.Equal(t, gs[0].CRS(), gs[1].CRS())
	assert.NotEqual(t, gs[0].CRS(), gs[2].CRS())
	assert.False(t, gs[3].CRS().Valid())
	assert.Equal(t, 2, c.Table().Len())

	out, err := c.EncodeAll(gs)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"type":       "link",
		"properties": map[string]interface{}{"href": "http://example.com/crs", "type": "proj4"},
	}, out[2].(map[string]interface{})["crs"])
	_, ok := out[3].(map[string]interface{})["crs"]
	assert.False(t, ok)
}

func TestCRSMissingHrefOnDecode(t *testing.T) {
	c := NewGeometryCodec(nil)
	_, err := c.DecodeJSON([]byte(`{"type":"Point","coordinates":[1,2],"crs":{"type":"link","properties":{"href":null}}}`))
	require.Error(t, err)
	assert.True(t, geoerrors.IsMissing(err))
}

func TestRejectedGeometryLeavesTableUntouched(t *testing.T) {
	c := NewGeometryCodec(nil)
	_, err := c.DecodeJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1]]],` +
		`"crs":{"type":"name","properties":{"name":"EPSG:4326"}}}`))
	require.Error(t, err)
	assert.True(t, geoerrors.IsConstruction(err))
	assert.Equal(t, 0, c.Table().Len())

	_, err = c.DecodeJSON([]byte(`{"type":"LineString","coordinates":[[0,0],["x",1]],` +
		`"crs":{"type":"name","properties":{"name":"EPSG:4326"}}}`))
	require.Error(t, err)
	assert.True(t, geoerrors.IsParse(err))
	assert.Equal(t, 0, c.Table().Len())

	g, err := c.DecodeJSON([]byte(`{"type":"Point","coordinates":[0,0],` +
		`"crs":{"type":"name","properties":{"name":"EPSG:4326"}}}`))
	require.NoError(t, err)
	assert.True(t, g.CRS().Valid())
	assert.Equal(t, 1, c.Table().Len())
}

func TestDecodeAllReportsIndex(t *testing.T) {
	c := NewGeometryCodec(nil)
	raw, err := ParseJSON([]byte(`[{"type":"Point","coordinates":[1,2]},{"type":"Circle","coordinates":[1,2]}]`))
	require.NoError(t, err)

	_, err = c.DecodeAll(raw, TargetGeometry)
	require.Error(t, err)
	assert.True(t, geoerrors.IsParse(err))
	assert.Contains(t, err.Error(), "geometry 1")
}

func TestDefaultCRS(t *testing.T) {
	table := crs.NewTable()
	named, err := crs.NewNamed("EPSG:3857")
	require.NoError(t, err)
	ref := table.Add(named)

	c := NewGeometryCodec(table, WithDefaultCRS(ref))
	g, err := c.DecodeJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	require.NoError(t, err)
	assert.Equal(t, ref, g.CRS())

	out, err := c.Encode(g)
	require.NoError(t, err)
	assert.Equal(t, crs.Encode(named), out["crs"])
}

func TestEncodeForeignCRSRef(t *testing.T) {
	other := crs.NewTable()
	mercator, err := crs.NewNamed("EPSG:3857")
	require.NoError(t, err)
	p := geo.NewPoint(geo.NewPosition(0, 0), geo.WithCRS(other.Add(mercator)))

	_, err = NewGeometryCodec(nil).Encode(p)
	assert.Error(t, err)

	// a populated table must not resolve the ref to its own entry at the same index
	c := NewGeometryCodec(nil)
	wgs, err := crs.NewNamed("EPSG:4326")
	require.NoError(t, err)
	c.Table().Add(wgs)

	out, err := c.Encode(p)
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	c := NewGeometryCodec(nil)
	line, err := geo.NewLineString([]geo.Position{geo.NewPosition(0, 0), geo.NewPositionZ(1, 1, math.Inf(-1))})
	require.NoError(t, err)

	for _, g := range []geo.Geometry{
		geo.NewPoint(geo.NewPosition(math.NaN(), 1)),
		line,
	} {
		_, err := c.Encode(g)
		require.Error(t, err)
		assert.True(t, geoerrors.IsOutOfRange(err), "%s: %v", g.Kind(), err)

		_, err = c.EncodeJSON(g)
		assert.True(t, geoerrors.IsConstruction(err))
	}
}

func TestEncodeNil(t *testing.T) {
	_, err := NewGeometryCodec(nil).Encode(nil)
	assert.True(t, geoerrors.IsUnsupported(err))
}

func TestInteropWithGoGeoJSON(t *testing.T) {
	c := NewGeometryCodec(nil)

	t.Run("decode theirs", func(t *testing.T) {
		theirs := []*gj.Geometry{
			gj.NewPointGeometry([]float64{-122.428938, 37.766713}),
			gj.NewLineStringGeometry([][]float64{{0, 0}, {1, 1}}),
			gj.NewPolygonGeometry([][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}),
		}
		for _, g := range theirs {
			b, err := g.MarshalJSON()
			require.NoError(t, err)
			got, err := c.DecodeJSON(b)
			require.NoError(t, err)
			assert.Equal(t, string(g.Type), string(got.Kind()))
		}
	})

	t.Run("encode ours", func(t *testing.T) {
		poly, err := geo.NewPolygonFromPositions(square())
		require.NoError(t, err)
		b, err := c.EncodeJSON(poly)
		require.NoError(t, err)

		theirs, err := gj.UnmarshalGeometry(b)
		require.NoError(t, err)
		assert.True(t, theirs.IsPolygon())
		assert.Equal(t, [][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, theirs.Polygon)
	})
}
