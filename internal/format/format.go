// Package format reads and writes geometry documents in the supported text formats.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/geojson/internal/codec"
	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
	"github.com/woozymasta/geojson/internal/geomconv"
)

// Format names a document encoding.
type Format string

const (
	Auto   Format = "auto"
	JSON   Format = "json"
	YAML   Format = "yaml"
	WKBHex Format = "wkb-hex"
)

const mediaJSON = "application/json"

// Document is a decoded input: one geometry or an array of them.
type Document struct {
	Geometries []geo.Geometry
	// Single is true when the input was a lone geometry object rather than an array.
	Single bool
}

// Read decodes data in format f. Auto picks JSON when the document starts
// with '{' or '[' and YAML otherwise.
func Read(c *codec.GeometryCodec, data []byte, f Format, target codec.Target) (*Document, error) {
	if !c.CanHandle(target) {
		return nil, geoerrors.Unsupported(string(target))
	}
	if f == Auto {
		f = Detect(data)
	}

	var (
		raw interface{}
		err error
	)
	switch f {
	case JSON:
		raw, err = codec.ParseJSON(data)
	case YAML:
		raw, err = codec.ParseYAML(data)
	case WKBHex:
		return readWKBHex(c, data, target)
	default:
		return nil, errors.Errorf("unknown input format %q", f)
	}
	if err != nil {
		return nil, err
	}

	_, isArray := raw.([]interface{})
	gs, err := c.DecodeAll(raw, target)
	if err != nil {
		return nil, err
	}
	return &Document{Geometries: gs, Single: !isArray}, nil
}

// Detect guesses the format of data.
func Detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSON
	}
	return YAML
}

// readWKBHex decodes one hex WKB geometry per line. WKB carries no CRS, so
// every geometry gets the codec's default CRS, if any.
func readWKBHex(c *codec.GeometryCodec, data []byte, target codec.Target) (*Document, error) {
	var opts []geo.Option
	if ref := c.DefaultCRS(); ref.Valid() {
		opts = append(opts, geo.WithCRS(ref))
	}

	var gs []geo.Geometry
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		g, err := geomconv.DecodeWKBHex(line, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		if target != codec.TargetGeometry && codec.Target(g.Kind()) != target {
			return nil, geoerrors.NewParseError(fmt.Sprintf("line %d", i+1), fmt.Sprintf("%q", string(target)), string(g.Kind()))
		}
		gs = append(gs, g)
	}
	return &Document{Geometries: gs, Single: len(gs) == 1}, nil
}

// Writer renders documents.
type Writer struct {
	Format Format
	// Minify emits compact JSON instead of indented output.
	Minify bool

	m *minify.M
}

// NewWriter returns a Writer for format f.
func NewWriter(f Format, compact bool) *Writer {
	m := minify.New()
	m.AddFunc(mediaJSON, mjson.Minify)
	return &Writer{Format: f, Minify: compact, m: m}
}

// Write encodes doc.
func (w *Writer) Write(c *codec.GeometryCodec, doc *Document) ([]byte, error) {
	if w.Format == WKBHex {
		return writeWKBHex(doc)
	}

	values, err := c.EncodeAll(doc.Geometries)
	if err != nil {
		return nil, err
	}
	var v interface{} = values
	if doc.Single && len(values) == 1 {
		v = values[0]
	}

	switch w.Format {
	case YAML:
		b, err := yaml.Marshal(v)
		return b, errors.Wrap(err, "marshaling yaml")
	case JSON, Auto, "":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling json")
		}
		if !w.Minify {
			return b, nil
		}
		out, err := w.m.Bytes(mediaJSON, b)
		return out, errors.Wrap(err, "minifying json")
	default:
		return nil, errors.Errorf("unknown output format %q", w.Format)
	}
}

func writeWKBHex(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	for i, g := range doc.Geometries {
		s, err := geomconv.EncodeWKBHex(g)
		if err != nil {
			return nil, errors.Wrapf(err, "geometry %d", i)
		}
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
