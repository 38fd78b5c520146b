package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	geoerrors "github.com/woozymasta/geojson/internal/errors"
	"github.com/woozymasta/geojson/internal/geo"
)

// ParseJSON tokenizes a JSON document into a raw value tree. Numbers are kept
// as json.Number so coordinate tokens are not rounded before coercion.
func ParseJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, geoerrors.NewParseError("", "a JSON document", err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, geoerrors.NewParseError("", "a single JSON document", "trailing data")
	}
	return raw, nil
}

// ParseYAML tokenizes a YAML document into a raw value tree.
func ParseYAML(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, geoerrors.NewParseError("", "a YAML document", err.Error())
	}
	return raw, nil
}

// DecodeJSON decodes a JSON geometry object.
func (c *GeometryCodec) DecodeJSON(data []byte) (geo.Geometry, error) {
	raw, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return c.Decode(raw, TargetGeometry)
}

// EncodeJSON encodes g as JSON.
func (c *GeometryCodec) EncodeJSON(g geo.Geometry) ([]byte, error) {
	v, err := c.Encode(g)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	return b, errors.Wrap(err, "marshaling geometry")
}

// DecodeYAML decodes a YAML geometry mapping.
func (c *GeometryCodec) DecodeYAML(data []byte) (geo.Geometry, error) {
	raw, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return c.Decode(raw, TargetGeometry)
}

// EncodeYAML encodes g as YAML.
func (c *GeometryCodec) EncodeYAML(g geo.Geometry) ([]byte, error) {
	v, err := c.Encode(g)
	if err != nil {
		return nil, err
	}
	b, err := yaml.Marshal(v)
	return b, errors.Wrap(err, "marshaling geometry")
}
