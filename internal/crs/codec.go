package crs

import (
	geoerrors "github.com/woozymasta/geojson/internal/errors"
)

// Decode builds a CRS from a raw value tree such as
// {"type": "link", "properties": {"href": "...", "type": "proj4"}}.
func Decode(raw interface{}) (CRS, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, geoerrors.NewParseError("crs", "an object", raw)
	}

	discriminant, ok := obj["type"].(string)
	if !ok {
		return nil, geoerrors.NewParseError("crs.type", `one of "name", "link"`, obj["type"])
	}

	props, ok := obj["properties"].(map[string]interface{})
	if !ok {
		return nil, geoerrors.NewParseError("crs.properties", "an object", obj["properties"])
	}

	switch Type(discriminant) {
	case TypeName:
		name, err := optionalString(props, "name")
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, geoerrors.Missing("NamedCRS", "name")
		}
		n, err := NewNamed(*name)
		if err != nil {
			return nil, err
		}
		return n, nil
	case TypeLink:
		href, err := optionalString(props, "href")
		if err != nil {
			return nil, err
		}
		hint, err := optionalString(props, "type")
		if err != nil {
			return nil, err
		}
		typ := ""
		if hint != nil {
			typ = *hint
		}
		l, err := newLinked(href, typ)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, geoerrors.NewParseError("crs.type", `one of "name", "link"`, discriminant)
	}
}

// Encode returns the raw value tree for c.
func Encode(c CRS) map[string]interface{} {
	return map[string]interface{}{
		"type":       string(c.Type()),
		"properties": c.Properties(),
	}
}

// optionalString returns nil when key is absent or null.
func optionalString(props map[string]interface{}, key string) (*string, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, geoerrors.NewParseError("crs.properties."+key, "a string", v)
	}
	return &s, nil
}
