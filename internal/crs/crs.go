// Package crs models the coordinate reference system annotation of GeoJSON objects.
package crs

import (
	"net/url"
	"reflect"

	geoerrors "github.com/woozymasta/geojson/internal/errors"
)

// Type is the CRS discriminant.
type Type string

const (
	TypeName Type = "name"
	TypeLink Type = "link"
)

// CRS is implemented by Named and Linked. Values are immutable after construction.
type CRS interface {
	Type() Type
	// Properties returns a copy of the CRS property mapping.
	Properties() map[string]interface{}
}

// Named identifies a CRS by name, e.g. "urn:ogc:def:crs:OGC:1.3:CRS84".
type Named struct {
	name string
}

// NewNamed returns a named CRS. The name may not be empty.
func NewNamed(name string) (*Named, error) {
	if name == "" {
		return nil, geoerrors.OutOfRange("NamedCRS", "name", "may not be empty")
	}
	return &Named{name: name}, nil
}

func (n *Named) Type() Type { return TypeName }

// Name returns the CRS name.
func (n *Named) Name() string { return n.name }

func (n *Named) Properties() map[string]interface{} {
	return map[string]interface{}{"name": n.name}
}

// Linked points at a CRS definition by dereferenceable URI.
type Linked struct {
	href string
	hint string
}

// NewLinked returns a linked CRS. The href may not be empty; typ is an
// optional format hint such as "proj4" and is kept only when non-empty.
func NewLinked(href, typ string) (*Linked, error) {
	return newLinked(&href, typ)
}

// NewLinkedURL is NewLinked for a parsed URI. A nil URI is a missing href.
func NewLinkedURL(href *url.URL, typ string) (*Linked, error) {
	if href == nil {
		return newLinked(nil, typ)
	}
	s := href.String()
	return newLinked(&s, typ)
}

func newLinked(href *string, typ string) (*Linked, error) {
	if href == nil {
		return nil, geoerrors.Missing("LinkedCRS", "href")
	}
	if *href == "" {
		return nil, geoerrors.OutOfRange("LinkedCRS", "href", "may not be empty")
	}
	return &Linked{href: *href, hint: typ}, nil
}

func (l *Linked) Type() Type { return TypeLink }

// Href returns the link target.
func (l *Linked) Href() string { return l.href }

// Hint returns the optional link type, or "" when absent.
func (l *Linked) Hint() string { return l.hint }

func (l *Linked) Properties() map[string]interface{} {
	props := map[string]interface{}{"href": l.href}
	if l.hint != "" {
		props["type"] = l.hint
	}
	return props
}

// Equal reports whether a and b describe the same CRS.
func Equal(a, b CRS) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && reflect.DeepEqual(a.Properties(), b.Properties())
}
