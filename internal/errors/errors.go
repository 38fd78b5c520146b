// Package errors defines the failure categories reported while building and decoding geometries.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Reason classifies a construction failure.
type Reason string

const (
	// ReasonMissing is reported for a required field that is absent or null.
	ReasonMissing Reason = "missing required field"
	// ReasonOutOfRange is reported for a field whose value is outside the allowed range.
	ReasonOutOfRange Reason = "value out of allowed range"
)

// NoIndex marks errors that do not refer to an element of a sequence.
const NoIndex = -1

// ParseError reports a malformed raw value: wrong shape, wrong arity,
// a non-numeric coordinate token or an unrecognized discriminant.
type ParseError struct {
	Path     string      // location inside the raw value, e.g. "coordinates[1][0]"
	Expected string      // human description of the expected shape
	Value    interface{} // offending raw value
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("geojson: could not parse")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": expected ")
	b.WriteString(e.Expected)
	b.WriteString(", what we received however was: ")
	b.WriteString(describe(e.Value))
	return b.String()
}

// ConstructionError reports a violated rule when building a value.
type ConstructionError struct {
	Type   string // type being built, e.g. "Polygon"
	Field  string // field or argument name
	Index  int    // element index for sequence fields, NoIndex otherwise
	Reason Reason
	Detail string
}

func (e *ConstructionError) Error() string {
	field := e.Field
	if e.Index != NoIndex {
		field = fmt.Sprintf("%s[%d]", e.Field, e.Index)
	}
	msg := fmt.Sprintf("geojson: %s.%s: %s", e.Type, field, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// UnsupportedTypeError is returned when a codec is asked for a target it cannot produce.
type UnsupportedTypeError struct {
	Target string
}

func (e *UnsupportedTypeError) Error() string {
	return "geojson: unsupported target type " + e.Target
}

// NewParseError returns a ParseError for value found at path.
func NewParseError(path, expected string, value interface{}) *ParseError {
	return &ParseError{Path: path, Expected: expected, Value: value}
}

// Missing returns a ConstructionError for an absent required field.
func Missing(typ, field string) *ConstructionError {
	return &ConstructionError{Type: typ, Field: field, Index: NoIndex, Reason: ReasonMissing}
}

// OutOfRange returns a ConstructionError for a field holding a disallowed value.
func OutOfRange(typ, field, detail string) *ConstructionError {
	return &ConstructionError{Type: typ, Field: field, Index: NoIndex, Reason: ReasonOutOfRange, Detail: detail}
}

// OutOfRangeAt is OutOfRange for the element at index i of a sequence field.
func OutOfRangeAt(typ, field string, i int, detail string) *ConstructionError {
	return &ConstructionError{Type: typ, Field: field, Index: i, Reason: ReasonOutOfRange, Detail: detail}
}

// Unsupported returns an UnsupportedTypeError for target.
func Unsupported(target string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Target: target}
}

// IsParse reports whether err, or an error it wraps, is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsConstruction reports whether err, or an error it wraps, is a ConstructionError.
func IsConstruction(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

// IsMissing reports whether err is a ConstructionError for a missing field.
func IsMissing(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce) && ce.Reason == ReasonMissing
}

// IsOutOfRange reports whether err is a ConstructionError for an out-of-range field.
func IsOutOfRange(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce) && ce.Reason == ReasonOutOfRange
}

// IsUnsupported reports whether err, or an error it wraps, is an UnsupportedTypeError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedTypeError
	return errors.As(err, &ue)
}

func describe(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
