package geo

import geoerrors "github.com/woozymasta/geojson/internal/errors"

// LineStringBuilder accumulates positions for a LineString. Validation runs only
// in Build and BuildRing. A builder is not safe for concurrent use.
type LineStringBuilder struct {
	positions []Position
	opts      []Option
}

// NewLineStringBuilder returns an empty builder. opts are applied to the built value.
func NewLineStringBuilder(opts ...Option) *LineStringBuilder {
	return &LineStringBuilder{opts: opts}
}

// Add appends positions and returns the builder.
func (b *LineStringBuilder) Add(positions ...Position) *LineStringBuilder {
	b.positions = append(b.positions, positions...)
	return b
}

// Len returns the number of positions added so far.
func (b *LineStringBuilder) Len() int { return len(b.positions) }

// Build validates the accumulated positions and returns an immutable LineString.
// The builder may be reused afterwards; the result does not share its storage.
func (b *LineStringBuilder) Build() (*LineString, error) {
	positions := b.positions
	if positions == nil {
		positions = []Position{}
	}
	return NewLineString(positions, b.opts...)
}

// BuildRing is Build with the additional linear ring check.
func (b *LineStringBuilder) BuildRing() (*LineString, error) {
	if err := validateRing("LineString", "positions", geoerrors.NoIndex, b.positions); err != nil {
		return nil, err
	}
	return b.Build()
}

// Reset discards the accumulated positions.
func (b *LineStringBuilder) Reset() {
	b.positions = nil
}
