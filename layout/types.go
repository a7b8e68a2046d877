// Package layout provides the geometric primitives and the frame model
// shared by the shaping engine: absolute lengths, font-relative em
// values, byte ranges, and positioned frame items.
package layout

import "math"

// Abs represents an absolute length in typographic points (1/72 inch).
type Abs float64

// Common length constants.
const (
	// Pt is one typographic point.
	Pt Abs = 1.0
	// Mm is one millimeter.
	Mm Abs = 2.8346456692913
	// Cm is one centimeter.
	Cm Abs = 28.346456692913
	// In is one inch.
	In Abs = 72.0
)

// IsZero returns true if the length is zero.
func (a Abs) IsZero() bool {
	return a == 0
}

// Abs returns the absolute value.
func (a Abs) Abs() Abs {
	if a < 0 {
		return -a
	}
	return a
}

// Min returns the smaller of two lengths.
func (a Abs) Min(b Abs) Abs {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two lengths.
func (a Abs) Max(b Abs) Abs {
	if a > b {
		return a
	}
	return b
}

// Points returns the length in points.
func (a Abs) Points() float64 {
	return float64(a)
}

// Em represents a length relative to the font size. An em value is
// dimensionless; it resolves to an absolute length by multiplying with
// the font size.
type Em float64

// EmOne returns 1em.
func EmOne() Em {
	return 1.0
}

// At converts the em value to an absolute length at the given font size.
func (e Em) At(size Abs) Abs {
	return Abs(float64(e) * float64(size))
}

// EmFromLength creates an em value from an absolute length at a given
// font size. A zero size yields zero.
func EmFromLength(abs Abs, size Abs) Em {
	if size == 0 {
		return 0
	}
	return Em(float64(abs) / float64(size))
}

// EmFromUnits creates an em value from font design units.
func EmFromUnits(units float64, unitsPerEm float64) Em {
	if unitsPerEm == 0 {
		return 0
	}
	return Em(units / unitsPerEm)
}

// Ratio represents a ratio of a whole, where 1.0 is 100%.
type Ratio float64

// Of resolves the ratio against the given length. Infinite lengths
// resolve to zero to avoid NaNs.
func (r Ratio) Of(length Abs) Abs {
	if math.IsInf(float64(length), 0) {
		return 0
	}
	return Abs(float64(r) * float64(length))
}

// Rel represents a length with a relative and an absolute component,
// such as "50% + 2pt".
type Rel struct {
	Rel Ratio
	Abs Abs
}

// RelFromRatio creates a purely relative value.
func RelFromRatio(r Ratio) Rel {
	return Rel{Rel: r}
}

// RelFromAbs creates a purely absolute value.
func RelFromAbs(a Abs) Rel {
	return Rel{Abs: a}
}

// RelativeTo resolves the value against the given whole.
func (r Rel) RelativeTo(whole Abs) Abs {
	return r.Rel.Of(whole) + r.Abs
}

// IsZero returns true if both components are zero.
func (r Rel) IsZero() bool {
	return r.Rel == 0 && r.Abs == 0
}

// Range represents a half-open byte range in text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range contains no bytes.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains returns true if the range contains the given index.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Point represents a 2D point in layout coordinates.
type Point struct {
	X Abs
	Y Abs
}

// Add adds two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size represents 2D dimensions (width and height).
type Size struct {
	Width  Abs
	Height Abs
}

// IsZero returns true if both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}
