// Package font provides font loading, discovery, and management for the
// shaping engine.
//
// This package handles:
//   - Loading fonts from TTF/OTF/TTC files and filesystems
//   - Discovering fonts from system directories
//   - Managing a collection of fonts (FontBook)
//   - Font matching by family, weight, style, and stretch
//   - Glyph-level queries (coverage, advances, outlines) and the
//     vertical metrics the frame builder resolves edges against
package font

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// ID identifies a font within a FontBook.
type ID int

// Font represents a loaded font with metadata.
type Font struct {
	// face is the underlying font face for text shaping.
	face *font.Face

	// Info contains font metadata (family, style, weight, etc.).
	Info FontInfo

	// Path is the filesystem path where the font was loaded from.
	// Empty for embedded fonts.
	Path string

	// Index is the face index within a font collection (TTC).
	// Zero for single-face fonts (TTF/OTF).
	Index int

	metrics Metrics
}

// Family returns the font family name.
func (f *Font) Family() string {
	return f.Info.Family
}

// Face returns the underlying font face for text shaping.
func (f *Font) Face() *font.Face {
	return f.face
}

// UnitsPerEm returns the number of font design units per em.
func (f *Font) UnitsPerEm() float64 {
	upem := float64(f.face.Font.Upem())
	if upem == 0 {
		return 1000
	}
	return upem
}

// ToEm converts a value in font design units to ems.
func (f *Font) ToEm(units float32) float64 {
	return float64(units) / f.UnitsPerEm()
}

// GlyphIndex returns the glyph id for a character, if the font covers it.
func (f *Font) GlyphIndex(c rune) (uint16, bool) {
	gid, ok := f.face.NominalGlyph(c)
	if !ok {
		return 0, false
	}
	return uint16(gid), true
}

// Advance returns the horizontal advance of a glyph in ems. Glyph id 0
// yields the advance of the font's notdef glyph.
func (f *Font) Advance(glyph uint16) float64 {
	return f.ToEm(f.face.HorizontalAdvance(font.GID(glyph)))
}

// Covers returns true if the font has a glyph for every character of
// the text, ignoring newlines and tabs.
func (f *Font) Covers(text string) bool {
	for _, c := range text {
		if c == '\n' || c == '\t' {
			continue
		}
		if _, ok := f.face.NominalGlyph(c); !ok {
			return false
		}
	}
	return true
}

// coverage counts how many characters of the text the font has a glyph
// for. Used for fallback scoring.
func (f *Font) coverage(text string) int {
	count := 0
	for _, c := range text {
		if c == '\n' || c == '\t' {
			continue
		}
		if _, ok := f.face.NominalGlyph(c); ok {
			count++
		}
	}
	return count
}

// Outline returns the outline segments for a glyph in font units, if
// the glyph has an outline. Decoration evasion intersects these.
func (f *Font) Outline(glyph uint16) ([]opentype.Segment, bool) {
	switch data := f.face.GlyphData(font.GID(glyph)).(type) {
	case font.GlyphOutline:
		return data.Segments, true
	case font.GlyphSVG:
		return data.Outline.Segments, len(data.Outline.Segments) > 0
	case font.GlyphBitmap:
		if data.Outline != nil {
			return data.Outline.Segments, len(data.Outline.Segments) > 0
		}
	}
	return nil, false
}

// Metrics returns the font's vertical metrics.
func (f *Font) Metrics() Metrics {
	return f.metrics
}

// LineMetrics describes position and thickness of a decoration line,
// in ems relative to the baseline.
type LineMetrics struct {
	Position  float64
	Thickness float64
}

// Metrics contains the vertical metrics of a font, in ems. Descender
// is negative for fonts that descend below the baseline.
type Metrics struct {
	UnitsPerEm    float64
	Ascender      float64
	CapHeight     float64
	XHeight       float64
	Descender     float64
	Underline     LineMetrics
	Strikethrough LineMetrics
	Overline      LineMetrics
}

// extractMetrics reads the vertical metrics from a face, falling back
// to conventional ratios where the font does not provide a value. The
// decoration line metrics are always derived from the descender,
// x-height, and ascender; the font's own underline and strikeout
// values are not read.
func extractMetrics(face *font.Face) Metrics {
	upem := float64(face.Font.Upem())
	if upem == 0 {
		upem = 1000
	}

	m := Metrics{
		UnitsPerEm: upem,
		Ascender:   0.8,
		CapHeight:  0.7,
		XHeight:    0.5,
		Descender:  -0.2,
	}

	if ext, ok := face.FontHExtents(); ok {
		if ext.Ascender != 0 {
			m.Ascender = float64(ext.Ascender) / upem
		}
		if ext.Descender != 0 {
			m.Descender = float64(ext.Descender) / upem
		}
		if m.Descender > 0 {
			m.Descender = -m.Descender
		}
	}

	if gid, ok := face.NominalGlyph('H'); ok {
		if ext, ok := face.GlyphExtents(gid); ok && ext.YBearing > 0 {
			m.CapHeight = float64(ext.YBearing) / upem
		}
	}
	if gid, ok := face.NominalGlyph('x'); ok {
		if ext, ok := face.GlyphExtents(gid); ok && ext.YBearing > 0 {
			m.XHeight = float64(ext.YBearing) / upem
		}
	}

	m.Underline = LineMetrics{Position: m.Descender / 3, Thickness: 0.06}
	m.Strikethrough = LineMetrics{Position: m.XHeight / 2, Thickness: 0.06}
	m.Overline = LineMetrics{Position: m.Ascender, Thickness: 0.06}
	return m
}

// FontInfo contains metadata about a font.
type FontInfo struct {
	// Family is the font family name (e.g., "Arial", "Times New Roman").
	Family string

	// FullName is the full font name. The loader fills it with the
	// family name; the style is not included.
	FullName string

	// Style is the font style (normal, italic, oblique).
	Style Style

	// Weight is the font weight (100-900).
	Weight Weight

	// Stretch is the font stretch/width.
	Stretch Stretch
}

// Style represents font style.
type Style uint8

const (
	StyleNormal  Style = iota // Upright
	StyleItalic               // Italic
	StyleOblique              // Oblique (slanted)
)

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "unknown"
	}
}

// Weight represents font weight on a scale of 100-900.
type Weight int

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Thicken adds a delta to the weight, saturating at the valid range.
func (w Weight) Thicken(delta int) Weight {
	v := int(w) + delta
	if v < 100 {
		v = 100
	}
	if v > 900 {
		v = 900
	}
	return Weight(v)
}

// Stretch represents font width/stretch, where 1.0 is normal.
type Stretch float32

const (
	StretchUltraCondensed Stretch = 0.5
	StretchExtraCondensed Stretch = 0.625
	StretchCondensed      Stretch = 0.75
	StretchSemiCondensed  Stretch = 0.875
	StretchNormal         Stretch = 1.0
	StretchSemiExpanded   Stretch = 1.125
	StretchExpanded       Stretch = 1.25
	StretchExtraExpanded  Stretch = 1.5
	StretchUltraExpanded  Stretch = 2.0
)

// Variant combines style, weight, and stretch for font matching.
type Variant struct {
	Style   Style
	Weight  Weight
	Stretch Stretch
}

// NormalVariant returns the default variant (normal style, weight, stretch).
func NormalVariant() Variant {
	return Variant{
		Style:   StyleNormal,
		Weight:  WeightNormal,
		Stretch: StretchNormal,
	}
}
