// Package text provides the style options consumed by the shaping
// engine: font selection, size, spacing, OpenType features, language,
// edges, and decorations.
package text

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

// Styles is the resolved set of text style options for a run.
type Styles struct {
	// FontFamilies is the primary family chain, in priority order.
	FontFamilies []string

	// Fallback enables the built-in fallback families and
	// coverage-driven fallback selection.
	Fallback bool

	// Style is the font style (normal, italic, oblique).
	Style font.Style

	// Weight is the font weight (100-900).
	Weight font.Weight

	// Stretch is the font stretch/width.
	Stretch font.Stretch

	// Delta is added to the weight, saturating at the valid range.
	Delta int

	// Emph toggles italic and normal style.
	Emph bool

	// Size is the font size.
	Size layout.Abs

	// Tracking is extra space added between clusters.
	Tracking layout.Abs

	// Spacing replaces the advance of space glyphs. Nil keeps the
	// font's space width (equivalent to 100%).
	Spacing *layout.Rel

	// Lang is the text language (ISO 639-1).
	Lang string

	// Region is the text region (ISO 3166-1 alpha-2).
	Region string

	// TopEdge is the metric the top of the text's bounding box sits on.
	TopEdge TopEdge

	// BottomEdge is the metric the bottom of the bounding box sits on.
	BottomEdge BottomEdge

	// Baseline shifts the glyphs relative to the baseline.
	Baseline layout.Abs

	// Fill is the glyph fill paint.
	Fill layout.Paint

	// Kerning toggles the kern feature (on by default in the shaper).
	Kerning bool

	// Smallcaps enables the smcp feature.
	Smallcaps bool

	// Alternates enables the salt feature.
	Alternates bool

	// StylisticSet enables feature ssNN for values 1 through 20.
	// Zero means none.
	StylisticSet int

	// Ligatures toggles liga and clig.
	Ligatures bool

	// DiscretionaryLigatures enables dlig.
	DiscretionaryLigatures bool

	// HistoricalLigatures enables hilg.
	HistoricalLigatures bool

	// NumberType selects lining or old-style figures.
	NumberType NumberType

	// NumberWidth selects proportional or tabular figures.
	NumberWidth NumberWidth

	// SlashedZero enables the zero feature.
	SlashedZero bool

	// Fractions enables the frac feature.
	Fractions bool

	// Features are extra user-specified feature settings.
	Features []Feature

	// Decos are the line decorations applied when building frames.
	Decos []Decoration
}

// New returns styles with the default values.
func New(families ...string) *Styles {
	return &Styles{
		FontFamilies: families,
		Fallback:     true,
		Weight:       font.WeightNormal,
		Stretch:      font.StretchNormal,
		Size:         11 * layout.Pt,
		Lang:         "en",
		Kerning:      true,
		Ligatures:    true,
		Fill:         layout.Black,
	}
}

// Variant resolves the font variant from style, weight, stretch, the
// weight delta, and emphasis.
func (s *Styles) Variant() font.Variant {
	variant := font.Variant{
		Style:   s.Style,
		Weight:  s.Weight.Thicken(s.Delta),
		Stretch: s.Stretch,
	}

	if s.Emph {
		switch variant.Style {
		case font.StyleNormal:
			variant.Style = font.StyleItalic
		default:
			variant.Style = font.StyleNormal
		}
	}

	return variant
}

// Language returns the BCP-47 tag passed to the shaper, combining the
// language and region. The tag is validated and canonicalized; an
// unparseable combination falls back to the raw string, which the
// shaper treats as an unknown language.
func (s *Styles) Language() string {
	bcp := s.Lang
	if bcp == "" {
		bcp = "en"
	}
	if s.Region != "" {
		bcp = fmt.Sprintf("%s-%s", bcp, s.Region)
	}
	if tag, err := language.Parse(bcp); err == nil {
		return tag.String()
	}
	return bcp
}

// Feature is a single OpenType feature setting.
type Feature struct {
	// Tag is the four-character feature tag.
	Tag string
	// Value is the feature value; 0 disables, 1 enables, larger values
	// select alternates.
	Value uint32
}

// FeatureList collects the OpenType features to pass to the shaper.
// Features that are on by default in the shaper are only emitted when
// disabled, and vice versa.
func (s *Styles) FeatureList() []Feature {
	var tags []Feature
	feat := func(tag string, value uint32) {
		tags = append(tags, Feature{Tag: tag, Value: value})
	}

	if !s.Kerning {
		feat("kern", 0)
	}

	if s.Smallcaps {
		feat("smcp", 1)
	}

	if s.Alternates {
		feat("salt", 1)
	}

	if set := s.StylisticSet; set >= 1 && set <= 20 {
		feat(fmt.Sprintf("ss%02d", set), 1)
	}

	if !s.Ligatures {
		feat("liga", 0)
		feat("clig", 0)
	}

	if s.DiscretionaryLigatures {
		feat("dlig", 1)
	}

	if s.HistoricalLigatures {
		feat("hilg", 1)
	}

	switch s.NumberType {
	case NumberTypeLining:
		feat("lnum", 1)
	case NumberTypeOldStyle:
		feat("onum", 1)
	}

	switch s.NumberWidth {
	case NumberWidthProportional:
		feat("pnum", 1)
	case NumberWidthTabular:
		feat("tnum", 1)
	}

	if s.SlashedZero {
		feat("zero", 1)
	}

	if s.Fractions {
		feat("frac", 1)
	}

	tags = append(tags, s.Features...)
	return tags
}

// NumberType controls number figure style.
type NumberType int

const (
	// NumberTypeAuto leaves the choice to the font.
	NumberTypeAuto NumberType = iota
	// NumberTypeLining uses lining (uppercase) figures.
	NumberTypeLining
	// NumberTypeOldStyle uses old-style (lowercase) figures.
	NumberTypeOldStyle
)

// NumberWidth controls number figure width.
type NumberWidth int

const (
	// NumberWidthAuto leaves the choice to the font.
	NumberWidthAuto NumberWidth = iota
	// NumberWidthProportional uses proportional-width figures.
	NumberWidthProportional
	// NumberWidthTabular uses tabular (fixed-width) figures.
	NumberWidthTabular
)

// TopEdge is the metric the top of a text run's bounding box sits on.
type TopEdge int

const (
	TopEdgeAscender TopEdge = iota
	TopEdgeCapHeight
	TopEdgeXHeight
	TopEdgeBaseline
	TopEdgeBounds
)

// Resolve resolves the edge against font metrics, in ems.
func (e TopEdge) Resolve(m font.Metrics) layout.Em {
	switch e {
	case TopEdgeCapHeight:
		return layout.Em(m.CapHeight)
	case TopEdgeXHeight:
		return layout.Em(m.XHeight)
	case TopEdgeBaseline:
		return 0
	default:
		// Bounds falls back to the ascender; per-glyph bounds are not
		// tracked during measurement.
		return layout.Em(m.Ascender)
	}
}

// BottomEdge is the metric the bottom of a text run's bounding box
// sits on.
type BottomEdge int

const (
	BottomEdgeDescender BottomEdge = iota
	BottomEdgeBaseline
	BottomEdgeBounds
)

// Resolve resolves the edge against font metrics, in ems. The result
// is negative for edges below the baseline.
func (e BottomEdge) Resolve(m font.Metrics) layout.Em {
	switch e {
	case BottomEdgeBaseline:
		return 0
	default:
		// Bounds falls back to the descender.
		return layout.Em(m.Descender)
	}
}
