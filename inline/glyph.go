package inline

import (
	"unicode"

	"github.com/go-text/typesetting/language"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

// ShapedGlyph represents a single glyph resulting from shaping.
type ShapedGlyph struct {
	// Font is the font the glyph is contained in.
	Font *font.Font
	// GlyphID is the glyph's index in the font. Zero is the font's
	// notdef (tofu) glyph.
	GlyphID uint16
	// XAdvance is the advance width of the glyph.
	XAdvance layout.Em
	// XOffset is the horizontal offset of the glyph.
	XOffset layout.Em
	// YOffset is the vertical offset of the glyph.
	YOffset layout.Em
	// Range is the byte range of this glyph's cluster in the full
	// paragraph. A cluster is a sequence of one or multiple glyphs that
	// cannot be separated and must always be treated as a union.
	Range layout.Range
	// SafeToBreak reports whether splitting the shaping result before
	// this glyph's cluster would yield the same results as shaping the
	// parts on both sides separately.
	SafeToBreak bool
	// Char is the first character in this glyph's cluster.
	Char rune
	// Span is the source location the glyph stems from.
	Span layout.Span
	// SpanOffset is the byte offset within the span.
	SpanOffset uint16
}

// IsSpace returns true if the glyph is a space, a non-breaking space,
// or an ideographic space.
func (g *ShapedGlyph) IsSpace() bool {
	return isSpace(g.Char)
}

// IsCJK returns true if the glyph's cluster starts with a Han,
// Hiragana, or Katakana character, or the prolonged sound mark.
func (g *ShapedGlyph) IsCJK() bool {
	switch scriptOf(g.Char) {
	case language.Hiragana, language.Katakana, language.Han:
		return true
	}
	// U+30FC: Katakana-Hiragana Prolonged Sound Mark.
	return g.Char == 'ー'
}

// IsCJKLeftAlignedPunctuation returns true for full-width closing
// punctuation. See https://www.w3.org/TR/clreq/#punctuation_width_adjustment
//
// The curly closing quotes share codepoints with their Latin
// counterparts; only the full-width CJK forms qualify, detected by an
// advance of exactly one em. A Latin font that happens to give a quote
// one em of advance will be treated as full-width too.
func (g *ShapedGlyph) IsCJKLeftAlignedPunctuation() bool {
	if (g.Char == '”' || g.Char == '’') && g.XAdvance == layout.EmOne() {
		return true
	}

	switch g.Char {
	case '，', '。', '、', '：', '；', '》', '）', '』', '」':
		return true
	}
	return false
}

// IsCJKRightAlignedPunctuation returns true for full-width opening
// punctuation, under the same one-em rule for the curly opening quotes.
func (g *ShapedGlyph) IsCJKRightAlignedPunctuation() bool {
	if (g.Char == '“' || g.Char == '‘') && g.XAdvance == layout.EmOne() {
		return true
	}

	switch g.Char {
	case '《', '（', '『', '「':
		return true
	}
	return false
}

// IsJustifiable returns true if the glyph may absorb extra
// justification space.
func (g *ShapedGlyph) IsJustifiable() bool {
	return g.IsSpace() ||
		g.IsCJK() ||
		g.IsCJKLeftAlignedPunctuation() ||
		g.IsCJKRightAlignedPunctuation()
}

// Adjustability holds how much a glyph can stretch and shrink on each
// side during justification.
type Adjustability struct {
	// Stretchability is the left and right stretch capacity.
	Stretchability [2]layout.Em
	// Shrinkability is the left and right shrink capacity.
	Shrinkability [2]layout.Em
}

// Adjustability returns the glyph's stretch and shrink capacity.
func (g *ShapedGlyph) Adjustability() Adjustability {
	width := g.XAdvance
	switch {
	case g.IsSpace():
		// The stretch and shrink fractions for spaces are from the
		// Knuth-Plass paper.
		return Adjustability{
			Stretchability: [2]layout.Em{0, width / 2},
			Shrinkability:  [2]layout.Em{0, width / 3},
		}
	case g.IsCJKLeftAlignedPunctuation():
		return Adjustability{
			Shrinkability: [2]layout.Em{0, width / 2},
		}
	case g.IsCJKRightAlignedPunctuation():
		return Adjustability{
			Shrinkability: [2]layout.Em{width / 2, 0},
		}
	default:
		return Adjustability{}
	}
}

// Stretchability returns the glyph's left and right stretch capacity.
func (g *ShapedGlyph) Stretchability() [2]layout.Em {
	return g.Adjustability().Stretchability
}

// Shrinkability returns the glyph's left and right shrink capacity.
func (g *ShapedGlyph) Shrinkability() [2]layout.Em {
	return g.Adjustability().Shrinkability
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\u00A0' || c == '\u3000'
}

// scriptOf returns the Unicode script of a character, for the scripts
// the classification predicates care about.
func scriptOf(c rune) language.Script {
	switch {
	case unicode.In(c, unicode.Han):
		return language.Han
	case unicode.In(c, unicode.Hiragana):
		return language.Hiragana
	case unicode.In(c, unicode.Katakana):
		return language.Katakana
	case unicode.In(c, unicode.Latin):
		return language.Latin
	case unicode.In(c, unicode.Greek):
		return language.Greek
	case unicode.In(c, unicode.Cyrillic):
		return language.Cyrillic
	case unicode.In(c, unicode.Arabic):
		return language.Arabic
	case unicode.In(c, unicode.Hebrew):
		return language.Hebrew
	}
	return language.Common
}
