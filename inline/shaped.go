package inline

import (
	"fmt"
	"slices"
	"sort"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
	"github.com/boergens/typeset/text"
)

// ShapedText is the result of shaping a run of text.
//
// It can be measured, used to reshape substrings more quickly, and
// converted into a frame. A ShapedText either owns its glyphs or, after
// a successful reshape, shares the backing array of the run it was
// sliced from; in that case it must not outlive its parent.
type ShapedText struct {
	// Base is the start of the text in the full paragraph.
	Base int
	// Text is the text that was shaped.
	Text string
	// Dir is the text direction.
	Dir Dir
	// Styles are the text's style properties.
	Styles *text.Styles
	// Variant is the resolved font variant.
	Variant font.Variant
	// Size is the font size.
	Size layout.Abs
	// Width is the width of the text's bounding box.
	Width layout.Abs

	glyphs []ShapedGlyph
	// shared marks the glyph slice as aliasing a parent's buffer.
	shared bool
}

// side identifies the direction a safe-to-break search walks toward.
type side int

const (
	sideLeft side = iota
	sideRight
)

// Glyphs returns the shaped glyphs in visual order.
func (s *ShapedText) Glyphs() []ShapedGlyph {
	return s.glyphs
}

// Empty returns an empty run at the same position with the same
// metadata.
func (s *ShapedText) Empty() *ShapedText {
	return &ShapedText{
		Base:    s.Base,
		Text:    "",
		Dir:     s.Dir,
		Styles:  s.Styles,
		Variant: s.Variant,
		Size:    s.Size,
	}
}

// Justifiables returns how many glyphs can absorb additional space
// when a line is underfull.
func (s *ShapedText) Justifiables() int {
	count := 0
	for i := range s.glyphs {
		if s.glyphs[i].IsJustifiable() {
			count++
		}
	}
	return count
}

// CJKJustifiableAtLast returns whether the last glyph is a CJK
// character which should not be justified at line end.
func (s *ShapedText) CJKJustifiableAtLast() bool {
	if len(s.glyphs) == 0 {
		return false
	}
	last := &s.glyphs[len(s.glyphs)-1]
	return last.IsCJK() || last.IsCJKLeftAlignedPunctuation()
}

// Stretchability returns the total stretch capacity of the text.
func (s *ShapedText) Stretchability() layout.Abs {
	var total layout.Em
	for i := range s.glyphs {
		stretch := s.glyphs[i].Stretchability()
		total += stretch[0] + stretch[1]
	}
	return total.At(s.Size)
}

// Shrinkability returns the total shrink capacity of the text.
func (s *ShapedText) Shrinkability() layout.Abs {
	var total layout.Em
	for i := range s.glyphs {
		shrink := s.glyphs[i].Shrinkability()
		total += shrink[0] + shrink[1]
	}
	return total.At(s.Size)
}

// Reshape returns the shaping result for a sub-range of the text,
// reusing glyphs from this shaping process if both cut points are safe
// to break, and re-shaping the substring otherwise. The range is
// relative to the whole paragraph.
func (s *ShapedText) Reshape(world World, spans SpanMapper, textRange layout.Range) *ShapedText {
	txt := s.Text[textRange.Start-s.Base : textRange.End-s.Base]
	if glyphs, ok := s.sliceSafeToBreak(textRange); ok {
		var width layout.Em
		for i := range glyphs {
			width += glyphs[i].XAdvance
		}
		return &ShapedText{
			Base:    textRange.Start,
			Text:    txt,
			Dir:     s.Dir,
			Styles:  s.Styles,
			Variant: s.Variant,
			Size:    s.Size,
			Width:   width.At(s.Size),
			glyphs:  glyphs,
			shared:  true,
		}
	}
	return shapeHorizontal(world, textRange.Start, txt, spans, s.Styles, s.Dir)
}

// PushHyphen appends a hyphen glyph from the first font of the family
// chain that provides one. If no available font has a hyphen, nothing
// is appended.
func (s *ShapedText) PushHyphen(world World) {
	book := world.Book()
	for _, family := range families(s.Styles) {
		id, ok := book.Select(family, s.Variant)
		if !ok {
			continue
		}
		f := world.Font(id)
		if f == nil {
			continue
		}
		glyphID, ok := f.GlyphIndex('-')
		if !ok {
			continue
		}

		xAdvance := layout.Em(f.Advance(glyphID))
		var rng layout.Range
		if n := len(s.glyphs); n > 0 {
			end := s.glyphs[n-1].Range.End
			rng = layout.Range{Start: end, End: end}
		}

		if s.shared {
			s.glyphs = slices.Clone(s.glyphs)
			s.shared = false
		}
		s.Width += xAdvance.At(s.Size)
		s.glyphs = append(s.glyphs, ShapedGlyph{
			Font:        f,
			GlyphID:     glyphID,
			XAdvance:    xAdvance,
			Range:       rng,
			SafeToBreak: true,
			Char:        '-',
			Span:        layout.Detached,
		})
		return
	}
}

// sliceSafeToBreak finds the subslice of glyphs that represents the
// given text range, if both sides are safe to break.
func (s *ShapedText) sliceSafeToBreak(textRange layout.Range) ([]ShapedGlyph, bool) {
	start, end := textRange.Start, textRange.End
	if !s.Dir.IsPositive() {
		start, end = end, start
	}

	left, ok := s.findSafeToBreak(start, sideLeft)
	if !ok {
		return nil, false
	}
	right, ok := s.findSafeToBreak(end, sideRight)
	if !ok {
		return nil, false
	}
	return s.glyphs[left:right], true
}

// findSafeToBreak finds the glyph offset matching the text index that
// is most towards the given side and safe to break.
func (s *ShapedText) findSafeToBreak(textIndex int, towards side) (int, bool) {
	ltr := s.Dir.IsPositive()
	count := len(s.glyphs)

	// Handle edge cases.
	if textIndex == s.Base {
		if ltr {
			return 0, true
		}
		return count, true
	}
	if textIndex == s.Base+len(s.Text) {
		if ltr {
			return count, true
		}
		return 0, true
	}

	// Find the leftmost glyph with the text index. The glyphs are
	// monotone in cluster start along the search order, reversed for
	// RTL.
	idx := sort.Search(count, func(i int) bool {
		if ltr {
			return s.glyphs[i].Range.Start >= textIndex
		}
		return s.glyphs[i].Range.Start <= textIndex
	})
	if idx == count || s.glyphs[idx].Range.Start != textIndex {
		return 0, false
	}

	// Walk to the outermost glyph of the cluster on the requested side.
	if towards == sideRight {
		for idx+1 < count && s.glyphs[idx+1].Range.Start == textIndex {
			idx++
		}
	}

	if !s.glyphs[idx].SafeToBreak {
		return 0, false
	}

	// RTL needs an offset of one because the left side of the range
	// should be exclusive and the right side inclusive, contrary to the
	// normal behaviour of ranges.
	if !ltr {
		idx++
	}
	return idx, true
}

func (s *ShapedText) String() string {
	return fmt.Sprintf("%q", s.Text)
}
