package inline

import (
	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

// Build converts the shaped text into a frame of positioned text
// items.
//
// The justification ratio scales each glyph's per-side adjustability:
// negative ratios shrink, positive ratios stretch. The extra
// justification is added to the right side of every justifiable glyph.
func (s *ShapedText) Build(
	world World,
	justificationRatio float64,
	extraJustification layout.Abs,
) *layout.Frame {
	top, bottom := s.measure(world)
	frame := layout.NewFrame(layout.Size{Width: s.Width, Height: top + bottom})
	frame.SetBaseline(top)

	shift := s.Styles.Baseline
	lang := s.Styles.Lang
	decos := s.Styles.Decos
	fill := s.Styles.Fill

	var offset layout.Abs
	for start := 0; start < len(s.glyphs); {
		// Take the longest run of glyphs from one font at one vertical
		// offset.
		groupFont := s.glyphs[start].Font
		yOffset := s.glyphs[start].YOffset
		end := start + 1
		for end < len(s.glyphs) &&
			s.glyphs[end].Font == groupFont &&
			s.glyphs[end].YOffset == yOffset {
			end++
		}
		group := s.glyphs[start:end]
		start = end

		rng := group[0].Range
		for i := range group {
			rng.Start = min(rng.Start, group[i].Range.Start)
			rng.End = max(rng.End, group[i].Range.End)
		}

		pos := layout.Point{X: offset, Y: top + shift - yOffset.At(s.Size)}
		glyphs := make([]layout.Glyph, 0, len(group))
		for i := range group {
			g := &group[i]

			var adjustLeft, adjustRight layout.Em
			if justificationRatio < 0 {
				shrink := g.Shrinkability()
				adjustLeft, adjustRight = shrink[0], shrink[1]
			} else {
				stretch := g.Stretchability()
				adjustLeft, adjustRight = stretch[0], stretch[1]
			}

			justificationLeft := adjustLeft * layout.Em(justificationRatio)
			justificationRight := adjustRight * layout.Em(justificationRatio)
			if g.IsJustifiable() {
				justificationRight += layout.EmFromLength(extraJustification, s.Size)
			}

			frame.GrowWidth(justificationLeft.At(s.Size) + justificationRight.At(s.Size))

			glyphs = append(glyphs, layout.Glyph{
				ID:       g.GlyphID,
				XAdvance: g.XAdvance + justificationLeft + justificationRight,
				XOffset:  g.XOffset + justificationLeft,
				Range: layout.Range{
					Start: g.Range.Start - rng.Start,
					End:   g.Range.End - rng.Start,
				},
				Span:       g.Span,
				SpanOffset: g.SpanOffset,
			})
		}

		item := &layout.TextItem{
			Font:   groupFont,
			Size:   s.Size,
			Lang:   lang,
			Fill:   fill,
			Text:   s.Text[rng.Start-s.Base : rng.End-s.Base],
			Glyphs: glyphs,
		}
		width := item.Width()

		// Apply line decorations.
		for i := range decos {
			Decorate(frame, &decos[i], item, shift, pos, width)
		}

		frame.Push(pos, item)
		offset += width
	}

	frame.SetMeta(s.Styles)
	return frame
}

// measure returns the top and bottom extent of this text, resolved
// from the style's edge settings against the involved fonts' metrics.
// When there are no glyphs, the first available font of the family
// chain is measured instead.
func (s *ShapedText) measure(world World) (layout.Abs, layout.Abs) {
	var top, bottom layout.Abs

	topEdge := s.Styles.TopEdge
	bottomEdge := s.Styles.BottomEdge
	expand := func(f *font.Font) {
		metrics := f.Metrics()
		top = top.Max(topEdge.Resolve(metrics).At(s.Size))
		bottom = bottom.Max((-bottomEdge.Resolve(metrics)).At(s.Size))
	}

	if len(s.glyphs) == 0 {
		book := world.Book()
		for _, family := range families(s.Styles) {
			if id, ok := book.Select(family, s.Variant); ok {
				if f := world.Font(id); f != nil {
					expand(f)
					break
				}
			}
		}
	} else {
		for i := range s.glyphs {
			expand(s.glyphs[i].Font)
		}
	}

	return top, bottom
}
