package inline

import (
	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

// trackAndSpace applies tracking, letter spacing, and non-breaking
// space normalization to the shaped glyphs.
func trackAndSpace(ctx *shapingContext) {
	tracking := layout.EmFromLength(ctx.styles.Tracking, ctx.size)
	spacing := ctx.styles.Spacing

	for i := range ctx.glyphs {
		glyph := &ctx.glyphs[i]

		// Make non-breaking spaces the same width as normal spaces.
		if glyph.Char == '\u00A0' {
			if delta, ok := nbspDelta(glyph.Font); ok {
				glyph.XAdvance -= delta
			}
		}

		if spacing != nil && glyph.IsSpace() {
			abs := spacing.RelativeTo(glyph.XAdvance.At(ctx.size))
			glyph.XAdvance = layout.EmFromLength(abs, ctx.size)
		}

		// Tracking goes after the last glyph of each cluster, but not
		// after the final glyph of the run.
		if i+1 < len(ctx.glyphs) && glyph.Range.Start != ctx.glyphs[i+1].Range.Start {
			glyph.XAdvance += tracking
		}
	}
}

// nbspDelta returns the difference between the font's non-breaking and
// normal space advance. The second return is false if the font lacks
// either glyph.
func nbspDelta(f *font.Font) (layout.Em, bool) {
	space, ok := f.GlyphIndex(' ')
	if !ok {
		return 0, false
	}
	nbsp, ok := f.GlyphIndex('\u00A0')
	if !ok {
		return 0, false
	}
	return layout.Em(f.Advance(nbsp) - f.Advance(space)), true
}
