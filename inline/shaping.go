package inline

import (
	"errors"
	"strings"

	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/harfbuzz"
	"github.com/go-text/typesetting/language"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
	"github.com/boergens/typeset/text"
)

// Dir represents the direction of a text run.
type Dir int

const (
	// DirLTR is left-to-right text.
	DirLTR Dir = iota
	// DirRTL is right-to-left text.
	DirRTL
	// DirTTB is top-to-bottom text. Not supported for shaping.
	DirTTB
	// DirBTT is bottom-to-top text. Not supported for shaping.
	DirBTT
)

// IsPositive returns true if the direction grows along its axis, which
// for horizontal text means left to right.
func (d Dir) IsPositive() bool {
	return d == DirLTR || d == DirTTB
}

// IsVertical returns true for the vertical directions.
func (d Dir) IsVertical() bool {
	return d == DirTTB || d == DirBTT
}

// ErrVerticalText is returned when a vertical direction is requested.
// Vertical text layout is an unsupported configuration.
var ErrVerticalText = errors.New("vertical text layout is not supported")

// World provides access to the fonts the shaper may select from.
type World interface {
	// Book returns the font book for family and fallback selection.
	Book() *font.FontBook
	// Font returns the font with the given id, or nil.
	Font(id font.ID) *font.Font
}

// SpanMapper resolves absolute paragraph byte offsets to source spans.
type SpanMapper interface {
	// SpanAt returns the span at the given offset and the byte offset
	// within it.
	SpanAt(offset int) (layout.Span, uint16)
}

// fallbackFamilies are appended to the family chain when fallback is
// enabled.
var fallbackFamilies = []string{
	"linux libertine",
	"twitter color emoji",
	"noto color emoji",
	"apple color emoji",
	"segoe ui emoji",
}

// families returns the prioritized family chain for the styles.
func families(styles *text.Styles) []string {
	chain := styles.FontFamilies
	if !styles.Fallback {
		return chain
	}
	out := make([]string, 0, len(chain)+len(fallbackFamilies))
	out = append(out, chain...)
	out = append(out, fallbackFamilies...)
	return out
}

// shapingContext holds shaping results and metadata common to all
// shaped segments of one Shape invocation.
type shapingContext struct {
	world    World
	spans    SpanMapper
	glyphs   []ShapedGlyph
	used     []*font.Font
	styles   *text.Styles
	size     layout.Abs
	variant  font.Variant
	features []harfbuzz.Feature
	fallback bool
	dir      Dir
}

// Shape shapes a run of text into a ShapedText. The base is the
// absolute byte offset of the text within its paragraph. Only the
// horizontal directions are supported.
func Shape(
	world World,
	base int,
	txt string,
	spans SpanMapper,
	styles *text.Styles,
	dir Dir,
) (*ShapedText, error) {
	if dir.IsVertical() {
		return nil, ErrVerticalText
	}
	return shapeHorizontal(world, base, txt, spans, styles, dir), nil
}

func shapeHorizontal(
	world World,
	base int,
	txt string,
	spans SpanMapper,
	styles *text.Styles,
	dir Dir,
) *ShapedText {
	size := styles.Size
	ctx := shapingContext{
		world:    world,
		spans:    spans,
		styles:   styles,
		size:     size,
		variant:  styles.Variant(),
		features: shaperFeatures(styles),
		fallback: styles.Fallback,
		dir:      dir,
	}

	if len(txt) > 0 {
		shapeSegment(&ctx, base, txt, families(styles))
	}

	trackAndSpace(&ctx)

	var width layout.Em
	for i := range ctx.glyphs {
		width += ctx.glyphs[i].XAdvance
	}

	return &ShapedText{
		Base:    base,
		Text:    txt,
		Dir:     dir,
		Styles:  styles,
		Variant: ctx.variant,
		Size:    size,
		Width:   width.At(size),
		glyphs:  ctx.glyphs,
	}
}

// shapeSegment shapes text with font fallback using the remaining
// family chain. Residual tofu sub-ranges are shaped recursively with
// the rest of the chain; the used stack prevents revisiting a font.
func shapeSegment(ctx *shapingContext, base int, txt string, chain []string) {
	// Fonts don't have newlines and tabs.
	if strings.Trim(txt, "\n\t") == "" {
		return
	}

	// Find the next available family.
	book := ctx.world.Book()
	var selected *font.Font
	rest := chain[len(chain):]
	for i, family := range chain {
		if id, ok := book.Select(family, ctx.variant); ok {
			if f := ctx.world.Font(id); f != nil && !fontsContain(ctx.used, f) {
				selected = f
				rest = chain[i+1:]
				break
			}
		}
	}

	// Do font fallback if the families are exhausted and fallback is
	// enabled.
	if selected == nil && ctx.fallback {
		var hint *font.FontInfo
		if len(ctx.used) > 0 {
			hint = &ctx.used[0].Info
		}
		if id, ok := book.SelectFallback(hint, ctx.variant, txt); ok {
			if f := ctx.world.Font(id); f != nil && !fontsContain(ctx.used, f) {
				selected = f
			}
		}
	}

	// If we still couldn't find a font, shape notdef glyphs with the
	// first previously used font, if any.
	if selected == nil {
		if len(ctx.used) > 0 {
			shapeTofus(ctx, base, txt, ctx.used[0])
		}
		return
	}

	ctx.used = append(ctx.used, selected)

	// Fill the buffer with our text.
	runes := []rune(txt)
	buf := harfbuzz.NewBuffer()
	buf.AddRunes(runes, 0, len(runes))

	direction := harfbuzz.LeftToRight
	if ctx.dir == DirRTL {
		direction = harfbuzz.RightToLeft
	}
	buf.Props = harfbuzz.SegmentProperties{
		Direction: direction,
		Language:  language.NewLanguage(ctx.styles.Language()),
	}
	// The script stays unset so the shaper detects it from the buffer
	// contents.
	buf.GuessSegmentProperties()

	// Shape!
	buf.Shape(harfbuzz.NewFont(selected.Face()), ctx.features)
	infos := buf.Info
	pos := buf.Pos
	ltr := ctx.dir.IsPositive()

	// The shaper reports clusters as rune indices; the glyph model
	// works in byte offsets.
	runeToByte := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		runeToByte[i] = offset
		offset += len(string(r))
	}
	runeToByte[len(runes)] = offset

	clusterOf := func(i int) int {
		return runeToByte[infos[i].Cluster]
	}

	// Collect the shaped glyphs, doing fallback and shaping parts again
	// with the next font if necessary.
	for i := 0; i < len(infos); i++ {
		info := &infos[i]
		cluster := clusterOf(i)

		if info.Glyph != 0 {
			// Add the glyph to the shaped output. The cluster ends
			// where the next cluster in visual order begins.
			start := base + cluster
			end := base + len(txt)
			if j := visualNext(i, ltr); 0 <= j && j < len(infos) {
				end = base + clusterOf(j)
			}

			char, _ := firstRune(txt[cluster:])
			span, spanOffset := spanAt(ctx.spans, start)
			ctx.glyphs = append(ctx.glyphs, ShapedGlyph{
				Font:        selected,
				GlyphID:     uint16(info.Glyph),
				XAdvance:    layout.Em(selected.ToEm(float32(pos[i].XAdvance))),
				XOffset:     layout.Em(selected.ToEm(float32(pos[i].XOffset))),
				YOffset:     layout.Em(selected.ToEm(float32(pos[i].YOffset))),
				Range:       layout.Range{Start: start, End: end},
				SafeToBreak: info.Mask&harfbuzz.GlyphUnsafeToBreak == 0,
				Char:        char,
				Span:        span,
				SpanOffset:  spanOffset,
			})
			continue
		}

		// First, search for the end of the tofu sequence.
		k := i
		for i+1 < len(infos) && infos[i+1].Glyph == 0 {
			i++
		}

		// Then, determine the start and end text index of the tofu
		// sequence. Everything is in visual order, so the text range is
		// delimited by the cluster of the visually first tofu and the
		// cluster of the glyph following the visually last one.
		//
		// Left-to-right:              Right-to-left:
		// Text:     h a l i h a l l o  Text:   O L L A H I L A H
		// Glyphs:   A   _   _   C   E  Glyphs: E   C   _   _   A
		// Clusters: 0   2   4   6   8  Clusters: 8  6   4   2   0
		//              k=1 i=2                        k=2 i=3
		// Tofus span the text 2..6 in both cases.
		var start, end int
		if ltr {
			start = clusterOf(k)
		} else {
			start = clusterOf(i)
		}
		end = len(txt)
		var j int
		if ltr {
			j = i + 1
		} else {
			j = k - 1
		}
		if 0 <= j && j < len(infos) {
			end = clusterOf(j)
		}

		// Trim half-baked clusters: glyphs already emitted whose cluster
		// straddles the tofu boundary must be reshaped together with the
		// tofu range.
		remove := layout.Range{Start: base + start, End: base + end}
		for len(ctx.glyphs) > 0 && remove.Contains(ctx.glyphs[len(ctx.glyphs)-1].Range.Start) {
			ctx.glyphs = ctx.glyphs[:len(ctx.glyphs)-1]
		}

		// Recursively shape the tofu sequence with the next family.
		shapeSegment(ctx, base+start, txt[start:end], rest)
	}

	ctx.used = ctx.used[:len(ctx.used)-1]
}

// shapeTofus emits one notdef glyph per character from the given font.
// The glyphs are emitted in visual order to keep the run's glyph order
// invariant intact.
func shapeTofus(ctx *shapingContext, base int, txt string, f *font.Font) {
	xAdvance := layout.Em(f.Advance(0))

	add := func(cluster int, c rune) {
		start := base + cluster
		end := start + len(string(c))
		span, spanOffset := spanAt(ctx.spans, start)
		ctx.glyphs = append(ctx.glyphs, ShapedGlyph{
			Font:        f,
			GlyphID:     0,
			XAdvance:    xAdvance,
			Range:       layout.Range{Start: start, End: end},
			SafeToBreak: true,
			Char:        c,
			Span:        span,
			SpanOffset:  spanOffset,
		})
	}

	if ctx.dir.IsPositive() {
		for cluster, c := range txt {
			add(cluster, c)
		}
	} else {
		runes := []rune(txt)
		cluster := len(txt)
		for i := len(runes) - 1; i >= 0; i-- {
			cluster -= len(string(runes[i]))
			add(cluster, runes[i])
		}
	}
}

// visualNext returns the info index of the glyph following i in visual
// order, which is the next buffer slot for LTR and the previous one for
// RTL.
func visualNext(i int, ltr bool) int {
	if ltr {
		return i + 1
	}
	return i - 1
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func spanAt(spans SpanMapper, offset int) (layout.Span, uint16) {
	if spans == nil {
		return layout.Detached, 0
	}
	return spans.SpanAt(offset)
}

func fontsContain(fonts []*font.Font, f *font.Font) bool {
	for _, candidate := range fonts {
		if candidate == f {
			return true
		}
	}
	return false
}

// shaperFeatures collects the OpenType features to apply as shaper
// features.
func shaperFeatures(styles *text.Styles) []harfbuzz.Feature {
	list := styles.FeatureList()
	features := make([]harfbuzz.Feature, 0, len(list))
	for _, f := range list {
		features = append(features, harfbuzz.Feature{
			Tag:   featureTag(f.Tag),
			Value: f.Value,
			Start: harfbuzz.FeatureGlobalStart,
			End:   harfbuzz.FeatureGlobalEnd,
		})
	}
	return features
}

// featureTag packs a feature tag string into its OpenType tag value.
// Short tags are padded with spaces.
func featureTag(s string) gofont.Tag {
	var t uint32
	for i := 0; i < 4; i++ {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		t = t<<8 | uint32(c)
	}
	return gofont.Tag(t)
}
