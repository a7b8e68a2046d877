package inline

import (
	"sort"
	"sync"
	"testing"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/kit"
	"github.com/boergens/typeset/layout"
	"github.com/boergens/typeset/text"
)

var (
	worldOnce   sync.Once
	worldCached *kit.FontWorld
	latinFamily string
)

// shapingWorld returns a world over the system fonts and styles
// selecting a font that covers basic Latin. Tests that need real
// shaping skip when no usable font is installed.
func shapingWorld(t *testing.T) (*kit.FontWorld, *text.Styles) {
	t.Helper()

	worldOnce.Do(func() {
		world, err := kit.NewFontWorld()
		if err != nil {
			return
		}
		book := world.Book()
		for id := 0; id < book.Len(); id++ {
			f := book.Font(font.ID(id))
			if f != nil && f.Covers("Hello world-") {
				worldCached = world
				latinFamily = f.Family()
				return
			}
		}
	})

	if worldCached == nil {
		t.Skip("no font covering basic latin available")
	}

	styles := text.New(latinFamily)
	styles.Fallback = false
	return worldCached, styles
}

func mustShape(t *testing.T, world World, base int, txt string, styles *text.Styles, dir Dir) *ShapedText {
	t.Helper()
	s, err := Shape(world, base, txt, nil, styles, dir)
	if err != nil {
		t.Fatalf("Shape(%q) failed: %v", txt, err)
	}
	return s
}

func TestShapeHello(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "Hello", styles, DirLTR)

	glyphs := s.Glyphs()
	if len(glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(glyphs))
	}

	var width layout.Em
	for i, g := range glyphs {
		if g.GlyphID == 0 {
			t.Errorf("glyph %d is a tofu", i)
		}
		if g.Range.Len() != 1 {
			t.Errorf("glyph %d cluster length = %d, want 1", i, g.Range.Len())
		}
		if g.Range.Start < s.Base || g.Range.End > s.Base+len(s.Text) {
			t.Errorf("glyph %d range %v outside text", i, g.Range)
		}
		if i > 0 && glyphs[i-1].Range.Start > g.Range.Start {
			t.Errorf("glyph %d out of order", i)
		}
		if g.Font == nil {
			t.Errorf("glyph %d has no font", i)
		}
		width += g.XAdvance
	}

	if !approxEqual(s.Width, width.At(s.Size)) {
		t.Errorf("Width = %v, want sum of advances %v", s.Width, width.At(s.Size))
	}
}

func TestShapeWhitespaceOnly(t *testing.T) {
	world, styles := shapingWorld(t)

	for _, txt := range []string{"", "\n", "\t\n\t"} {
		s := mustShape(t, world, 0, txt, styles, DirLTR)
		if len(s.Glyphs()) != 0 {
			t.Errorf("Shape(%q) produced %d glyphs, want 0", txt, len(s.Glyphs()))
		}
		if s.Width != 0 {
			t.Errorf("Shape(%q) width = %v, want 0", txt, s.Width)
		}
	}
}

func TestShapeVertical(t *testing.T) {
	world, styles := shapingWorld(t)

	if _, err := Shape(world, 0, "a", nil, styles, DirTTB); err != ErrVerticalText {
		t.Errorf("Shape(TTB) error = %v, want ErrVerticalText", err)
	}
	if _, err := ShapeRange(world, 0, "a", nil, styles, DirBTT); err != ErrVerticalText {
		t.Errorf("ShapeRange(BTT) error = %v, want ErrVerticalText", err)
	}
}

func TestReshapeEquivalence(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "Hi world", styles, DirLTR)

	// Reshaping "world" matches shaping it from scratch, whether the
	// slice was reused or re-shaped.
	sub := s.Reshape(world, nil, layout.Range{Start: 3, End: 8})
	fresh := mustShape(t, world, 3, "world", styles, DirLTR)

	if len(sub.Glyphs()) != len(fresh.Glyphs()) {
		t.Fatalf("reshape has %d glyphs, fresh shape has %d", len(sub.Glyphs()), len(fresh.Glyphs()))
	}
	for i := range sub.Glyphs() {
		a, b := sub.Glyphs()[i], fresh.Glyphs()[i]
		if a.GlyphID != b.GlyphID || a.Range != b.Range {
			t.Errorf("glyph %d differs: %d@%v vs %d@%v", i, a.GlyphID, a.Range, b.GlyphID, b.Range)
		}
		if !approxEqual(a.XAdvance.At(s.Size), b.XAdvance.At(s.Size)) {
			t.Errorf("glyph %d advance differs: %v vs %v", i, a.XAdvance, b.XAdvance)
		}
	}
}

func TestReshapeTotalCoverage(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 2, "Hi world", styles, DirLTR)

	whole := s.Reshape(world, nil, layout.Range{Start: 2, End: 2 + len(s.Text)})
	if len(whole.Glyphs()) != len(s.Glyphs()) {
		t.Fatalf("whole reshape has %d glyphs, want %d", len(whole.Glyphs()), len(s.Glyphs()))
	}
	if !approxEqual(whole.Width, s.Width) {
		t.Errorf("whole reshape width = %v, want %v", whole.Width, s.Width)
	}
}

func TestNBSPWidth(t *testing.T) {
	world, styles := shapingWorld(t)

	spaced := mustShape(t, world, 0, "A B", styles, DirLTR)
	nbsped := mustShape(t, world, 0, "A\u00A0B", styles, DirLTR)

	var space, nbsp *ShapedGlyph
	for i := range spaced.Glyphs() {
		if spaced.Glyphs()[i].Char == ' ' {
			space = &spaced.Glyphs()[i]
		}
	}
	for i := range nbsped.Glyphs() {
		if nbsped.Glyphs()[i].Char == '\u00A0' {
			nbsp = &nbsped.Glyphs()[i]
		}
	}
	if space == nil || nbsp == nil || nbsp.GlyphID == 0 {
		t.Skip("font does not provide both space glyphs")
	}

	if !approxEqual(space.XAdvance.At(12), nbsp.XAdvance.At(12)) {
		t.Errorf("NBSP advance %v != space advance %v", nbsp.XAdvance, space.XAdvance)
	}
}

func TestTofuForUncoveredCodepoint(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "ab\uFFFFcd", styles, DirLTR)

	var tofus, covered int
	for _, g := range s.Glyphs() {
		if g.GlyphID == 0 {
			tofus++
			if g.Char != '\uFFFF' {
				t.Errorf("tofu for %q, want U+FFFF", g.Char)
			}
			if !g.SafeToBreak {
				t.Error("tofu glyph must be safe to break")
			}
		} else {
			covered++
		}
	}

	if tofus != 1 {
		t.Errorf("got %d tofus, want 1", tofus)
	}
	if covered != 4 {
		t.Errorf("got %d covered glyphs, want 4", covered)
	}
}

func TestPushHyphen(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 10, "ab", styles, DirLTR)

	count := len(s.Glyphs())
	width := s.Width
	s.PushHyphen(world)

	if len(s.Glyphs()) != count+1 {
		t.Fatalf("got %d glyphs after PushHyphen, want %d", len(s.Glyphs()), count+1)
	}
	last := s.Glyphs()[len(s.Glyphs())-1]
	if last.Char != '-' || !last.SafeToBreak {
		t.Errorf("hyphen glyph = %+v", last)
	}
	if last.Range != (layout.Range{Start: 12, End: 12}) {
		t.Errorf("hyphen range = %v, want empty range at 12", last.Range)
	}
	if !approxEqual(s.Width, width+last.XAdvance.At(s.Size)) {
		t.Errorf("width after PushHyphen = %v, want %v", s.Width, width+last.XAdvance.At(s.Size))
	}
}

func TestPushHyphenDoesNotCorruptParent(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "Hi world", styles, DirLTR)

	sub := s.Reshape(world, nil, layout.Range{Start: 0, End: 2})
	parentGlyphs := make([]ShapedGlyph, len(s.Glyphs()))
	copy(parentGlyphs, s.Glyphs())

	sub.PushHyphen(world)

	for i := range parentGlyphs {
		if parentGlyphs[i] != s.Glyphs()[i] {
			t.Fatalf("parent glyph %d changed after child PushHyphen", i)
		}
	}
}

func TestBuildJustification(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "Hi world", styles, DirLTR)

	t.Run("stretch", func(t *testing.T) {
		frame := s.Build(world, 1.0, 0)
		want := s.Width + s.Stretchability()
		if !approxEqual(frame.Width(), want) {
			t.Errorf("frame width = %v, want %v", frame.Width(), want)
		}
	})

	t.Run("shrink", func(t *testing.T) {
		frame := s.Build(world, -1.0, 0)
		want := s.Width - s.Shrinkability()
		if !approxEqual(frame.Width(), want) {
			t.Errorf("frame width = %v, want %v", frame.Width(), want)
		}
	})

	t.Run("extra", func(t *testing.T) {
		extra := 2 * layout.Pt
		frame := s.Build(world, 0, extra)
		want := s.Width + layout.Abs(s.Justifiables())*extra
		if !approxEqual(frame.Width(), want) {
			t.Errorf("frame width = %v, want %v", frame.Width(), want)
		}
	})

	t.Run("items", func(t *testing.T) {
		frame := s.Build(world, 0, 0)
		if frame.Baseline() <= 0 {
			t.Errorf("baseline = %v, want > 0", frame.Baseline())
		}
		texts := 0
		for _, item := range frame.Items() {
			if _, ok := item.Item.(*layout.TextItem); ok {
				texts++
			}
		}
		if texts == 0 {
			t.Error("frame contains no text items")
		}
	})
}

func TestBuildEmptyRunMeasuresFirstFont(t *testing.T) {
	world, styles := shapingWorld(t)
	s := mustShape(t, world, 0, "", styles, DirLTR)

	frame := s.Build(world, 0, 0)
	if frame.Height() <= 0 {
		t.Errorf("empty run frame height = %v, want > 0", frame.Height())
	}
}

func TestTracking(t *testing.T) {
	world, styles := shapingWorld(t)
	plain := mustShape(t, world, 0, "abc", styles, DirLTR)

	tracked := text.New(latinFamily)
	tracked.Fallback = false
	tracked.Tracking = 2 * layout.Pt
	s := mustShape(t, world, 0, "abc", tracked, DirLTR)

	// Tracking lands on every cluster-final glyph except the last.
	want := plain.Width + layout.Abs(len(plain.Glyphs())-1)*2
	if !approxEqual(s.Width, want) {
		t.Errorf("tracked width = %v, want %v", s.Width, want)
	}
}

func TestLetterSpacing(t *testing.T) {
	world, styles := shapingWorld(t)
	plain := mustShape(t, world, 0, "a b", styles, DirLTR)

	var spaceAdvance layout.Em
	for _, g := range plain.Glyphs() {
		if g.Char == ' ' {
			spaceAdvance = g.XAdvance
		}
	}
	if spaceAdvance == 0 {
		t.Skip("no space glyph produced")
	}

	doubled := text.New(latinFamily)
	doubled.Fallback = false
	spacing := layout.RelFromRatio(2)
	doubled.Spacing = &spacing
	s := mustShape(t, world, 0, "a b", doubled, DirLTR)

	for _, g := range s.Glyphs() {
		if g.Char == ' ' && !approxEqual(g.XAdvance.At(12), (2*spaceAdvance).At(12)) {
			t.Errorf("space advance = %v, want %v", g.XAdvance, 2*spaceAdvance)
		}
	}
}

func TestShapeRangeBidi(t *testing.T) {
	world, styles := shapingWorld(t)

	// The second text has multibyte characters before the Latin run, so
	// run bases must be byte offsets rather than rune indices.
	texts := []string{"ab שלום cd", "שלום cd"}
	for _, txt := range texts {
		t.Run(txt, func(t *testing.T) {
			runs, err := ShapeRange(world, 0, txt, nil, styles, DirLTR)
			if err != nil {
				t.Fatalf("ShapeRange failed: %v", err)
			}
			if len(runs) < 2 {
				t.Fatalf("got %d runs, want at least 2", len(runs))
			}

			rtl := false
			ranges := make([]layout.Range, 0, len(runs))
			for _, run := range runs {
				if run.Dir == DirRTL {
					rtl = true
				}
				if run.Text != txt[run.Base:run.Base+len(run.Text)] {
					t.Errorf("run %q does not match paragraph bytes at %d", run.Text, run.Base)
				}
				ranges = append(ranges, layout.Range{Start: run.Base, End: run.Base + len(run.Text)})
			}
			if !rtl {
				t.Error("no RTL run for the Hebrew segment")
			}

			// The runs' absolute ranges tile the paragraph without
			// overlap.
			sort.Slice(ranges, func(i, j int) bool {
				return ranges[i].Start < ranges[j].Start
			})
			next := 0
			for _, r := range ranges {
				if r.Start != next {
					t.Errorf("run range %v does not continue at byte %d", r, next)
				}
				next = r.End
			}
			if next != len(txt) {
				t.Errorf("runs cover %d bytes, want %d", next, len(txt))
			}
		})
	}
}
