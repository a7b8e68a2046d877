package text

import (
	"testing"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
)

func TestVariant(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Styles)
		want   font.Variant
	}{
		{
			"defaults",
			func(s *Styles) {},
			font.Variant{Style: font.StyleNormal, Weight: font.WeightNormal, Stretch: font.StretchNormal},
		},
		{
			"delta thickens",
			func(s *Styles) { s.Delta = 300 },
			font.Variant{Style: font.StyleNormal, Weight: 700, Stretch: font.StretchNormal},
		},
		{
			"delta saturates",
			func(s *Styles) { s.Delta = 10000 },
			font.Variant{Style: font.StyleNormal, Weight: 900, Stretch: font.StretchNormal},
		},
		{
			"emph toggles normal to italic",
			func(s *Styles) { s.Emph = true },
			font.Variant{Style: font.StyleItalic, Weight: font.WeightNormal, Stretch: font.StretchNormal},
		},
		{
			"emph toggles italic to normal",
			func(s *Styles) { s.Style = font.StyleItalic; s.Emph = true },
			font.Variant{Style: font.StyleNormal, Weight: font.WeightNormal, Stretch: font.StretchNormal},
		},
		{
			"emph toggles oblique to normal",
			func(s *Styles) { s.Style = font.StyleOblique; s.Emph = true },
			font.Variant{Style: font.StyleNormal, Weight: font.WeightNormal, Stretch: font.StretchNormal},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			styles := New("test")
			tc.modify(styles)
			if got := styles.Variant(); got != tc.want {
				t.Errorf("Variant() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		region string
		want   string
	}{
		{"language only", "en", "", "en"},
		{"language and region", "en", "US", "en-US"},
		{"chinese taiwan", "zh", "TW", "zh-TW"},
		{"empty falls back to english", "", "", "en"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			styles := New("test")
			styles.Lang = tc.lang
			styles.Region = tc.region
			if got := styles.Language(); got != tc.want {
				t.Errorf("Language() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFeatureList(t *testing.T) {
	contains := func(feats []Feature, tag string, value uint32) bool {
		for _, f := range feats {
			if f.Tag == tag && f.Value == value {
				return true
			}
		}
		return false
	}

	t.Run("defaults are empty", func(t *testing.T) {
		if feats := New("test").FeatureList(); len(feats) != 0 {
			t.Errorf("FeatureList() = %v, want empty", feats)
		}
	})

	t.Run("kerning off emits kern 0", func(t *testing.T) {
		styles := New("test")
		styles.Kerning = false
		if feats := styles.FeatureList(); !contains(feats, "kern", 0) {
			t.Errorf("FeatureList() = %v, want kern=0", feats)
		}
	})

	t.Run("ligatures off emits liga and clig 0", func(t *testing.T) {
		styles := New("test")
		styles.Ligatures = false
		feats := styles.FeatureList()
		if !contains(feats, "liga", 0) || !contains(feats, "clig", 0) {
			t.Errorf("FeatureList() = %v, want liga=0 and clig=0", feats)
		}
	})

	t.Run("stylistic set", func(t *testing.T) {
		styles := New("test")
		styles.StylisticSet = 7
		if feats := styles.FeatureList(); !contains(feats, "ss07", 1) {
			t.Errorf("FeatureList() = %v, want ss07=1", feats)
		}

		styles.StylisticSet = 20
		if feats := styles.FeatureList(); !contains(feats, "ss20", 1) {
			t.Errorf("FeatureList() = %v, want ss20=1", feats)
		}

		styles.StylisticSet = 21
		if feats := styles.FeatureList(); len(feats) != 0 {
			t.Errorf("FeatureList() = %v, want empty for out-of-range set", feats)
		}
	})

	t.Run("toggles", func(t *testing.T) {
		styles := New("test")
		styles.Smallcaps = true
		styles.Alternates = true
		styles.DiscretionaryLigatures = true
		styles.HistoricalLigatures = true
		styles.SlashedZero = true
		styles.Fractions = true
		styles.NumberType = NumberTypeOldStyle
		styles.NumberWidth = NumberWidthTabular

		feats := styles.FeatureList()
		for _, want := range []string{"smcp", "salt", "dlig", "hilg", "onum", "tnum", "zero", "frac"} {
			if !contains(feats, want, 1) {
				t.Errorf("FeatureList() = %v, missing %s=1", feats, want)
			}
		}
	})

	t.Run("user features come last", func(t *testing.T) {
		styles := New("test")
		styles.Features = []Feature{{Tag: "cv01", Value: 2}}
		feats := styles.FeatureList()
		if len(feats) != 1 || feats[0] != (Feature{Tag: "cv01", Value: 2}) {
			t.Errorf("FeatureList() = %v, want the user feature", feats)
		}
	})
}

func TestEdgeResolve(t *testing.T) {
	metrics := font.Metrics{
		Ascender:  0.8,
		CapHeight: 0.7,
		XHeight:   0.5,
		Descender: -0.2,
	}

	topTests := []struct {
		edge TopEdge
		want layout.Em
	}{
		{TopEdgeAscender, 0.8},
		{TopEdgeCapHeight, 0.7},
		{TopEdgeXHeight, 0.5},
		{TopEdgeBaseline, 0},
		{TopEdgeBounds, 0.8},
	}
	for _, tc := range topTests {
		if got := tc.edge.Resolve(metrics); got != tc.want {
			t.Errorf("TopEdge(%d).Resolve = %v, want %v", tc.edge, got, tc.want)
		}
	}

	bottomTests := []struct {
		edge BottomEdge
		want layout.Em
	}{
		{BottomEdgeDescender, -0.2},
		{BottomEdgeBaseline, 0},
		{BottomEdgeBounds, -0.2},
	}
	for _, tc := range bottomTests {
		if got := tc.edge.Resolve(metrics); got != tc.want {
			t.Errorf("BottomEdge(%d).Resolve = %v, want %v", tc.edge, got, tc.want)
		}
	}
}
