package text

import "github.com/boergens/typeset/layout"

// Decoration represents a line decoration applied over shaped text.
type Decoration struct {
	Line DecoLine
	// Extent extends the decoration beyond the text on both sides.
	Extent layout.Abs
}

// DecoLine represents a decoration line style.
type DecoLine interface {
	isDecoLine()
}

// UnderlineDeco draws a line below the baseline.
type UnderlineDeco struct {
	// Stroke overrides paint and thickness; nil derives both from the
	// text style and font metrics.
	Stroke *layout.Stroke
	// Offset overrides the font's underline position.
	Offset *layout.Abs
	// Evade interrupts the line where it would cross glyph descenders.
	Evade bool
	// Background places the line behind the text.
	Background bool
}

func (*UnderlineDeco) isDecoLine() {}

// StrikethroughDeco draws a line through the text.
type StrikethroughDeco struct {
	Stroke     *layout.Stroke
	Offset     *layout.Abs
	Background bool
}

func (*StrikethroughDeco) isDecoLine() {}

// OverlineDeco draws a line above the text.
type OverlineDeco struct {
	Stroke     *layout.Stroke
	Offset     *layout.Abs
	Evade      bool
	Background bool
}

func (*OverlineDeco) isDecoLine() {}
