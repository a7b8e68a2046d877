package layout

import "github.com/boergens/typeset/font"

// Span identifies a source location. The engine treats spans as opaque
// handles obtained from a span mapper; Detached marks a glyph without
// a source location, such as an appended hyphen.
type Span uint64

// Detached is the span of synthesized content.
const Detached Span = 0

// Frame represents a laid-out frame containing positioned content.
type Frame struct {
	size     Size
	baseline Abs
	items    []PositionedItem
	meta     any
}

// NewFrame creates a new empty frame with the given size.
func NewFrame(size Size) *Frame {
	return &Frame{size: size}
}

// Size returns the frame's dimensions.
func (f *Frame) Size() Size {
	return f.size
}

// Width returns the frame's width.
func (f *Frame) Width() Abs {
	return f.size.Width
}

// Height returns the frame's height.
func (f *Frame) Height() Abs {
	return f.size.Height
}

// SetSize sets the frame's size.
func (f *Frame) SetSize(size Size) {
	f.size = size
}

// GrowWidth widens the frame by the given amount.
func (f *Frame) GrowWidth(by Abs) {
	f.size.Width += by
}

// Baseline returns the frame's baseline, measured from the top.
func (f *Frame) Baseline() Abs {
	return f.baseline
}

// SetBaseline sets the frame's baseline.
func (f *Frame) SetBaseline(baseline Abs) {
	f.baseline = baseline
}

// Items returns the frame's items.
func (f *Frame) Items() []PositionedItem {
	return f.items
}

// Push adds an item at a position.
func (f *Frame) Push(pos Point, item FrameItem) {
	f.items = append(f.items, PositionedItem{Position: pos, Item: item})
}

// Prepend inserts an item at the start of the item list, behind
// everything already placed. Background decorations use this.
func (f *Frame) Prepend(pos Point, item FrameItem) {
	f.items = append([]PositionedItem{{Position: pos, Item: item}}, f.items...)
}

// IsEmpty returns true if the frame has no items.
func (f *Frame) IsEmpty() bool {
	return len(f.items) == 0
}

// Translate moves all items by an offset.
func (f *Frame) Translate(offset Point) {
	for i := range f.items {
		f.items[i].Position = f.items[i].Position.Add(offset)
	}
}

// SetMeta attaches metadata (typically the producing style set) to the
// frame.
func (f *Frame) SetMeta(meta any) {
	f.meta = meta
}

// Meta returns the frame's attached metadata.
func (f *Frame) Meta() any {
	return f.meta
}

// FrameItem is the interface for items in a frame.
type FrameItem interface {
	isFrameItem()
}

// PositionedItem wraps an item with its position.
type PositionedItem struct {
	Position Point
	Item     FrameItem
}

// TextItem represents a run of glyphs from a single font at a single
// vertical offset.
type TextItem struct {
	// Font is the font all glyphs in this item come from.
	Font *font.Font
	// Size is the font size the glyphs are laid out at.
	Size Abs
	// Lang is the text language.
	Lang string
	// Fill is the paint the glyphs are filled with.
	Fill Paint
	// Text is the backing substring of this item.
	Text string
	// Glyphs are the positioned glyphs.
	Glyphs []Glyph
}

func (*TextItem) isFrameItem() {}

// Width returns the total advance width of the item.
func (t *TextItem) Width() Abs {
	var total Em
	for _, g := range t.Glyphs {
		total += g.XAdvance
	}
	return total.At(t.Size)
}

// Glyph represents a single glyph in a text item.
type Glyph struct {
	// ID is the glyph's index in the font.
	ID uint16
	// XAdvance is the advance width of the glyph.
	XAdvance Em
	// XOffset is the horizontal offset of the glyph.
	XOffset Em
	// Range is the glyph's cluster range within the item's text.
	Range Range
	// Span is the source location the glyph stems from.
	Span Span
	// SpanOffset is the byte offset within the span.
	SpanOffset uint16
}

// ShapeItem represents a geometric shape, such as a decoration line.
type ShapeItem struct {
	Shape  Shape
	Fill   *Paint
	Stroke *Stroke
}

func (*ShapeItem) isFrameItem() {}

// Shape is the interface for geometric shapes.
type Shape interface {
	isShape()
}

// LineShape represents a straight line from the item's position to the
// given target offset.
type LineShape struct {
	Target Point
}

func (LineShape) isShape() {}

// RectShape represents an axis-aligned rectangle.
type RectShape struct {
	Size Size
}

func (RectShape) isShape() {}

// Paint represents a solid fill color.
type Paint struct {
	R, G, B, A uint8
}

// Black is the default text fill.
var Black = Paint{A: 255}

// Stroke represents stroke properties for shapes.
type Stroke struct {
	Paint     Paint
	Thickness Abs
}
