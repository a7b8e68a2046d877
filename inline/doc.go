// Package inline implements text shaping with font fallback and the
// justification model built on top of it.
//
// [Shape] turns a run of text with style attributes into a [ShapedText]
// of positioned glyphs. A line breaker can slice a ShapedText through
// [ShapedText.Reshape] without re-invoking the shaper when the cut
// points are safe to break, and convert it into a frame of positioned
// text items with [ShapedText.Build].
package inline
