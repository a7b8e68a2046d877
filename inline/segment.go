package inline

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/boergens/typeset/text"
)

// ShapeRange shapes a paragraph's text, splitting it into directional
// runs first. The runs are returned in visual order. The dir gives the
// paragraph's dominant direction; vertical directions are an
// unsupported configuration.
func ShapeRange(
	world World,
	base int,
	txt string,
	spans SpanMapper,
	styles *text.Styles,
	dir Dir,
) ([]*ShapedText, error) {
	if dir.IsVertical() {
		return nil, ErrVerticalText
	}
	if len(txt) == 0 {
		return nil, nil
	}

	def := bidi.LeftToRight
	if dir == DirRTL {
		def = bidi.RightToLeft
	}

	var para bidi.Paragraph
	if _, err := para.SetString(txt, bidi.DefaultDirection(def)); err != nil {
		run := shapeHorizontal(world, base, txt, spans, styles, dir)
		return []*ShapedText{run}, nil
	}
	ordering, err := para.Order()
	if err != nil {
		run := shapeHorizontal(world, base, txt, spans, styles, dir)
		return []*ShapedText{run}, nil
	}

	// Run positions are rune indices into the paragraph; glyph ranges
	// work in byte offsets.
	runes := []rune(txt)
	runeToByte := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		runeToByte[i] = offset
		offset += len(string(r))
	}
	runeToByte[len(runes)] = offset

	runs := make([]*ShapedText, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		segment := run.String()
		if segment == "" {
			continue
		}
		start, _ := run.Pos()

		runDir := DirLTR
		if run.Direction() == bidi.RightToLeft {
			runDir = DirRTL
		}

		runs = append(runs, shapeHorizontal(world, base+runeToByte[start], segment, spans, styles, runDir))
	}
	return runs, nil
}
