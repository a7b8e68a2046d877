package inline

import (
	"math"
	"sort"

	"github.com/go-text/typesetting/font/opentype"

	"github.com/boergens/typeset/font"
	"github.com/boergens/typeset/layout"
	"github.com/boergens/typeset/text"
)

// Decorate adds a line decoration over a built text item to the frame.
// The shift is the baseline shift the item was placed with, pos its
// position in the frame, and width its justified width.
func Decorate(
	frame *layout.Frame,
	deco *text.Decoration,
	item *layout.TextItem,
	shift layout.Abs,
	pos layout.Point,
	width layout.Abs,
) {
	fontMetrics := item.Font.Metrics()

	var stroke *layout.Stroke
	var metrics font.LineMetrics
	var userOffset *layout.Abs
	var evade, background bool

	switch d := deco.Line.(type) {
	case *text.StrikethroughDeco:
		stroke = d.Stroke
		metrics = fontMetrics.Strikethrough
		userOffset = d.Offset
		background = d.Background
	case *text.OverlineDeco:
		stroke = d.Stroke
		metrics = fontMetrics.Overline
		userOffset = d.Offset
		evade = d.Evade
		background = d.Background
	case *text.UnderlineDeco:
		stroke = d.Stroke
		metrics = fontMetrics.Underline
		userOffset = d.Offset
		evade = d.Evade
		background = d.Background
	default:
		return
	}

	offset := -layout.Em(metrics.Position).At(item.Size) - shift
	if userOffset != nil {
		offset = -*userOffset - shift
	}

	if stroke == nil {
		stroke = &layout.Stroke{
			Paint:     item.Fill,
			Thickness: layout.Em(metrics.Thickness).At(item.Size),
		}
	}

	gapPadding := 0.08 * item.Size
	minWidth := 0.162 * item.Size

	start := pos.X - deco.Extent
	end := pos.X + width + deco.Extent
	lineY := pos.Y + offset

	pushSegment := func(from, to layout.Abs) {
		if to-from < minWidth && evade {
			return
		}
		shape := &layout.ShapeItem{
			Shape:  layout.LineShape{Target: layout.Point{X: to - from}},
			Stroke: stroke,
		}
		at := layout.Point{X: from, Y: lineY}
		if background {
			frame.Prepend(at, shape)
		} else {
			frame.Push(at, shape)
		}
	}

	if !evade {
		pushSegment(start, end)
		return
	}

	// Find the places where the line would cross glyph outlines and
	// interrupt it there.
	var intersections []layout.Abs
	var x layout.Abs
	for _, g := range item.Glyphs {
		dx := g.XOffset.At(item.Size) + x
		x += g.XAdvance.At(item.Size)

		segments, ok := item.Font.Outline(g.ID)
		if !ok {
			continue
		}
		for _, ix := range intersectOutline(segments, item.Font, item.Size, float64(offset)) {
			intersections = append(intersections, layout.Abs(ix)+dx+pos.X)
		}
	}

	intersections = append(intersections, start-gapPadding, end+gapPadding)
	sort.Slice(intersections, func(i, j int) bool {
		return intersections[i] < intersections[j]
	})

	// Outlines are closed curves, so intersections pair up into
	// intervals inside a glyph; the line is drawn between them.
	for i := 0; i+1 < len(intersections); i += 2 {
		left := intersections[i]
		right := intersections[i+1]
		if right-left < gapPadding {
			continue
		}
		pushSegment(left+gapPadding, right-gapPadding)
	}
}

// intersectOutline returns the x coordinates where the horizontal line
// at lineY crosses the glyph outline. Coordinates are absolute lengths
// relative to the glyph origin, with y growing downwards from the
// baseline.
func intersectOutline(
	segments []opentype.Segment,
	f *font.Font,
	size layout.Abs,
	lineY float64,
) []float64 {
	toX := func(p opentype.SegmentPoint) float64 {
		return float64(layout.Em(f.ToEm(p.X)).At(size))
	}
	toY := func(p opentype.SegmentPoint) float64 {
		return float64(-layout.Em(f.ToEm(p.Y)).At(size))
	}

	var results []float64
	var curX, curY float64
	for _, seg := range segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			curX, curY = toX(seg.Args[0]), toY(seg.Args[0])
		case opentype.SegmentOpLineTo:
			x, y := toX(seg.Args[0]), toY(seg.Args[0])
			results = append(results, lineIntersections(curX, curY, x, y, lineY)...)
			curX, curY = x, y
		case opentype.SegmentOpQuadTo:
			cx, cy := toX(seg.Args[0]), toY(seg.Args[0])
			x, y := toX(seg.Args[1]), toY(seg.Args[1])
			results = append(results, quadIntersections(curX, curY, cx, cy, x, y, lineY)...)
			curX, curY = x, y
		case opentype.SegmentOpCubeTo:
			c1x, c1y := toX(seg.Args[0]), toY(seg.Args[0])
			c2x, c2y := toX(seg.Args[1]), toY(seg.Args[1])
			x, y := toX(seg.Args[2]), toY(seg.Args[2])
			results = append(results, cubicIntersections(curX, curY, c1x, c1y, c2x, c2y, x, y, lineY, 0)...)
			curX, curY = x, y
		}
	}
	return results
}

// lineIntersections finds where a line segment crosses the horizontal
// line at y.
func lineIntersections(x0, y0, x1, y1, y float64) []float64 {
	yMin, yMax := y0, y1
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}
	if y < yMin || y > yMax || y0 == y1 {
		return nil
	}
	t := (y - y0) / (y1 - y0)
	return []float64{x0 + t*(x1-x0)}
}

// quadIntersections finds where a quadratic Bezier crosses the
// horizontal line at y.
func quadIntersections(x0, y0, x1, y1, x2, y2, y float64) []float64 {
	// (y0 - 2y1 + y2)t² + 2(y1 - y0)t + (y0 - y) = 0
	a := y0 - 2*y1 + y2
	b := 2 * (y1 - y0)
	c := y0 - y

	at := func(t float64) float64 {
		return (1-t)*(1-t)*x0 + 2*(1-t)*t*x1 + t*t*x2
	}

	var results []float64
	if math.Abs(a) < 1e-10 {
		if math.Abs(b) > 1e-10 {
			if t := -c / b; t >= 0 && t <= 1 {
				results = append(results, at(t))
			}
		}
		return results
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sqrtDisc := math.Sqrt(disc)
	for _, t := range []float64{(-b + sqrtDisc) / (2 * a), (-b - sqrtDisc) / (2 * a)} {
		if t >= 0 && t <= 1 {
			results = append(results, at(t))
		}
	}
	return results
}

// cubicIntersections finds where a cubic Bezier crosses the horizontal
// line at y, by subdividing until the curve is flat enough to treat as
// a line.
func cubicIntersections(x0, y0, x1, y1, x2, y2, x3, y3, y float64, depth int) []float64 {
	yMin := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	yMax := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	if y < yMin || y > yMax {
		return nil
	}

	if depth > 10 || flatEnough(x0, y0, x1, y1, x2, y2, x3, y3) {
		return lineIntersections(x0, y0, x3, y3, y)
	}

	// De Casteljau subdivision at t = 0.5.
	mx0, my0 := (x0+x1)/2, (y0+y1)/2
	mx1, my1 := (x1+x2)/2, (y1+y2)/2
	mx2, my2 := (x2+x3)/2, (y2+y3)/2
	mx3, my3 := (mx0+mx1)/2, (my0+my1)/2
	mx4, my4 := (mx1+mx2)/2, (my1+my2)/2
	mx5, my5 := (mx3+mx4)/2, (my3+my4)/2

	var results []float64
	results = append(results, cubicIntersections(x0, y0, mx0, my0, mx3, my3, mx5, my5, y, depth+1)...)
	results = append(results, cubicIntersections(mx5, my5, mx4, my4, mx2, my2, x3, y3, y, depth+1)...)
	return results
}

// flatEnough reports whether both control points are close to the
// chord from start to end.
func flatEnough(x0, y0, x1, y1, x2, y2, x3, y3 float64) bool {
	const tolerance = 0.5
	dx := x3 - x0
	dy := y3 - y0
	d := math.Sqrt(dx*dx + dy*dy)
	if d < 1e-10 {
		return true
	}
	d1 := math.Abs((x1-x0)*dy-(y1-y0)*dx) / d
	d2 := math.Abs((x2-x0)*dy-(y2-y0)*dx) / d
	return d1 < tolerance && d2 < tolerance
}
