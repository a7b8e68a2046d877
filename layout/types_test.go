package layout

import "testing"

func TestEmAt(t *testing.T) {
	tests := []struct {
		name     string
		em       Em
		size     Abs
		expected Abs
	}{
		{"zero em at any size", 0, 12, 0},
		{"1em at 12pt", 1, 12, 12},
		{"0.5em at 12pt", 0.5, 12, 6},
		{"1em at 16pt", 1, 16, 16},
		{"2em at 10pt", 2, 10, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.em.At(tc.size); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestEmFromLength(t *testing.T) {
	tests := []struct {
		name     string
		abs      Abs
		size     Abs
		expected Em
	}{
		{"12pt at 12pt", 12, 12, 1},
		{"6pt at 12pt", 6, 12, 0.5},
		{"24pt at 12pt", 24, 12, 2},
		{"zero size returns zero", 12, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EmFromLength(tc.abs, tc.size); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestEmFromUnits(t *testing.T) {
	if got := EmFromUnits(500, 1000); got != 0.5 {
		t.Errorf("EmFromUnits(500, 1000) = %v, want 0.5", got)
	}
	if got := EmFromUnits(500, 0); got != 0 {
		t.Errorf("EmFromUnits(500, 0) = %v, want 0", got)
	}
}

func TestRelRelativeTo(t *testing.T) {
	tests := []struct {
		name     string
		rel      Rel
		whole    Abs
		expected Abs
	}{
		{"pure ratio", RelFromRatio(0.5), 10, 5},
		{"pure absolute", RelFromAbs(3), 10, 3},
		{"combined", Rel{Rel: 0.5, Abs: 2}, 10, 7},
		{"zero", Rel{}, 10, 0},
		{"200 percent", RelFromRatio(2), 6, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rel.RelativeTo(tc.whole); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 5, End: 10}

	tests := []struct {
		index    int
		expected bool
	}{
		{4, false},
		{5, true},
		{7, true},
		{9, true},
		{10, false},
		{11, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.index); got != tc.expected {
			t.Errorf("Range{5,10}.Contains(%d) = %v, want %v", tc.index, got, tc.expected)
		}
	}

	if r.Len() != 5 {
		t.Errorf("Len() = %d, want 5", r.Len())
	}
	if r.IsEmpty() {
		t.Error("Range{5,10}.IsEmpty() = true")
	}
	if !(Range{Start: 3, End: 3}).IsEmpty() {
		t.Error("Range{3,3}.IsEmpty() = false")
	}
}

func TestFrameGrowWidth(t *testing.T) {
	frame := NewFrame(Size{Width: 10, Height: 4})
	frame.SetBaseline(3)
	frame.GrowWidth(2)

	if frame.Width() != 12 {
		t.Errorf("Width() = %v, want 12", frame.Width())
	}
	if frame.Height() != 4 {
		t.Errorf("Height() = %v, want 4", frame.Height())
	}
	if frame.Baseline() != 3 {
		t.Errorf("Baseline() = %v, want 3", frame.Baseline())
	}
}

func TestFramePushOrder(t *testing.T) {
	frame := NewFrame(Size{})
	a := &ShapeItem{Shape: LineShape{}}
	b := &ShapeItem{Shape: LineShape{}}
	c := &ShapeItem{Shape: LineShape{}}

	frame.Push(Point{X: 1}, a)
	frame.Push(Point{X: 2}, b)
	frame.Prepend(Point{X: 3}, c)

	items := frame.Items()
	if len(items) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(items))
	}
	if items[0].Item != FrameItem(c) || items[1].Item != FrameItem(a) || items[2].Item != FrameItem(b) {
		t.Error("Prepend did not place item first")
	}
}
