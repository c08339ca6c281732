package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"touching edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"touching vertically", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 2, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
			if got := tt.a.F().Intersects(tt.b.F()); got != tt.expected {
				t.Errorf("RectF.Intersects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(5, 5, 3, 2)
	tests := []struct {
		x, y     int
		expected bool
	}{
		{5, 5, true},
		{7, 6, true},
		{8, 5, false},
		{5, 7, false},
		{4, 5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectFCells(t *testing.T) {
	tests := []struct {
		name string
		r    RectF
		want Rect
	}{
		{"aligned", RectF{X: 2, Y: 3, W: 6, H: 4}, NewRect(2, 3, 6, 4)},
		{"fractional", RectF{X: 2.5, Y: 3.2, W: 4.5, H: 3}, NewRect(2, 3, 5, 4)},
		{"negative origin", RectF{X: -0.5, Y: 0, W: 1, H: 1}, NewRect(-1, 0, 2, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Cells(); got != tt.want {
				t.Errorf("Cells() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestRectFInset(t *testing.T) {
	r := RectF{X: 0, Y: 0, W: 6, H: 4}.Inset(0.05)
	other := RectF{X: 6, Y: 0, W: 1, H: 4}
	if r.Intersects(other) {
		t.Error("inset rect should not touch its neighbour")
	}
	if r.Right() >= 6 || r.Bottom() >= 4 {
		t.Errorf("inset rect = %+v", r)
	}
}

func TestVec(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(Vec{1, 1}).Sub(Vec{0, 2}).Scale(2); got != (Vec{8, 6}) {
		t.Errorf("arithmetic = %+v", got)
	}
	if x, y := (Vec{1.5, -0.4}).Round(); x != 2 || y != 0 {
		t.Errorf("Round() = (%d, %d)", x, y)
	}
}

func TestClampMinMax(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp")
	}
	if Min(5, 10) != 5 || Max(5, 10) != 10 || Max(-1, -3) != -1 {
		t.Error("Min/Max")
	}
}
