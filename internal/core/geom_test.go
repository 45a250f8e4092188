package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "disjoint horizontal",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "disjoint vertical",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching right edge",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching bottom edge",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 0, Y: 10, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained",
			a:        RectF{X: 0, Y: 0, W: 40, H: 40},
			b:        RectF{X: 18, Y: 18, W: 4, H: 4},
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 9.5, Y: 9.5, W: 4, H: 15},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	f := RectF{X: 1.5, Y: 2, W: 4, H: 15}
	if f.Right() != 5.5 || f.Bottom() != 17 {
		t.Errorf("RectF edges = (%v, %v), expected (5.5, 17)", f.Right(), f.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{365, 360, 550, 365},
		{355, 360, 550, 360},
		{555, 360, 550, 550},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
