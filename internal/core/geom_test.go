package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{Left: 0, Top: 0, Right: 10, Bottom: 10},
			b:        Box{Left: 5, Top: 5, Right: 15, Bottom: 15},
			expected: true,
		},
		{
			name:     "touching horizontally (no overlap)",
			a:        Box{Left: 0, Top: 0, Right: 10, Bottom: 10},
			b:        Box{Left: 10, Top: 0, Right: 20, Bottom: 10},
			expected: false,
		},
		{
			name:     "touching vertically (no overlap)",
			a:        Box{Left: 0, Top: 0, Right: 10, Bottom: 10},
			b:        Box{Left: 0, Top: 10, Right: 10, Bottom: 20},
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        Box{Left: 0, Top: 0, Right: 10, Bottom: 10},
			b:        Box{Left: 0, Top: 9.999, Right: 10, Bottom: 20},
			expected: true,
		},
		{
			name:     "contained box",
			a:        Box{Left: 0, Top: 0, Right: 20, Bottom: 20},
			b:        Box{Left: 5, Top: 5, Right: 6, Bottom: 6},
			expected: true,
		},
		{
			name:     "far apart",
			a:        Box{Left: 0, Top: 0, Right: 10, Bottom: 10},
			b:        Box{Left: 100, Top: 100, Right: 110, Bottom: 110},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCenteredBox(t *testing.T) {
	b := CenteredBox(60, 548, 74.4, 24)

	if b.Left != 60-37.2 || b.Right != 60+37.2 {
		t.Errorf("CenteredBox horizontal = [%f, %f], expected [%f, %f]", b.Left, b.Right, 60-37.2, 60+37.2)
	}
	if b.Top != 548 || b.Bottom != 572 {
		t.Errorf("CenteredBox vertical = [%f, %f], expected [548, 572]", b.Top, b.Bottom)
	}
	if b.Height() != 24 {
		t.Errorf("Height() = %f, expected 24", b.Height())
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"single cell overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
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
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
