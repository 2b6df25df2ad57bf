package colorutil

import "testing"

func TestTagColorIsStable(t *testing.T) {
	t.Parallel()

	if TagColor("choir") != TagColor("choir") {
		t.Error("same tag gave different colours")
	}
	if TagColor("choir") == TagColor("youth") {
		t.Error("different tags collided")
	}
	if c := TagColor("x"); c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
}

func TestHSVToRGB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		h, s, v float64
		r, g, b uint8
	}{
		{0, 1, 1, 255, 0, 0},
		{120, 1, 1, 0, 255, 0},
		{240, 1, 1, 0, 0, 255},
		{360, 1, 1, 255, 0, 0},
		{-120, 1, 1, 0, 0, 255},
		{0, 0, 0.5, 128, 128, 128},
	}
	for _, tt := range tests {
		r, g, b := HSVToRGB(tt.h, tt.s, tt.v)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("HSVToRGB(%v,%v,%v) = %d,%d,%d; want %d,%d,%d", tt.h, tt.s, tt.v, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
