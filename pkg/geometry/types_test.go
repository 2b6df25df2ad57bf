package geometry

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	t.Parallel()

	a, b := NewPoint2D(3, 4), NewPoint2D(-1, 2)
	if got := a.Add(b); got != NewPoint2D(2, 6) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != NewPoint2D(4, 2) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(0.5); got != NewPoint2D(1.5, 2) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Midpoint(b); got != NewPoint2D(1, 3) {
		t.Errorf("Midpoint = %+v", got)
	}
	if got := NewPoint2D(0, 0).Distance(a); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	t.Parallel()

	if !NewPoint2D(1, -1).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	for _, p := range []Point2D{
		{X: math.NaN()},
		{Y: math.Inf(1)},
		{X: math.Inf(-1)},
	} {
		if p.IsFinite() {
			t.Errorf("%+v reported finite", p)
		}
	}
}

func TestRect(t *testing.T) {
	t.Parallel()

	r := NewRect(100, 100, 250, 150)
	box := r.Box()
	if box.Min.X != 100 || box.Max.Y != 250 {
		t.Errorf("Box = %+v", box)
	}

	tests := []struct {
		p    Point2D
		want bool
	}{
		{NewPoint2D(100, 100), true},
		{NewPoint2D(350, 250), true},
		{NewPoint2D(200, 99.9), false},
		{NewPoint2D(351, 200), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSize(t *testing.T) {
	t.Parallel()

	if got := NewSize(800, 600).Center(); got != NewPoint2D(400, 300) {
		t.Errorf("Center = %+v", got)
	}
	if NewSize(800, 600).Empty() {
		t.Error("800x600 reported empty")
	}
	if !NewSize(0, 600).Empty() || !(Size{}).Empty() {
		t.Error("zero size not empty")
	}
}
