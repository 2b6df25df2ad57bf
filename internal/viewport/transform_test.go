package viewport

import (
	"math"
	"testing"

	"affinity-map/pkg/geometry"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func assertPoint(t *testing.T, what string, got, want geometry.Point2D) {
	t.Helper()
	if !near(got.X, want.X) || !near(got.Y, want.Y) {
		t.Fatalf("%s = (%v, %v), want (%v, %v)", what, got.X, got.Y, want.X, want.Y)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	t.Parallel()

	viewports := []Viewport{
		Identity(),
		{Pan: geometry.NewPoint2D(175, 125), Zoom: 1},
		{Pan: geometry.NewPoint2D(-3000.5, 42.25), Zoom: MinZoom},
		{Pan: geometry.NewPoint2D(12, -987.125), Zoom: MaxZoom},
		{Pan: geometry.NewPoint2D(1e6, -1e6), Zoom: 0.37},
	}
	points := []geometry.Point2D{
		{},
		geometry.NewPoint2D(100, 100),
		geometry.NewPoint2D(-250.75, 1e5),
		geometry.NewPoint2D(1e-9, -3.3333),
	}
	for _, v := range viewports {
		for _, p := range points {
			assertPoint(t, "screenToWorld(worldToScreen(p))", ScreenToWorld(WorldToScreen(p, v), v), p)
			assertPoint(t, "worldToScreen(screenToWorld(p))", v.WorldToScreen(v.ScreenToWorld(p)), p)
		}
	}
}

func TestScreenToWorldFormula(t *testing.T) {
	t.Parallel()

	v := Viewport{Pan: geometry.NewPoint2D(50, -20), Zoom: 2}
	got := v.ScreenToWorld(geometry.NewPoint2D(250, 180))
	assertPoint(t, "world", got, geometry.NewPoint2D(100, 100))
}

func TestAffineMatchesWorldToScreen(t *testing.T) {
	t.Parallel()

	v := Viewport{Pan: geometry.NewPoint2D(13, -7), Zoom: 0.75}
	m := v.Affine()
	p := geometry.NewPoint2D(400, 90)
	got := geometry.NewPoint2D(m[0]*p.X+m[1]*p.Y+m[2], m[3]*p.X+m[4]*p.Y+m[5])
	assertPoint(t, "affine", got, v.WorldToScreen(p))
}

func TestClampZoom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.1, MinZoom},
		{-4, MinZoom},
		{5, MaxZoom},
		{math.Inf(1), MaxZoom},
		{math.NaN(), 1},
		{0.25, 0.25},
		{2, 2},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Fatalf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTouchDistance(t *testing.T) {
	t.Parallel()

	if got := TouchDistance(); got != 0 {
		t.Fatalf("no points = %v, want 0", got)
	}
	if got := TouchDistance(geometry.NewPoint2D(3, 4)); got != 0 {
		t.Fatalf("one point = %v, want 0", got)
	}
	if got := TouchDistance(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(3, 4)); !near(got, 5) {
		t.Fatalf("distance = %v, want 5", got)
	}
}

func TestTouchCentroid(t *testing.T) {
	t.Parallel()

	single := geometry.NewPoint2D(7, 9)
	assertPoint(t, "single", TouchCentroid(single), single)
	assertPoint(t, "pair", TouchCentroid(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, -4)), geometry.NewPoint2D(5, -2))
	assertPoint(t, "none", TouchCentroid(), geometry.Point2D{})
}

func TestViewportClampedResetsNonFinitePan(t *testing.T) {
	t.Parallel()

	v := Viewport{Pan: geometry.NewPoint2D(math.NaN(), 3), Zoom: 9}.Clamped()
	if v.Zoom != MaxZoom {
		t.Fatalf("zoom = %v, want %v", v.Zoom, MaxZoom)
	}
	if v.Pan != (geometry.Point2D{}) {
		t.Fatalf("pan = %+v, want origin", v.Pan)
	}
}
