// Package viewport maps between screen space and world space for a pannable,
// zoomable board, and interprets pointer gestures into pan, zoom and card moves.
package viewport

import (
	"math"

	"affinity-map/pkg/geometry"

	"golang.org/x/image/math/f64"
)

// Zoom limits.
const (
	MinZoom = 0.25
	MaxZoom = 2.0
)

// Viewport is the current world-to-screen transform: screen = world*Zoom + Pan.
type Viewport struct {
	Pan  geometry.Point2D `json:"pan"`
	Zoom float64          `json:"zoom"`
}

// Identity returns the viewport with no pan and unit zoom.
func Identity() Viewport {
	return Viewport{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to 1.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Clamped returns v with its zoom clamped into range and non-finite pan reset.
func (v Viewport) Clamped() Viewport {
	v.Zoom = ClampZoom(v.Zoom)
	if !v.Pan.IsFinite() {
		v.Pan = geometry.Point2D{}
	}
	return v
}

// ScreenToWorld converts a screen point to world space: (screen - pan) / zoom.
func (v Viewport) ScreenToWorld(screen geometry.Point2D) geometry.Point2D {
	return screen.Sub(v.Pan).Scale(1 / v.Zoom)
}

// WorldToScreen converts a world point to screen space: world*zoom + pan.
func (v Viewport) WorldToScreen(world geometry.Point2D) geometry.Point2D {
	return world.Scale(v.Zoom).Add(v.Pan)
}

// ScreenToWorld is the function form of Viewport.ScreenToWorld.
func ScreenToWorld(screen geometry.Point2D, v Viewport) geometry.Point2D {
	return v.ScreenToWorld(screen)
}

// WorldToScreen is the function form of Viewport.WorldToScreen.
func WorldToScreen(world geometry.Point2D, v Viewport) geometry.Point2D {
	return v.WorldToScreen(world)
}

// Affine returns the world-to-screen transform as a row-major 2x3 matrix.
func (v Viewport) Affine() f64.Aff3 {
	return f64.Aff3{
		v.Zoom, 0, v.Pan.X,
		0, v.Zoom, v.Pan.Y,
	}
}

// AnchoredPan returns the pan that puts world point anchor under the screen
// point at the given zoom.
func AnchoredPan(screen, anchor geometry.Point2D, zoom float64) geometry.Point2D {
	return screen.Sub(anchor.Scale(zoom))
}

// TouchDistance returns the distance between the first two points, or 0 when
// fewer than two are supplied.
func TouchDistance(points ...geometry.Point2D) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[0].Distance(points[1])
}

// TouchCentroid returns the midpoint of the first two points. A single point is
// returned as is; no points yields the origin.
func TouchCentroid(points ...geometry.Point2D) geometry.Point2D {
	switch len(points) {
	case 0:
		return geometry.Point2D{}
	case 1:
		return points[0]
	default:
		return points[0].Midpoint(points[1])
	}
}
