package viewport

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"affinity-map/pkg/geometry"
)

// DefaultMargin is the minimum number of screen pixels of card area kept on
// screen by the clamp-to-margin policy.
const DefaultMargin = 200.0

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown pan policy")

// Policy selects how a candidate pan is corrected against the card bounds.
type Policy int

const (
	// PolicyClampToMargin keeps at least the margin of card area on screen.
	PolicyClampToMargin Policy = iota
	// PolicyKeepVisible only intervenes once the cards would leave the screen
	// entirely, snapping the nearest edge back to the viewport edge.
	PolicyKeepVisible
)

func (p Policy) String() string {
	switch p {
	case PolicyClampToMargin:
		return "margin"
	case PolicyKeepVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "margin", "clamp", "clamp-to-margin":
		return PolicyClampToMargin, nil
	case "visible", "keep-visible":
		return PolicyKeepVisible, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Constrain corrects a candidate pan with the given policy. A nil bounds means
// there are no cards and the pan is returned unchanged.
func Constrain(policy Policy, pan geometry.Point2D, zoom float64, size geometry.Size, bounds *Bounds, margin float64) geometry.Point2D {
	switch policy {
	case PolicyKeepVisible:
		return KeepVisible(pan, zoom, size, bounds)
	default:
		return ClampToMargin(pan, zoom, size, bounds, margin)
	}
}

// ClampToMargin clamps each pan component into
// [-max*zoom + margin, size - min*zoom - margin]. When the viewport is too small
// for both limits the lower limit wins.
func ClampToMargin(pan geometry.Point2D, zoom float64, size geometry.Size, bounds *Bounds, margin float64) geometry.Point2D {
	if bounds == nil {
		return pan
	}
	minX := -bounds.MaxX*zoom + margin
	maxX := size.Width - bounds.MinX*zoom - margin
	minY := -bounds.MaxY*zoom + margin
	maxY := size.Height - bounds.MinY*zoom - margin
	return geometry.Point2D{
		X: clamp(pan.X, minX, maxX),
		Y: clamp(pan.Y, minY, maxY),
	}
}

// KeepVisible returns pan unchanged while any part of the bounds is on screen.
// On each axis where the bounds lie fully outside the viewport, the pan is
// snapped so the nearest bounds edge touches the matching viewport edge.
func KeepVisible(pan geometry.Point2D, zoom float64, size geometry.Size, bounds *Bounds) geometry.Point2D {
	if bounds == nil {
		return pan
	}
	out := pan
	left := bounds.MinX*zoom + pan.X
	right := bounds.MaxX*zoom + pan.X
	top := bounds.MinY*zoom + pan.Y
	bottom := bounds.MaxY*zoom + pan.Y

	switch {
	case right < 0:
		out.X = -bounds.MaxX * zoom
	case left > size.Width:
		out.X = size.Width - bounds.MinX*zoom
	}
	switch {
	case bottom < 0:
		out.Y = -bounds.MaxY * zoom
	case top > size.Height:
		out.Y = size.Height - bounds.MinY*zoom
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
