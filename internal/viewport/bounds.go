package viewport

import (
	"affinity-map/internal/board"
	"affinity-map/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bounds is the axis-aligned box around every card footprint, in world units.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// ComputeBounds returns the box enclosing all card footprints, or nil when there
// are no cards. Every card counts as board.CardWidth x board.CardHeight.
func ComputeBounds(cards []board.Card) *Bounds {
	if len(cards) == 0 {
		return nil
	}
	box := cards[0].Rect().Box()
	for _, c := range cards[1:] {
		box = box.Union(c.Rect().Box())
	}
	return boundsFromBox(box)
}

func boundsFromBox(b r2.Box) *Bounds {
	return &Bounds{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
}

// Center returns the middle of the box.
func (b Bounds) Center() geometry.Point2D {
	return geometry.Point2D{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }
