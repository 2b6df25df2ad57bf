package viewport

import (
	"affinity-map/internal/board"
	"affinity-map/pkg/geometry"
)

// Default input tuning.
const (
	DefaultWheelSensitivity = 0.001
	DefaultZoomStep         = 0.25
)

// CardSet is the card collection the controller reads bounds from and writes
// drags into.
type CardSet interface {
	CardLookup
	Cards() []board.Card
	Move(id string, pos geometry.Point2D) bool
}

// Settings tunes constraint and input behaviour.
type Settings struct {
	Policy           Policy
	Margin           float64
	WheelSensitivity float64
	ZoomStep         float64
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Policy:           PolicyClampToMargin,
		Margin:           DefaultMargin,
		WheelSensitivity: DefaultWheelSensitivity,
		ZoomStep:         DefaultZoomStep,
	}
}

// Delta reports what an operation changed.
type Delta struct {
	Viewport        Viewport
	ViewportChanged bool
	Card            *CardMove
	// Constrained is set when the pan constraint ran.
	Constrained bool
}

// Controller owns the viewport. All mutation goes through its methods, which
// are expected to run on a single event loop.
type Controller struct {
	vp         Viewport
	size       geometry.Size
	cards      CardSet
	recognizer Recognizer
	settings   Settings

	onGestureStart func(kind Kind)
	onChange       func(v Viewport)
}

// NewController creates a controller over the given cards.
func NewController(cards CardSet, settings Settings) *Controller {
	if settings.Margin < 0 {
		settings.Margin = 0
	}
	if settings.WheelSensitivity <= 0 {
		settings.WheelSensitivity = DefaultWheelSensitivity
	}
	if settings.ZoomStep <= 0 {
		settings.ZoomStep = DefaultZoomStep
	}
	return &Controller{
		vp:       Identity(),
		cards:    cards,
		settings: settings,
	}
}

// Viewport returns the current viewport.
func (c *Controller) Viewport() Viewport {
	return c.vp
}

// Settings returns the controller tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Gesture returns the active gesture kind.
func (c *Controller) Gesture() Kind {
	return c.recognizer.Kind()
}

// SetSize records the on-screen viewport size used by constraints.
func (c *Controller) SetSize(size geometry.Size) {
	c.size = size
}

// Size returns the last recorded viewport size.
func (c *Controller) Size() geometry.Size {
	return c.size
}

// OnGestureStart registers a callback run whenever a pan, pinch or drag begins.
// Menus use it to close themselves.
func (c *Controller) OnGestureStart(callback func(kind Kind)) {
	c.onGestureStart = callback
}

// OnChange registers a callback run after every viewport change.
func (c *Controller) OnChange(callback func(v Viewport)) {
	c.onChange = callback
}

// Restore replaces the viewport, e.g. from persisted state. Zoom is clamped.
func (c *Controller) Restore(v Viewport) {
	c.set(v.Clamped())
}

// HitTest returns the id of the topmost card under a screen point.
func (c *Controller) HitTest(screen geometry.Point2D) (string, bool) {
	if c.cards == nil {
		return "", false
	}
	card, ok := board.HitTest(c.cards.Cards(), c.vp.ScreenToWorld(screen))
	return card.ID, ok
}

// ApplyGestureEvent routes a pointer event through the gesture state machine.
// Moves apply the unconstrained pan; the constraint runs once when a pan or
// pinch ends.
func (c *Controller) ApplyGestureEvent(ev Event) Delta {
	out := c.recognizer.Handle(ev, c.vp, c.cards)
	if out.Began && c.onGestureStart != nil {
		c.onGestureStart(c.recognizer.Kind())
	}

	var d Delta
	if out.ViewportChanged {
		c.set(out.Viewport)
		d.Viewport, d.ViewportChanged = c.vp, true
	}
	if out.Card != nil && c.cards != nil && c.cards.Move(out.Card.ID, out.Card.Position) {
		d.Card = out.Card
	}
	if out.Ended {
		d.Constrained = true
		if c.constrain() {
			d.Viewport, d.ViewportChanged = c.vp, true
		}
	}
	if !d.ViewportChanged {
		d.Viewport = c.vp
	}
	return d
}

// Wheel zooms around the cursor. A positive delta zooms out. The constraint
// runs on every tick since wheel input has no end event.
func (c *Controller) Wheel(cursor geometry.Point2D, delta float64) Delta {
	zoom := ClampZoom(c.vp.Zoom - delta*c.settings.WheelSensitivity)
	return c.zoomAround(cursor, zoom)
}

// ZoomIn steps the zoom up around the viewport centre.
func (c *Controller) ZoomIn() Delta {
	return c.zoomAround(c.size.Center(), ClampZoom(c.vp.Zoom+c.settings.ZoomStep))
}

// ZoomOut steps the zoom down around the viewport centre.
func (c *Controller) ZoomOut() Delta {
	return c.zoomAround(c.size.Center(), ClampZoom(c.vp.Zoom-c.settings.ZoomStep))
}

// SetZoom sets an absolute zoom around the viewport centre.
func (c *Controller) SetZoom(zoom float64) Delta {
	return c.zoomAround(c.size.Center(), ClampZoom(zoom))
}

func (c *Controller) zoomAround(anchor geometry.Point2D, zoom float64) Delta {
	before := c.vp.Pan
	world := c.vp.ScreenToWorld(anchor)
	c.set(Viewport{Zoom: zoom, Pan: AnchoredPan(anchor, world, zoom)})
	c.constrain()
	// a pan in progress continues from the zoomed viewport
	c.recognizer.shiftPan(c.vp.Pan.Sub(before))
	return Delta{Viewport: c.vp, ViewportChanged: true, Constrained: true}
}

// Recenter puts the centre of all cards in the middle of a viewport of the
// given size, keeping the zoom. With no cards it does nothing and reports false.
func (c *Controller) Recenter(size geometry.Size) bool {
	c.size = size
	if c.cards == nil {
		return false
	}
	return c.centerOn(ComputeBounds(c.cards.Cards()))
}

// RecenterOn centres the given cards, e.g. one person's pair.
func (c *Controller) RecenterOn(cards []board.Card) bool {
	return c.centerOn(ComputeBounds(cards))
}

func (c *Controller) centerOn(b *Bounds) bool {
	if b == nil {
		return false
	}
	before := c.vp.Pan
	c.set(Viewport{
		Zoom: c.vp.Zoom,
		Pan:  c.size.Center().Sub(b.Center().Scale(c.vp.Zoom)),
	})
	c.recognizer.shiftPan(c.vp.Pan.Sub(before))
	Logger().Debug("viewport: recentered", "panX", c.vp.Pan.X, "panY", c.vp.Pan.Y)
	return true
}

func (c *Controller) constrain() bool {
	if c.cards == nil || c.size.Empty() {
		return false
	}
	pan := Constrain(c.settings.Policy, c.vp.Pan, c.vp.Zoom, c.size,
		ComputeBounds(c.cards.Cards()), c.settings.Margin)
	if pan == c.vp.Pan {
		return false
	}
	Logger().Debug("viewport: pan constrained",
		"fromX", c.vp.Pan.X, "fromY", c.vp.Pan.Y, "toX", pan.X, "toY", pan.Y)
	c.set(Viewport{Pan: pan, Zoom: c.vp.Zoom})
	return true
}

func (c *Controller) set(v Viewport) {
	v.Zoom = ClampZoom(v.Zoom)
	if v == c.vp {
		return
	}
	c.vp = v
	if c.onChange != nil {
		c.onChange(v)
	}
}
