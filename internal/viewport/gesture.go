package viewport

import (
	"affinity-map/internal/board"
	"affinity-map/pkg/geometry"
)

// Kind identifies the active gesture.
type Kind int

const (
	Idle Kind = iota
	Panning
	Pinching
	Dragging
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Phase is the pointer lifecycle stage an Event reports.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one pointer or touch lifecycle event. Points holds every contact that
// is active after the event, in screen space; an End that lifts the last contact
// carries no points. Target is the card under the initiating contact, or empty
// for bare canvas.
type Event struct {
	Phase  Phase
	Points []geometry.Point2D
	Target string
}

// CardLookup resolves card ids for drag gestures.
type CardLookup interface {
	Card(id string) (board.Card, bool)
}

// session is the per-gesture state. Only the fields of the active kind are set;
// it is replaced wholesale on every transition.
type session struct {
	kind Kind

	// panning
	startPoint geometry.Point2D
	startPan   geometry.Point2D

	// pinching
	anchorZoom     float64
	anchorPan      geometry.Point2D
	anchorDistance float64
	anchorWorld    geometry.Point2D

	// dragging
	cardID      string
	worldOffset geometry.Point2D
}

// Outcome tells the controller what a handled event produced.
type Outcome struct {
	// Began is set when the event started a new gesture.
	Began bool
	// Ended is set when the event closed a pan or pinch gesture; the pan
	// constraint is applied then and only then.
	Ended bool
	// Viewport is the new unconstrained viewport when ViewportChanged is set.
	Viewport        Viewport
	ViewportChanged bool
	// Card is set when a dragged card moved.
	Card *CardMove
}

// CardMove is a requested card position change.
type CardMove struct {
	ID       string
	Position geometry.Point2D
}

// Recognizer is the gesture state machine. The zero value is idle and ready.
type Recognizer struct {
	s session
}

// Kind returns the active gesture.
func (r *Recognizer) Kind() Kind {
	return r.s.kind
}

// shiftPan moves the start pan of an active pan by d, for viewport changes made
// outside the gesture.
func (r *Recognizer) shiftPan(d geometry.Point2D) {
	if r.s.kind == Panning {
		r.s.startPan = r.s.startPan.Add(d)
	}
}

// Handle advances the state machine. vp is the live viewport; cards resolves
// drag targets.
func (r *Recognizer) Handle(ev Event, vp Viewport, cards CardLookup) Outcome {
	switch ev.Phase {
	case PhaseStart:
		return r.start(ev, vp, cards)
	case PhaseMove:
		return r.move(ev, vp)
	case PhaseEnd:
		return r.end(ev, vp)
	default:
		return Outcome{}
	}
}

func (r *Recognizer) start(ev Event, vp Viewport, cards CardLookup) Outcome {
	n := len(ev.Points)
	switch {
	case n == 0:
		return Outcome{}
	case n >= 2:
		if r.s.kind == Dragging {
			// a contact is classified once; extra fingers do not turn a drag
			// into a pinch
			return Outcome{}
		}
		r.beginPinch(ev.Points, vp)
		return Outcome{Began: true}
	}

	if r.s.kind != Idle {
		Logger().Debug("viewport: discarding stale gesture", "kind", r.s.kind)
	}
	p := ev.Points[0]
	if ev.Target != "" && cards != nil {
		if c, ok := cards.Card(ev.Target); ok {
			r.s = session{
				kind:        Dragging,
				cardID:      c.ID,
				worldOffset: vp.ScreenToWorld(p).Sub(c.Position),
			}
			Logger().Debug("viewport: drag start", "card", c.ID)
			return Outcome{Began: true}
		}
	}
	r.s = session{kind: Panning, startPoint: p, startPan: vp.Pan}
	Logger().Debug("viewport: pan start", "x", p.X, "y", p.Y)
	return Outcome{Began: true}
}

// beginPinch snapshots the anchor from the live viewport. Any pan in progress is
// dropped, not merged.
func (r *Recognizer) beginPinch(points []geometry.Point2D, vp Viewport) {
	r.s = session{
		kind:           Pinching,
		anchorZoom:     vp.Zoom,
		anchorPan:      vp.Pan,
		anchorDistance: TouchDistance(points...),
		anchorWorld:    vp.ScreenToWorld(TouchCentroid(points...)),
	}
	Logger().Debug("viewport: pinch start", "distance", r.s.anchorDistance, "zoom", vp.Zoom)
}

func (r *Recognizer) move(ev Event, vp Viewport) Outcome {
	switch r.s.kind {
	case Panning:
		if len(ev.Points) != 1 {
			return Outcome{}
		}
		next := vp
		next.Pan = ev.Points[0].Sub(r.s.startPoint).Add(r.s.startPan)
		return Outcome{Viewport: next, ViewportChanged: true}

	case Pinching:
		if len(ev.Points) < 2 || r.s.anchorDistance == 0 {
			return Outcome{}
		}
		scale := TouchDistance(ev.Points...) / r.s.anchorDistance
		zoom := ClampZoom(r.s.anchorZoom * scale)
		next := Viewport{
			Zoom: zoom,
			Pan:  AnchoredPan(TouchCentroid(ev.Points...), r.s.anchorWorld, zoom),
		}
		return Outcome{Viewport: next, ViewportChanged: true}

	case Dragging:
		if len(ev.Points) == 0 {
			return Outcome{}
		}
		pos := vp.ScreenToWorld(ev.Points[0]).Sub(r.s.worldOffset)
		return Outcome{Card: &CardMove{ID: r.s.cardID, Position: pos}}

	default:
		return Outcome{}
	}
}

func (r *Recognizer) end(ev Event, vp Viewport) Outcome {
	switch r.s.kind {
	case Pinching:
		if len(ev.Points) >= 2 {
			r.beginPinch(ev.Points, vp)
			return Outcome{}
		}
		// a residual finger must not become a pan; it needs a fresh start
		r.s = session{}
		Logger().Debug("viewport: pinch end", "remaining", len(ev.Points))
		return Outcome{Ended: true}

	case Panning:
		if len(ev.Points) != 0 {
			return Outcome{}
		}
		r.s = session{}
		Logger().Debug("viewport: pan end")
		return Outcome{Ended: true}

	case Dragging:
		if len(ev.Points) != 0 {
			return Outcome{}
		}
		Logger().Debug("viewport: drag end", "card", r.s.cardID)
		r.s = session{}
		return Outcome{}

	default:
		return Outcome{}
	}
}
