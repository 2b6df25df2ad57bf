// Package canvas provides the board widget: a pannable, zoomable surface that
// draws person cards and forwards pointer input to the viewport controller.
package canvas

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
	"affinity-map/internal/board"
	"affinity-map/internal/viewport"
	"affinity-map/pkg/colorutil"
	"affinity-map/pkg/geometry"
)

// wheelScale converts fyne scroll distance into wheel units. One notch is
// roughly 10 units in fyne and 100 in a browser.
const wheelScale = 10.0

// BoardCanvas displays the cards of an app.State.
type BoardCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	// pressed is true between a primary button press and its release.
	pressed bool

	onEditPerson func(personID string)
	onCardMenu   func(personID string, at fyne.Position)
}

// NewBoardCanvas creates the board widget.
func NewBoardCanvas(state *app.State) *BoardCanvas {
	bc := &BoardCanvas{state: state}
	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.raster.ScaleMode = fynecanvas.ImageScalePixels
	bc.ExtendBaseWidget(bc)
	return bc
}

// OnEditPerson sets the callback for double-clicking a card.
func (bc *BoardCanvas) OnEditPerson(callback func(personID string)) {
	bc.onEditPerson = callback
}

// OnCardMenu sets the callback for right-clicking a card.
func (bc *BoardCanvas) OnCardMenu(callback func(personID string, at fyne.Position)) {
	bc.onCardMenu = callback
}

// Resize records the new viewport size with the controller.
func (bc *BoardCanvas) Resize(size fyne.Size) {
	bc.BaseWidget.Resize(size)
	bc.state.SetViewportSize(toSize(size))
}

// Recenter centres all visible cards.
func (bc *BoardCanvas) Recenter() bool {
	return bc.state.Recenter(toSize(bc.Size()))
}

// MouseDown starts a pan or a card drag.
func (bc *BoardCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := toPoint(ev.Position)
	target, _ := bc.state.HitTest(p)
	bc.pressed = true
	bc.state.HandleGesture(viewport.Event{
		Phase:  viewport.PhaseStart,
		Points: []geometry.Point2D{p},
		Target: target,
	})
}

// MouseUp ends the gesture.
func (bc *BoardCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	bc.release()
}

// Dragged moves the active gesture.
func (bc *BoardCanvas) Dragged(ev *fyne.DragEvent) {
	if !bc.pressed {
		return
	}
	bc.state.HandleGesture(viewport.Event{
		Phase:  viewport.PhaseMove,
		Points: []geometry.Point2D{toPoint(ev.Position)},
	})
}

// DragEnd ends the gesture if MouseUp has not already.
func (bc *BoardCanvas) DragEnd() {
	bc.release()
}

func (bc *BoardCanvas) release() {
	if !bc.pressed {
		return
	}
	bc.pressed = false
	bc.state.HandleGesture(viewport.Event{Phase: viewport.PhaseEnd})
}

// Scrolled zooms around the cursor.
func (bc *BoardCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	bc.state.Wheel(toPoint(ev.Position), -float64(ev.Scrolled.DY)*wheelScale)
}

// DoubleTapped opens the editor for the card under the pointer.
func (bc *BoardCanvas) DoubleTapped(ev *fyne.PointEvent) {
	if bc.onEditPerson == nil {
		return
	}
	if id, ok := bc.state.HitTest(toPoint(ev.Position)); ok {
		if pid, _, ok := board.SplitCardID(id); ok {
			bc.onEditPerson(pid)
		}
	}
}

// TappedSecondary opens the card menu.
func (bc *BoardCanvas) TappedSecondary(ev *fyne.PointEvent) {
	if bc.onCardMenu == nil {
		return
	}
	if id, ok := bc.state.HitTest(toPoint(ev.Position)); ok {
		if pid, _, ok := board.SplitCardID(id); ok {
			bc.onCardMenu(pid, ev.AbsolutePosition)
		}
	}
}

// Cursor shows the hand pointer over the board.
func (bc *BoardCanvas) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (bc *BoardCanvas) draw(w, h int) image.Image {
	size := bc.Size()
	scale := 1.0
	if size.Width > 0 {
		scale = float64(w) / float64(size.Width)
	}
	return drawGrid(bc.state.Viewport().Affine(), w, h, scale)
}

func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{canvas: bc}
}

type boardRenderer struct {
	canvas  *BoardCanvas
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.rebuild()
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *boardRenderer) Refresh() {
	r.canvas.raster.Refresh()
	r.rebuild()
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}

// rebuild lays out one group of objects per visible card, in draw order.
func (r *boardRenderer) rebuild() {
	st := r.canvas.state
	vp := st.Viewport()
	size := r.canvas.Size()
	objects := []fyne.CanvasObject{r.canvas.raster}

	people := make(map[string]string)
	tags := make(map[string][]string)
	for _, p := range st.People() {
		people[p.ID] = p.Name
		tags[p.ID] = p.Tags
	}

	for _, c := range st.Cards() {
		tl := vp.WorldToScreen(c.Position)
		w, h := board.CardWidth*vp.Zoom, board.CardHeight*vp.Zoom
		if tl.X > float64(size.Width) || tl.Y > float64(size.Height) || tl.X+w < 0 || tl.Y+h < 0 {
			continue
		}
		objects = append(objects, cardObjects(c, people[c.PersonID], tags[c.PersonID], tl, w, h, vp.Zoom)...)
	}
	r.objects = objects
}

func cardObjects(c board.Card, name string, tags []string, tl geometry.Point2D, w, h, zoom float64) []fyne.CanvasObject {
	fillCol, strokeCol := colorutil.MinisterFill, colorutil.MinisterStroke
	if c.Role == board.RoleRecipient {
		fillCol, strokeCol = colorutil.RecipientFill, colorutil.RecipientStroke
	}

	bg := fynecanvas.NewRectangle(fillCol)
	bg.StrokeColor = strokeCol
	bg.StrokeWidth = float32(math.Max(1, 2*zoom))
	bg.CornerRadius = float32(8 * zoom)
	bg.Move(fyne.NewPos(float32(tl.X), float32(tl.Y)))
	bg.Resize(fyne.NewSize(float32(w), float32(h)))

	textSize := float32(zoom) * theme.TextSize()
	pad := float32(12 * zoom)

	title := fynecanvas.NewText(name, colorutil.CardText)
	title.TextSize = textSize * 1.2
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Move(fyne.NewPos(float32(tl.X)+pad, float32(tl.Y)+pad))

	role := fynecanvas.NewText(c.Role.Label(), colorutil.CardSubtext)
	role.TextSize = textSize * 0.85
	role.Move(fyne.NewPos(float32(tl.X)+pad, float32(tl.Y)+pad+title.TextSize*1.6))

	objects := []fyne.CanvasObject{bg, title, role}

	x := float32(tl.X) + pad
	y := float32(tl.Y) + float32(h) - pad - textSize*1.4
	for _, tag := range tags {
		label := fynecanvas.NewText(tag, color.White)
		label.TextSize = textSize * 0.8
		chipW := fyne.MeasureText(tag, label.TextSize, label.TextStyle).Width + pad
		if x+chipW > float32(tl.X+w)-pad {
			break
		}
		chip := fynecanvas.NewRectangle(colorutil.TagColor(tag))
		chip.CornerRadius = textSize * 0.6
		chip.Move(fyne.NewPos(x, y))
		chip.Resize(fyne.NewSize(chipW, textSize*1.3))
		label.Move(fyne.NewPos(x+pad/2, y+textSize*0.15))
		objects = append(objects, chip, label)
		x += chipW + pad/2
	}
	return objects
}

func toPoint(p fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(p.X), float64(p.Y))
}

func toSize(s fyne.Size) geometry.Size {
	return geometry.NewSize(float64(s.Width), float64(s.Height))
}
