package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
)

// TagsPanel lists every tag as a filter checkbox.
type TagsPanel struct {
	state     *app.State
	checks    *fyne.Container
	container fyne.CanvasObject
}

// NewTagsPanel creates the tags tab.
func NewTagsPanel(state *app.State) *TagsPanel {
	tp := &TagsPanel{state: state, checks: container.NewVBox()}
	clearBtn := widget.NewButton("Show everyone", func() { state.SetFilter(nil) })
	tp.container = container.NewBorder(nil, clearBtn, nil, nil, container.NewVScroll(tp.checks))

	state.On(app.EventPeopleChanged, func(interface{}) { tp.Refresh() })
	state.On(app.EventFilterChanged, func(interface{}) { tp.Refresh() })
	tp.Refresh()
	return tp
}

// Container returns the panel container.
func (tp *TagsPanel) Container() fyne.CanvasObject {
	return tp.container
}

// Refresh rebuilds the checkboxes from the roster and the active filter.
func (tp *TagsPanel) Refresh() {
	tp.checks.Objects = tagChecks(tp.state)
	tp.checks.Refresh()
}

func tagChecks(state *app.State) []fyne.CanvasObject {
	selected := make(map[string]bool)
	for _, t := range state.SelectedTags() {
		selected[t] = true
	}
	tags := state.AllTags()
	if len(tags) == 0 {
		return []fyne.CanvasObject{widget.NewLabel("No tags yet")}
	}
	objects := make([]fyne.CanvasObject, 0, len(tags))
	for _, tag := range tags {
		tag := tag
		check := widget.NewCheck(tag, nil)
		check.Checked = selected[tag]
		check.OnChanged = func(bool) { state.ToggleTag(tag) }
		objects = append(objects, check)
	}
	return objects
}

// TagFilterMenu is the toolbar's tag filter popup. Any pan, pinch or drag on
// the board closes it.
type TagFilterMenu struct {
	state  *app.State
	popup  *widget.PopUp
	checks *fyne.Container
}

// NewTagFilterMenu creates the popup on the given window canvas.
func NewTagFilterMenu(state *app.State, c fyne.Canvas) *TagFilterMenu {
	m := &TagFilterMenu{state: state, checks: container.NewVBox()}
	clearBtn := widget.NewButton("Clear", func() { state.SetFilter(nil) })
	m.popup = widget.NewPopUp(container.NewBorder(widget.NewLabel("Filter by tag"), clearBtn, nil, nil, m.checks), c)

	state.On(app.EventGestureStarted, func(interface{}) { m.Hide() })
	state.On(app.EventFilterChanged, func(interface{}) { m.rebuild() })
	state.On(app.EventPeopleChanged, func(interface{}) { m.rebuild() })
	return m
}

// Toggle shows the menu at pos, or hides it if it is open.
func (m *TagFilterMenu) Toggle(pos fyne.Position) {
	if m.popup.Visible() {
		m.Hide()
		return
	}
	m.rebuild()
	m.popup.ShowAtPosition(pos)
}

// Hide closes the menu.
func (m *TagFilterMenu) Hide() {
	if m.popup.Visible() {
		m.popup.Hide()
	}
}

// Visible reports whether the menu is open.
func (m *TagFilterMenu) Visible() bool {
	return m.popup.Visible()
}

func (m *TagFilterMenu) rebuild() {
	m.checks.Objects = tagChecks(m.state)
	m.checks.Refresh()
}
