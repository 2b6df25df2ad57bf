package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
	"affinity-map/internal/roster"
)

// PeoplePanel adds people and finds them on the board. Selecting a search
// result centres the viewport on that person's cards.
type PeoplePanel struct {
	state  *app.State
	window fyne.Window

	addEntry    *widget.Entry
	searchEntry *widget.Entry
	list        *widget.List
	results     []roster.Person

	onEdit func(personID string)

	container fyne.CanvasObject
}

// NewPeoplePanel creates the people tab.
func NewPeoplePanel(state *app.State) *PeoplePanel {
	pp := &PeoplePanel{state: state}

	pp.addEntry = widget.NewEntry()
	pp.addEntry.SetPlaceHolder("New person name")
	pp.addEntry.OnSubmitted = func(string) { pp.addPerson() }
	addBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), pp.addPerson)

	pp.searchEntry = widget.NewEntry()
	pp.searchEntry.SetPlaceHolder("Search")
	pp.searchEntry.OnChanged = func(string) { pp.Refresh() }

	pp.list = widget.NewList(
		func() int { return len(pp.results) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
				widget.NewLabel("name"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(pp.results) {
				return
			}
			p := pp.results[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(p.Name)
			row.Objects[1].(*widget.Button).OnTapped = func() {
				if pp.onEdit != nil {
					pp.onEdit(p.ID)
				}
			}
		},
	)
	pp.list.OnSelected = func(id widget.ListItemID) {
		if id < len(pp.results) {
			pp.state.RecenterOnPerson(pp.results[id].ID)
		}
		pp.list.UnselectAll()
	}

	pp.container = container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nil, addBtn, pp.addEntry),
			pp.searchEntry,
		),
		nil, nil, nil,
		pp.list,
	)

	state.On(app.EventPeopleChanged, func(interface{}) { pp.Refresh() })
	pp.Refresh()
	return pp
}

// Container returns the panel container.
func (pp *PeoplePanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetWindow sets the parent window for dialogs.
func (pp *PeoplePanel) SetWindow(w fyne.Window) {
	pp.window = w
}

// OnEdit sets the callback for a row's edit button.
func (pp *PeoplePanel) OnEdit(callback func(personID string)) {
	pp.onEdit = callback
}

// Refresh re-runs the search against the current roster.
func (pp *PeoplePanel) Refresh() {
	pp.results = pp.state.Search(pp.searchEntry.Text)
	pp.list.Refresh()
}

func (pp *PeoplePanel) addPerson() {
	if _, err := pp.state.AddPerson(pp.addEntry.Text); err != nil {
		if pp.window != nil {
			dialog.ShowError(err, pp.window)
		}
		return
	}
	pp.addEntry.SetText("")
}
