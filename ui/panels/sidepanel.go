// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"affinity-map/internal/app"
)

// SidePanel provides the side panel with tabbed sections.
type SidePanel struct {
	container *container.AppTabs

	people *PeoplePanel
	tags   *TagsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{
		people: NewPeoplePanel(state),
		tags:   NewTagsPanel(state),
	}
	sp.container = container.NewAppTabs(
		container.NewTabItem("People", sp.people.Container()),
		container.NewTabItem("Tags", sp.tags.Container()),
	)
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// People returns the people tab.
func (sp *SidePanel) People() *PeoplePanel {
	return sp.people
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.people.SetWindow(w)
}
