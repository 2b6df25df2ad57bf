// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
	"affinity-map/pkg/colorutil"
)

// PersonDialog edits one person: rename, tags, delete.
type PersonDialog struct {
	state    *app.State
	personID string
	window   fyne.Window

	nameEntry *widget.Entry
	tagEntry  *widget.Entry
	tagBox    *fyne.Container
	dlg       dialog.Dialog
}

// NewPersonDialog creates an editor for personID.
func NewPersonDialog(state *app.State, personID string, window fyne.Window) *PersonDialog {
	return &PersonDialog{state: state, personID: personID, window: window}
}

// Show displays the dialog. Unknown people are reported and nothing opens.
func (d *PersonDialog) Show() {
	p, ok := d.state.Person(d.personID)
	if !ok {
		dialog.ShowError(fmt.Errorf("person %q no longer exists", d.personID), d.window)
		return
	}

	d.dlg = dialog.NewCustomConfirm(
		"Edit "+p.Name,
		"Save",
		"Close",
		d.createContent(p.Name),
		func(save bool) {
			if save {
				d.applyName()
			}
		},
		d.window,
	)
	d.dlg.Resize(fyne.NewSize(420, 360))
	d.dlg.Show()
}

func (d *PersonDialog) createContent(name string) fyne.CanvasObject {
	d.nameEntry = widget.NewEntry()
	d.nameEntry.SetText(name)

	d.tagEntry = widget.NewEntry()
	d.tagEntry.SetPlaceHolder("Add tag")
	d.tagEntry.OnSubmitted = func(string) { d.addTag() }
	addTagBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), d.addTag)

	d.tagBox = container.NewVBox()
	d.refreshTags()

	deleteBtn := widget.NewButtonWithIcon("Delete person", theme.DeleteIcon(), d.confirmDelete)
	deleteBtn.Importance = widget.DangerImportance

	form := widget.NewForm(widget.NewFormItem("Name", d.nameEntry))
	return container.NewBorder(
		container.NewVBox(form, widget.NewSeparator(), widget.NewLabel("Tags"),
			container.NewBorder(nil, nil, nil, addTagBtn, d.tagEntry)),
		deleteBtn,
		nil, nil,
		container.NewVScroll(d.tagBox),
	)
}

func (d *PersonDialog) refreshTags() {
	p, ok := d.state.Person(d.personID)
	if !ok {
		return
	}
	objects := make([]fyne.CanvasObject, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tag := tag
		swatch := fynecanvas.NewRectangle(colorutil.TagColor(tag))
		swatch.SetMinSize(fyne.NewSize(12, 12))
		swatch.CornerRadius = 6
		remove := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			if _, err := d.state.RemoveTag(d.personID, tag); err != nil {
				dialog.ShowError(err, d.window)
				return
			}
			d.refreshTags()
		})
		objects = append(objects, container.NewBorder(nil, nil,
			container.NewCenter(swatch), remove, widget.NewLabel(tag)))
	}
	d.tagBox.Objects = objects
	d.tagBox.Refresh()
}

func (d *PersonDialog) addTag() {
	if _, err := d.state.AddTag(d.personID, d.tagEntry.Text); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	d.tagEntry.SetText("")
	d.refreshTags()
}

func (d *PersonDialog) applyName() {
	if _, err := d.state.RenamePerson(d.personID, d.nameEntry.Text); err != nil {
		dialog.ShowError(err, d.window)
	}
}

func (d *PersonDialog) confirmDelete() {
	p, ok := d.state.Person(d.personID)
	if !ok {
		return
	}
	ConfirmDelete(d.state, p.ID, p.Name, d.window, func() {
		if d.dlg != nil {
			d.dlg.Hide()
		}
	})
}

// ConfirmDelete asks before removing a person and both of their cards.
func ConfirmDelete(state *app.State, personID, name string, window fyne.Window, onDeleted func()) {
	dialog.ShowConfirm("Delete person",
		fmt.Sprintf("Remove %s and both of their cards?", name),
		func(ok bool) {
			if !ok {
				return
			}
			state.DeletePerson(personID)
			if onDeleted != nil {
				onDeleted()
			}
		},
		window)
}
