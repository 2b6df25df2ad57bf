package panels

import (
	"reflect"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
	"affinity-map/internal/viewport"
	"affinity-map/pkg/geometry"
)

func newState(t *testing.T) *app.State {
	t.Helper()
	test.NewApp()
	st := app.NewState(nil, viewport.DefaultSettings(), 0)
	st.AddPeople([]string{"Alice", "Bob"})
	st.AddTag("alice", "youth")
	st.AddTag("bob", "choir")
	return st
}

func TestTagChecksToggleFilter(t *testing.T) {
	st := newState(t)

	checks := tagChecks(st)
	if len(checks) != 2 {
		t.Fatalf("checks = %d, want 2", len(checks))
	}
	youth := checks[0].(*widget.Check)
	if youth.Text != "youth" || youth.Checked {
		t.Fatalf("first check = %q checked=%v", youth.Text, youth.Checked)
	}
	test.Tap(youth)
	if got := st.SelectedTags(); !reflect.DeepEqual(got, []string{"youth"}) {
		t.Errorf("selected = %v, want [youth]", got)
	}
	if !tagChecks(st)[0].(*widget.Check).Checked {
		t.Error("rebuilt check not ticked")
	}
}

func TestTagFilterMenuClosesOnGesture(t *testing.T) {
	st := newState(t)
	w := test.NewWindow(widget.NewLabel("board"))
	defer w.Close()
	w.Resize(fyne.NewSize(400, 300))

	m := NewTagFilterMenu(st, w.Canvas())
	m.Toggle(fyne.NewPos(10, 10))
	if !m.Visible() {
		t.Fatal("menu not shown")
	}

	st.HandleGesture(viewport.Event{Phase: viewport.PhaseStart, Points: []geometry.Point2D{{X: 5, Y: 5}}})
	st.HandleGesture(viewport.Event{Phase: viewport.PhaseEnd})
	if m.Visible() {
		t.Error("menu still open after a pan")
	}
}

func TestTagsPanelEmpty(t *testing.T) {
	test.NewApp()
	st := app.NewState(nil, viewport.DefaultSettings(), 0)
	tp := NewTagsPanel(st)
	if got := len(tp.checks.Objects); got != 1 {
		t.Fatalf("objects = %d, want placeholder label", got)
	}
	if _, ok := tp.checks.Objects[0].(*widget.Label); !ok {
		t.Errorf("placeholder = %T", tp.checks.Objects[0])
	}
}
