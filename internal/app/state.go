// Package app ties the roster, card layout, viewport controller and persistence
// together and notifies the UI through events.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"affinity-map/internal/board"
	"affinity-map/internal/project"
	"affinity-map/internal/roster"
	"affinity-map/internal/store"
	"affinity-map/internal/viewport"
	"affinity-map/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventPeopleChanged EventType = iota
	EventCardsChanged
	EventViewportChanged
	EventFilterChanged
	EventImported
	EventGestureStarted
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State owns the board. All methods are safe for concurrent use; listeners run
// on the goroutine that caused the event, after internal locks are released.
type State struct {
	mu       sync.Mutex
	roster   *roster.Roster
	layout   *board.Layout
	ctrl     *viewport.Controller
	selected []string
	visible  map[string]bool // nil when no filter is active

	store     store.Store
	saver     *Debouncer
	dragDirty bool
	started   []viewport.Kind

	lmu       sync.RWMutex
	listeners map[EventType][]EventListener

	now func() time.Time
}

// NewState creates an empty state. st may be nil for an unpersisted board.
func NewState(st store.Store, settings viewport.Settings, saveDelay time.Duration) *State {
	s := &State{
		roster:    roster.New(),
		layout:    board.NewLayout(),
		store:     st,
		saver:     NewDebouncer(saveDelay),
		listeners: make(map[EventType][]EventListener),
		now:       time.Now,
	}
	s.ctrl = viewport.NewController(s.view(), settings)
	s.ctrl.OnGestureStart(func(kind viewport.Kind) {
		s.started = append(s.started, kind)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.lmu.RLock()
	listeners := s.listeners[event]
	s.lmu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *State) view() *board.View {
	return s.layout.View(func(pid string) bool {
		return s.visible == nil || s.visible[pid]
	})
}

// Load restores people, positions and the viewport from the store.
func (s *State) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	var people []roster.Person
	if _, err := store.LoadJSON(ctx, s.store, store.SlotPeople, &people); err != nil {
		return fmt.Errorf("load people: %w", err)
	}
	var positions []project.PositionEntry
	if _, err := store.LoadJSON(ctx, s.store, store.SlotPositions, &positions); err != nil {
		return fmt.Errorf("load positions: %w", err)
	}
	vp := viewport.Identity()
	if _, err := store.LoadJSON(ctx, s.store, store.SlotZoom, &vp.Zoom); err != nil {
		return fmt.Errorf("load zoom: %w", err)
	}
	if _, err := store.LoadJSON(ctx, s.store, store.SlotPan, &vp.Pan); err != nil {
		return fmt.Errorf("load pan: %w", err)
	}

	s.mu.Lock()
	s.roster.Replace(people)
	s.layout.Replace((&project.ExportData{Positions: positions}).Cards())
	s.layout.Sync(s.roster.IDs())
	s.refreshFilterLocked()
	s.ctrl.Restore(vp)
	count := s.roster.Len()
	s.mu.Unlock()

	slog.Info("board loaded", "people", count, "zoom", vp.Zoom)
	s.Emit(EventPeopleChanged, nil)
	s.Emit(EventCardsChanged, nil)
	s.Emit(EventViewportChanged, s.Viewport())
	return nil
}

// People returns the roster in order.
func (s *State) People() []roster.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.List()
}

// Person looks up one person.
func (s *State) Person(id string) (roster.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Get(id)
}

// Search fuzzily matches names.
func (s *State) Search(query string) []roster.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Search(query)
}

// Cards returns the cards that pass the tag filter, in draw order.
func (s *State) Cards() []board.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().Cards()
}

// AllCards returns every card, including hidden ones.
func (s *State) AllCards() []board.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Cards()
}

// Viewport returns the current viewport.
func (s *State) Viewport() viewport.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Viewport()
}

// Gesture returns the active gesture kind.
func (s *State) Gesture() viewport.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Gesture()
}

// AddPerson adds one person and their two cards.
func (s *State) AddPerson(name string) (roster.Person, error) {
	s.mu.Lock()
	p, err := s.roster.Add(name)
	if err == nil {
		s.layout.Sync(s.roster.IDs())
		s.refreshFilterLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return roster.Person{}, err
	}
	s.structureChanged()
	return p, nil
}

// AddPeople adds one person per non-blank name.
func (s *State) AddPeople(names []string) []roster.Person {
	s.mu.Lock()
	added := s.roster.AddMany(names)
	s.layout.Sync(s.roster.IDs())
	s.refreshFilterLocked()
	s.mu.Unlock()
	if len(added) > 0 {
		s.structureChanged()
	}
	return added
}

// RenamePerson changes a display name. Blank names are ignored.
func (s *State) RenamePerson(id, name string) (roster.Person, error) {
	return s.updatePerson(func(r *roster.Roster) (roster.Person, error) {
		return r.Update(id, roster.Update{Name: &name})
	})
}

// AddTag tags a person.
func (s *State) AddTag(id, tag string) (roster.Person, error) {
	return s.updatePerson(func(r *roster.Roster) (roster.Person, error) {
		return r.AddTag(id, tag)
	})
}

// RemoveTag untags a person.
func (s *State) RemoveTag(id, tag string) (roster.Person, error) {
	return s.updatePerson(func(r *roster.Roster) (roster.Person, error) {
		return r.RemoveTag(id, tag)
	})
}

func (s *State) updatePerson(apply func(*roster.Roster) (roster.Person, error)) (roster.Person, error) {
	s.mu.Lock()
	p, err := apply(s.roster)
	if err == nil {
		s.refreshFilterLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return roster.Person{}, err
	}
	s.savePeople()
	s.Emit(EventPeopleChanged, p.ID)
	s.Emit(EventCardsChanged, nil)
	return p, nil
}

// DeletePerson removes a person and both cards. Unknown ids are a no-op.
func (s *State) DeletePerson(id string) bool {
	s.mu.Lock()
	ok := s.roster.Remove(id)
	removed := s.layout.RemovePerson(id)
	s.refreshFilterLocked()
	s.mu.Unlock()
	if !ok && len(removed) == 0 {
		return false
	}
	s.structureChanged()
	return true
}

// AllTags lists every tag in first-seen order.
func (s *State) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.AllTags()
}

// SelectedTags returns the active tag filter.
func (s *State) SelectedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// SetFilter shows only people carrying any of tags. An empty list shows everyone.
func (s *State) SetFilter(tags []string) {
	s.mu.Lock()
	s.selected = append([]string(nil), tags...)
	s.refreshFilterLocked()
	s.mu.Unlock()
	s.Emit(EventFilterChanged, s.SelectedTags())
	s.Emit(EventCardsChanged, nil)
}

// ToggleTag adds or removes a tag from the filter.
func (s *State) ToggleTag(tag string) {
	next := s.SelectedTags()
	for i, t := range next {
		if t == tag {
			s.SetFilter(append(next[:i], next[i+1:]...))
			return
		}
	}
	s.SetFilter(append(next, tag))
}

// refreshFilterLocked drops selected tags nobody carries any more and rebuilds
// the visible set.
func (s *State) refreshFilterLocked() {
	if len(s.selected) == 0 {
		s.visible = nil
		return
	}
	inUse := make(map[string]bool)
	for _, t := range s.roster.AllTags() {
		inUse[t] = true
	}
	kept := s.selected[:0]
	for _, t := range s.selected {
		if inUse[t] {
			kept = append(kept, t)
		}
	}
	s.selected = kept
	if len(s.selected) == 0 {
		s.visible = nil
		return
	}
	s.visible = make(map[string]bool)
	for _, p := range s.roster.Filter(s.selected) {
		s.visible[p.ID] = true
	}
}

// ImportJSON replaces people and positions with an export. The data is fully
// parsed before anything changes.
func (s *State) ImportJSON(data []byte) error {
	d, err := project.Parse(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.roster.Replace(d.People)
	s.layout.Replace(d.Cards())
	s.layout.Sync(s.roster.IDs())
	s.refreshFilterLocked()
	count := s.roster.Len()
	s.mu.Unlock()

	slog.Info("imported board", "people", count, "version", d.Version)
	s.structureChanged()
	s.Emit(EventImported, count)
	return nil
}

// ImportText adds one person per line and returns how many were added.
func (s *State) ImportText(r io.Reader) (int, error) {
	names, err := project.ParseText(r)
	if err != nil {
		return 0, err
	}
	added := s.AddPeople(names)
	slog.Info("imported names", "added", len(added))
	s.Emit(EventImported, len(added))
	return len(added), nil
}

// ImportFile imports either an export or a plain list of names, by content.
func (s *State) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	if project.LooksLikeJSON(data) {
		return s.ImportJSON(data)
	}
	_, err = s.ImportText(bytes.NewReader(data))
	return err
}

// SyncText makes the roster match a list of names, one per line. People whose
// name is listed keep their id, tags and card positions; new names are added
// and everyone else is removed.
func (s *State) SyncText(r io.Reader) error {
	names, err := project.ParseText(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	added, removed := s.roster.Reconcile(names)
	s.layout.Sync(s.roster.IDs())
	s.refreshFilterLocked()
	count := s.roster.Len()
	s.mu.Unlock()

	slog.Info("synced names", "added", len(added), "removed", len(removed))
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	s.structureChanged()
	s.Emit(EventImported, count)
	return nil
}

// ReloadFile re-reads a watched roster file. An export replaces the board and
// a list of names is synced, so reloading an unchanged file changes nothing.
func (s *State) ReloadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read roster file: %w", err)
	}
	if project.LooksLikeJSON(data) {
		return s.ImportJSON(data)
	}
	return s.SyncText(bytes.NewReader(data))
}

// Export builds an export of the whole board, hidden cards included.
func (s *State) Export() *project.ExportData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return project.Build(s.roster.List(), s.layout.Cards(), s.now())
}

// ExportJSON returns the indented export.
func (s *State) ExportJSON() ([]byte, error) {
	return project.Marshal(s.Export())
}

// SetViewportSize records the on-screen size of the board.
func (s *State) SetViewportSize(size geometry.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetSize(size)
}

// HitTest returns the visible card under a screen point.
func (s *State) HitTest(screen geometry.Point2D) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.HitTest(screen)
}

// HandleGesture feeds a pointer event to the controller.
func (s *State) HandleGesture(ev viewport.Event) viewport.Delta {
	s.mu.Lock()
	d := s.ctrl.ApplyGestureEvent(ev)
	started := s.started
	s.started = nil
	if d.Card != nil {
		s.dragDirty = true
	}
	flushPositions := s.dragDirty && s.ctrl.Gesture() == viewport.Idle
	if flushPositions {
		s.dragDirty = false
	}
	s.mu.Unlock()

	for _, kind := range started {
		s.Emit(EventGestureStarted, kind)
	}
	if d.Card != nil {
		s.Emit(EventCardsChanged, d.Card.ID)
	}
	if flushPositions {
		s.savePositions()
	}
	s.viewportChanged(d)
	return d
}

// Wheel zooms around the cursor.
func (s *State) Wheel(cursor geometry.Point2D, delta float64) viewport.Delta {
	return s.apply(func(c *viewport.Controller) viewport.Delta { return c.Wheel(cursor, delta) })
}

// ZoomIn steps the zoom up around the viewport centre.
func (s *State) ZoomIn() viewport.Delta {
	return s.apply((*viewport.Controller).ZoomIn)
}

// ZoomOut steps the zoom down around the viewport centre.
func (s *State) ZoomOut() viewport.Delta {
	return s.apply((*viewport.Controller).ZoomOut)
}

// SetZoom sets an absolute zoom around the viewport centre.
func (s *State) SetZoom(zoom float64) viewport.Delta {
	return s.apply(func(c *viewport.Controller) viewport.Delta { return c.SetZoom(zoom) })
}

// ResetZoom returns to 100% around the viewport centre.
func (s *State) ResetZoom() viewport.Delta {
	return s.SetZoom(1)
}

// Recenter centres the visible cards in a viewport of the given size.
func (s *State) Recenter(size geometry.Size) bool {
	var ok bool
	s.apply(func(c *viewport.Controller) viewport.Delta {
		ok = c.Recenter(size)
		return viewport.Delta{Viewport: c.Viewport(), ViewportChanged: ok}
	})
	return ok
}

// RecenterOnPerson centres a person's cards.
func (s *State) RecenterOnPerson(id string) bool {
	var ok bool
	s.apply(func(c *viewport.Controller) viewport.Delta {
		var cards []board.Card
		for _, role := range board.Roles {
			if card, found := s.layout.Card(board.CardID(id, role)); found {
				cards = append(cards, card)
			}
		}
		ok = c.RecenterOn(cards)
		return viewport.Delta{Viewport: c.Viewport(), ViewportChanged: ok}
	})
	return ok
}

func (s *State) apply(op func(*viewport.Controller) viewport.Delta) viewport.Delta {
	s.mu.Lock()
	d := op(s.ctrl)
	s.mu.Unlock()
	s.viewportChanged(d)
	return d
}

func (s *State) viewportChanged(d viewport.Delta) {
	if !d.ViewportChanged {
		return
	}
	s.Emit(EventViewportChanged, d.Viewport)
	if s.store == nil {
		return
	}
	s.saver.Trigger(s.saveViewport)
}

func (s *State) structureChanged() {
	s.savePeople()
	s.savePositions()
	s.Emit(EventPeopleChanged, nil)
	s.Emit(EventCardsChanged, nil)
}

func (s *State) savePeople() {
	if s.store == nil {
		return
	}
	s.save(store.SlotPeople, s.People())
}

func (s *State) savePositions() {
	if s.store == nil {
		return
	}
	s.save(store.SlotPositions, s.Export().Positions)
}

func (s *State) saveViewport() {
	vp := s.Viewport()
	s.save(store.SlotZoom, vp.Zoom)
	s.save(store.SlotPan, vp.Pan)
}

func (s *State) save(slot store.Slot, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.SaveJSON(ctx, s.store, slot, v); err != nil {
		slog.Warn("persist failed", "slot", slot, "error", err)
	}
}

// Flush writes any pending viewport save now.
func (s *State) Flush() {
	s.saver.Flush()
}

// Close flushes pending saves and closes the store.
func (s *State) Close() error {
	s.Flush()
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
