package board

import (
	"affinity-map/pkg/geometry"
)

// Layout holds the placed cards in draw order. It is not safe for concurrent use;
// the owner serializes access.
type Layout struct {
	cards []Card
	index map[string]int
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{index: make(map[string]int)}
}

// Sync makes the card set match the given ordered person ids. Missing cards are
// created at their initial position for the person's index; cards of people no
// longer listed are removed. Existing cards keep their position.
func (l *Layout) Sync(personIDs []string) (added []Card, removed []string) {
	present := make(map[string]bool, len(personIDs))
	for i, pid := range personIDs {
		present[pid] = true
		for _, role := range Roles {
			id := CardID(pid, role)
			if _, ok := l.index[id]; ok {
				continue
			}
			c := Card{ID: id, PersonID: pid, Role: role, Position: InitialPosition(role, i)}
			l.cards = append(l.cards, c)
			l.index[id] = len(l.cards) - 1
			added = append(added, c)
		}
	}

	kept := l.cards[:0]
	for _, c := range l.cards {
		if present[c.PersonID] {
			kept = append(kept, c)
			continue
		}
		removed = append(removed, c.ID)
	}
	if len(removed) > 0 {
		l.cards = kept
		l.reindex()
	}
	return added, removed
}

// Cards returns a copy of all cards in draw order.
func (l *Layout) Cards() []Card {
	out := make([]Card, len(l.cards))
	copy(out, l.cards)
	return out
}

// Card looks up a card by id.
func (l *Layout) Card(id string) (Card, bool) {
	i, ok := l.index[id]
	if !ok {
		return Card{}, false
	}
	return l.cards[i], true
}

// Move sets a card's world position. It reports false for unknown ids.
func (l *Layout) Move(id string, pos geometry.Point2D) bool {
	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.cards[i].Position = pos
	return true
}

// RemovePerson removes both role cards of a person. Removing a person without
// cards is a no-op.
func (l *Layout) RemovePerson(personID string) []string {
	var removed []string
	kept := l.cards[:0]
	for _, c := range l.cards {
		if c.PersonID == personID {
			removed = append(removed, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	l.cards = kept
	if len(removed) > 0 {
		l.reindex()
	}
	return removed
}

// Replace swaps the whole card set. Later duplicates of an id win.
func (l *Layout) Replace(cards []Card) {
	l.cards = make([]Card, 0, len(cards))
	l.index = make(map[string]int, len(cards))
	for _, c := range cards {
		if i, ok := l.index[c.ID]; ok {
			l.cards[i] = c
			continue
		}
		l.cards = append(l.cards, c)
		l.index[c.ID] = len(l.cards) - 1
	}
}

func (l *Layout) reindex() {
	l.index = make(map[string]int, len(l.cards))
	for i, c := range l.cards {
		l.index[c.ID] = i
	}
}

// View is a filtered window onto a Layout. Hidden cards keep their position but
// are invisible to hit testing and bounds.
type View struct {
	layout  *Layout
	visible func(personID string) bool
}

// View returns a view showing the cards of people for which visible returns
// true. A nil visible shows every card.
func (l *Layout) View(visible func(personID string) bool) *View {
	return &View{layout: l, visible: visible}
}

func (v *View) shows(c Card) bool {
	return v.visible == nil || v.visible(c.PersonID)
}

// Cards returns the visible cards in draw order.
func (v *View) Cards() []Card {
	out := make([]Card, 0, len(v.layout.cards))
	for _, c := range v.layout.cards {
		if v.shows(c) {
			out = append(out, c)
		}
	}
	return out
}

// Card looks up a visible card by id.
func (v *View) Card(id string) (Card, bool) {
	c, ok := v.layout.Card(id)
	if !ok || !v.shows(c) {
		return Card{}, false
	}
	return c, true
}

// Move repositions a visible card.
func (v *View) Move(id string, pos geometry.Point2D) bool {
	if _, ok := v.Card(id); !ok {
		return false
	}
	return v.layout.Move(id, pos)
}
