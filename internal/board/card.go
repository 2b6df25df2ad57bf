// Package board provides the card model: one card per person and role, placed in
// world space on the whiteboard.
package board

import (
	"strings"

	"affinity-map/pkg/geometry"
)

// Card footprint in world units. Rendered cards may be smaller; bounds and hit
// testing use this fixed size.
const (
	CardWidth  = 250.0
	CardHeight = 150.0
)

// Initial placement grid.
const (
	MinisterColumnX  = 100.0
	RecipientColumnX = 600.0
	FirstRowY        = 100.0
	RowSpacing       = 150.0
)

// Role is the column a card belongs to.
type Role string

const (
	RoleMinister  Role = "minister"
	RoleRecipient Role = "recipient"
)

// Roles lists every role in placement order.
var Roles = []Role{RoleMinister, RoleRecipient}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMinister || r == RoleRecipient
}

// Label returns the display caption for the role.
func (r Role) Label() string {
	switch r {
	case RoleMinister:
		return "(Minister)"
	case RoleRecipient:
		return "(Recipient)"
	default:
		return ""
	}
}

// Card is one person's appearance in one role.
type Card struct {
	ID       string
	PersonID string
	Role     Role
	Position geometry.Point2D // top-left corner in world space
}

// CardID returns the card identifier for a person and role.
func CardID(personID string, role Role) string {
	return personID + "-" + string(role)
}

// SplitCardID recovers the person id and role from a card id.
func SplitCardID(id string) (personID string, role Role, ok bool) {
	for _, r := range Roles {
		suffix := "-" + string(r)
		if strings.HasSuffix(id, suffix) && len(id) > len(suffix) {
			return strings.TrimSuffix(id, suffix), r, true
		}
	}
	return "", "", false
}

// InitialPosition returns where a new card for the person at index goes.
func InitialPosition(role Role, index int) geometry.Point2D {
	x := MinisterColumnX
	if role == RoleRecipient {
		x = RecipientColumnX
	}
	return geometry.Point2D{X: x, Y: FirstRowY + RowSpacing*float64(index)}
}

// Rect returns the card footprint in world space.
func (c Card) Rect() geometry.Rect {
	return geometry.NewRect(c.Position.X, c.Position.Y, CardWidth, CardHeight)
}

// HitTest returns the topmost card whose footprint contains the world point.
// Later cards are drawn on top of earlier ones.
func HitTest(cards []Card, world geometry.Point2D) (Card, bool) {
	for i := len(cards) - 1; i >= 0; i-- {
		if cards[i].Rect().Contains(world) {
			return cards[i], true
		}
	}
	return Card{}, false
}
