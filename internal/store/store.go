// Package store persists board state in a small set of named slots.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Slot names one piece of persisted state.
type Slot string

const (
	SlotPeople    Slot = "people"
	SlotPositions Slot = "positions"
	SlotZoom      Slot = "zoom"
	SlotPan       Slot = "pan"
)

// Slots lists every known slot.
var Slots = []Slot{SlotPeople, SlotPositions, SlotZoom, SlotPan}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	for _, k := range Slots {
		if s == k {
			return true
		}
	}
	return false
}

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrUnknownSlot is returned for slot names outside Slots.
	ErrUnknownSlot = errors.New("unknown slot")
)

// Store loads and saves raw JSON values by slot.
type Store interface {
	// Load returns the stored value and whether the slot was present.
	Load(ctx context.Context, slot Slot) ([]byte, bool, error)
	Save(ctx context.Context, slot Slot, value []byte) error
	Close() error
}

// Open opens the named backend at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// LoadJSON decodes a slot into v. It reports false, leaving v untouched, when
// the slot is empty.
func LoadJSON(ctx context.Context, s Store, slot Slot, v any) (bool, error) {
	data, ok, err := s.Load(ctx, slot)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return true, nil
}

// SaveJSON encodes v into a slot.
func SaveJSON(ctx context.Context, s Store, slot Slot, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	return s.Save(ctx, slot, data)
}

func checkSlot(slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return nil
}
