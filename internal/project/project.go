// Package project handles the exchange formats: the JSON export of a whole board
// and the plain-text roster of one name per line.
package project

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"affinity-map/internal/board"
	"affinity-map/internal/roster"
	"affinity-map/pkg/geometry"
)

// FormatVersion is written into every export. Imports accept any version.
const FormatVersion = "1.0"

// isoLayout matches what browsers produce for Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrMalformed is returned when import data cannot be decoded.
var ErrMalformed = errors.New("malformed import data")

// PositionEntry is one card in an export.
type PositionEntry struct {
	ID       string           `json:"id"`
	Position geometry.Point2D `json:"position"`
	Type     board.Role       `json:"type"`
}

// ExportData is the JSON export of a board.
type ExportData struct {
	Version    string          `json:"version"`
	People     []roster.Person `json:"people"`
	Positions  []PositionEntry `json:"positions"`
	ExportDate string          `json:"exportDate"`
}

// Build assembles an export from the roster and the card layout.
func Build(people []roster.Person, cards []board.Card, now time.Time) *ExportData {
	d := &ExportData{
		Version:    FormatVersion,
		People:     make([]roster.Person, 0, len(people)),
		Positions:  make([]PositionEntry, 0, len(cards)),
		ExportDate: now.UTC().Format(isoLayout),
	}
	d.People = append(d.People, people...)
	for _, c := range cards {
		d.Positions = append(d.Positions, PositionEntry{ID: c.ID, Position: c.Position, Type: c.Role})
	}
	return d
}

// Exported returns the parsed export date, if it has one.
func (d *ExportData) Exported() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, d.ExportDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Cards converts the position entries back into cards. Entries whose type is
// unknown are skipped.
func (d *ExportData) Cards() []board.Card {
	cards := make([]board.Card, 0, len(d.Positions))
	for _, p := range d.Positions {
		if !p.Type.Valid() {
			continue
		}
		pid, role, ok := board.SplitCardID(p.ID)
		if !ok || role != p.Type {
			pid = strings.TrimSuffix(p.ID, "-"+string(p.Type))
		}
		cards = append(cards, board.Card{
			ID:       board.CardID(pid, p.Type),
			PersonID: pid,
			Role:     p.Type,
			Position: p.Position,
		})
	}
	return cards
}

// Marshal encodes an export as indented JSON.
func Marshal(d *ExportData) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// Parse decodes an export. The top-level value must be an object; missing
// arrays decode as empty.
func Parse(data []byte) (*ExportData, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: export must be a JSON object", ErrMalformed)
	}
	var d ExportData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d.People == nil {
		d.People = []roster.Person{}
	}
	if d.Positions == nil {
		d.Positions = []PositionEntry{}
	}
	for i := range d.People {
		if d.People[i].Tags == nil {
			d.People[i].Tags = []string{}
		}
	}
	return &d, nil
}

// ParseText reads one name per line. Names are trimmed and blank lines dropped.
func ParseText(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return names, nil
}

// LooksLikeJSON reports whether data starts like a JSON object.
func LooksLikeJSON(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// Load reads an export file.
func Load(path string) (*ExportData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Save writes an export file.
func Save(path string, d *ExportData) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
