package project

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"affinity-map/internal/board"
	"affinity-map/internal/roster"
	"affinity-map/pkg/geometry"
)

func sample() *ExportData {
	people := []roster.Person{
		{ID: "alice", Name: "Alice", Tags: []string{"choir"}},
		{ID: "bob", Name: "Bob", Tags: []string{}},
	}
	layout := board.NewLayout()
	layout.Sync([]string{"alice", "bob"})
	layout.Move("bob-recipient", geometry.NewPoint2D(-40, 900))
	return Build(people, layout.Cards(), time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	d := sample()
	if d.Version != FormatVersion {
		t.Errorf("Version = %q, want %q", d.Version, FormatVersion)
	}
	if d.ExportDate != "2024-03-01T12:00:00.000Z" {
		t.Errorf("ExportDate = %q", d.ExportDate)
	}
	if len(d.Positions) != 4 {
		t.Fatalf("len(Positions) = %d, want 4", len(d.Positions))
	}
	first := d.Positions[0]
	if first.ID != "alice-minister" || first.Type != board.RoleMinister || first.Position != geometry.NewPoint2D(100, 100) {
		t.Errorf("Positions[0] = %+v", first)
	}
	if ts, ok := d.Exported(); !ok || !ts.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Exported = %v, %v", ts, ok)
	}
}

func TestMarshalShape(t *testing.T) {
	t.Parallel()

	data, err := Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{
		`"version": "1.0"`,
		`"exportDate": "2024-03-01T12:00:00.000Z"`,
		`"type": "recipient"`,
		`"position": {`,
		`"tags": []`,
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("export missing %s:\n%s", want, data)
		}
	}
}

func TestRoundTripIsStable(t *testing.T) {
	t.Parallel()

	first, err := Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := Parse(first)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	r := roster.New()
	r.Replace(parsed.People)
	layout := board.NewLayout()
	layout.Replace(parsed.Cards())
	again := Build(r.List(), layout.Cards(), time.Now())
	again.ExportDate = parsed.ExportDate

	second, err := Marshal(again)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("re-export differs:\n%s\n---\n%s", first, second)
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "{", "[1,2]", `{"people": "nope"}`, "null", "  null\n", `"text"`, "42", "true"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}

func TestParseAcceptsAnyVersion(t *testing.T) {
	t.Parallel()

	d, err := Parse([]byte(`{"version":"99","people":[{"id":"x","name":"X"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Version != "99" {
		t.Errorf("Version = %q", d.Version)
	}
	if d.Positions == nil || len(d.Positions) != 0 {
		t.Errorf("Positions = %#v, want empty", d.Positions)
	}
	if d.People[0].Tags == nil {
		t.Error("Tags not defaulted")
	}
	if _, ok := d.Exported(); ok {
		t.Error("Exported ok with no date")
	}
}

func TestCardsSkipsUnknownType(t *testing.T) {
	t.Parallel()

	d := &ExportData{Positions: []PositionEntry{
		{ID: "a-minister", Type: board.RoleMinister, Position: geometry.NewPoint2D(1, 2)},
		{ID: "a-leader", Type: "leader"},
		{ID: "odd", Type: board.RoleRecipient},
	}}
	cards := d.Cards()
	if len(cards) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(cards), cards)
	}
	if cards[0].PersonID != "a" || cards[0].Position != geometry.NewPoint2D(1, 2) {
		t.Errorf("cards[0] = %+v", cards[0])
	}
	if cards[1].ID != "odd-recipient" || cards[1].PersonID != "odd" {
		t.Errorf("cards[1] = %+v", cards[1])
	}
}

func TestParseText(t *testing.T) {
	t.Parallel()

	names, err := ParseText(strings.NewReader("Alice\n\n  Bob  \r\n\t\nCarol"))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if want := []string{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestLooksLikeJSON(t *testing.T) {
	t.Parallel()

	if !LooksLikeJSON([]byte("  \n{\"version\":\"1.0\"}")) {
		t.Error("object not detected")
	}
	if LooksLikeJSON([]byte("Alice\nBob")) {
		t.Error("text detected as JSON")
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "board.json")
	if err := Save(path, sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.People) != 2 || len(d.Positions) != 4 {
		t.Errorf("loaded %d people, %d positions", len(d.People), len(d.Positions))
	}
}
