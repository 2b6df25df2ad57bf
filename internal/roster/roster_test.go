package roster

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAddTrimsAndSlugs(t *testing.T) {
	t.Parallel()

	r := New()
	p, err := r.Add("  Alice  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.Name != "Alice" {
		t.Errorf("Name = %q, want %q", p.Name, "Alice")
	}
	if p.ID != "alice" {
		t.Errorf("ID = %q, want %q", p.ID, "alice")
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil", p.Tags)
	}
}

func TestAddRejectsBlank(t *testing.T) {
	t.Parallel()

	r := New()
	if _, err := r.Add("   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("Add blank err = %v, want ErrEmptyName", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestAddDuplicateNameGetsUniqueID(t *testing.T) {
	t.Parallel()

	r := New()
	a, _ := r.Add("Alice")
	b, _ := r.Add("Alice")
	if a.ID == b.ID {
		t.Fatalf("duplicate ids %q", a.ID)
	}
	if !strings.HasPrefix(b.ID, "alice-") {
		t.Errorf("second id = %q, want alice- prefix", b.ID)
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Alice", "alice"},
		{"Mary Jane", "mary-jane"},
		{"José Núñez", "jose-nunez"},
		{"  --Bob!!  ", "bob"},
		{"???", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.name); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSymbolOnlyNameStillGetsID(t *testing.T) {
	t.Parallel()

	r := New()
	p, err := r.Add("???")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == "" {
		t.Fatal("empty id")
	}
}

func TestAddManySkipsBlank(t *testing.T) {
	t.Parallel()

	r := New()
	added := r.AddMany([]string{"Alice", "", "  ", "Bob"})
	if len(added) != 2 {
		t.Fatalf("added %d, want 2", len(added))
	}
	if got := r.IDs(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Errorf("IDs = %v", got)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	r := New()
	p, _ := r.Add("Alice")

	name := "  Alicia "
	got, err := r.Update(p.ID, Update{Name: &name, Tags: []string{" a ", "b", "a", ""}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Alicia" {
		t.Errorf("Name = %q, want Alicia", got.Name)
	}
	if got.ID != p.ID {
		t.Errorf("ID changed to %q", got.ID)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", got.Tags)
	}

	blank := " "
	got, _ = r.Update(p.ID, Update{Name: &blank})
	if got.Name != "Alicia" {
		t.Errorf("blank rename applied: %q", got.Name)
	}
	if !reflect.DeepEqual(got.Tags, []string{"a", "b"}) {
		t.Errorf("nil Tags cleared tags: %v", got.Tags)
	}

	if _, err := r.Update("nobody", Update{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id err = %v, want ErrNotFound", err)
	}
}

func TestTags(t *testing.T) {
	t.Parallel()

	r := New()
	p, _ := r.Add("Alice")
	r.AddTag(p.ID, " youth ")
	r.AddTag(p.ID, "youth")
	r.AddTag(p.ID, "")
	got, _ := r.AddTag(p.ID, "choir")
	if !reflect.DeepEqual(got.Tags, []string{"youth", "choir"}) {
		t.Fatalf("Tags = %v", got.Tags)
	}
	got, _ = r.RemoveTag(p.ID, "youth")
	if !reflect.DeepEqual(got.Tags, []string{"choir"}) {
		t.Errorf("after remove Tags = %v", got.Tags)
	}
}

func TestListIsACopy(t *testing.T) {
	t.Parallel()

	r := New()
	p, _ := r.Add("Alice")
	r.AddTag(p.ID, "x")

	list := r.List()
	list[0].Name = "changed"
	list[0].Tags[0] = "changed"

	again, _ := r.Get(p.ID)
	if again.Name != "Alice" || again.Tags[0] != "x" {
		t.Errorf("roster mutated through List: %+v", again)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	r := New()
	r.AddMany([]string{"Alice", "Bob", "Carol"})
	if !r.Remove("bob") {
		t.Fatal("Remove(bob) = false")
	}
	if r.Remove("bob") {
		t.Error("second Remove(bob) = true")
	}
	if got := r.IDs(); !reflect.DeepEqual(got, []string{"alice", "carol"}) {
		t.Errorf("IDs = %v", got)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add("Zed")
	r.Replace([]Person{
		{ID: "a", Name: " Alice ", Tags: []string{"x", "x"}},
		{ID: "a", Name: "Shadow"},
		{Name: "Bob"},
	})
	list := r.List()
	if len(list) != 2 {
		t.Fatalf("Len = %d, want 2: %+v", len(list), list)
	}
	if list[0].Name != "Alice" || !reflect.DeepEqual(list[0].Tags, []string{"x"}) {
		t.Errorf("first = %+v", list[0])
	}
	if list[1].ID != "bob" || list[1].Tags == nil {
		t.Errorf("second = %+v", list[1])
	}
}

func TestReconcileKeepsMatchingPeople(t *testing.T) {
	t.Parallel()

	r := New()
	r.AddMany([]string{"Alice", "Bob", "Carol"})
	r.AddTag("alice", "choir")

	added, removed := r.Reconcile([]string{"Dan", " Alice ", "", "Bob"})
	if len(added) != 1 || added[0].ID != "dan" {
		t.Errorf("added = %+v, want dan", added)
	}
	if !reflect.DeepEqual(removed, []string{"carol"}) {
		t.Errorf("removed = %v, want [carol]", removed)
	}
	if got := r.IDs(); !reflect.DeepEqual(got, []string{"dan", "alice", "bob"}) {
		t.Errorf("IDs = %v", got)
	}
	if p, _ := r.Get("alice"); !p.HasTag("choir") {
		t.Errorf("alice lost tags: %+v", p)
	}
}

func TestReconcileIsStable(t *testing.T) {
	t.Parallel()

	r := New()
	names := []string{"Alice", "Bob", "Alice"}
	r.Reconcile(names)
	first := r.IDs()
	for i := 0; i < 3; i++ {
		added, removed := r.Reconcile(names)
		if len(added) != 0 || len(removed) != 0 {
			t.Fatalf("pass %d: added %v removed %v", i, added, removed)
		}
	}
	if got := r.IDs(); !reflect.DeepEqual(got, first) || len(got) != 3 {
		t.Errorf("IDs = %v, want %v", got, first)
	}
}

func TestAllTagsAndFilter(t *testing.T) {
	t.Parallel()

	r := New()
	r.Replace([]Person{
		{ID: "a", Name: "A", Tags: []string{"red", "blue"}},
		{ID: "b", Name: "B", Tags: []string{"green", "red"}},
		{ID: "c", Name: "C"},
	})

	if got := r.AllTags(); !reflect.DeepEqual(got, []string{"red", "blue", "green"}) {
		t.Errorf("AllTags = %v", got)
	}

	ids := func(ps []Person) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	if got := ids(r.Filter(nil)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Filter(nil) = %v", got)
	}
	if got := ids(r.Filter([]string{"green"})); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Filter(green) = %v", got)
	}
	if got := ids(r.Filter([]string{"blue", "green"})); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Filter(blue, green) = %v", got)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	r := New()
	r.AddMany([]string{"Alice Walker", "Bob Stone", "Alan Smith"})

	got := r.Search("bst")
	if len(got) != 1 || got[0].ID != "bob-stone" {
		t.Errorf("Search(bst) = %+v", got)
	}
	if got := r.Search(""); len(got) != 3 {
		t.Errorf("Search(\"\") len = %d, want 3", len(got))
	}
	if got := r.Search("zzz"); len(got) != 0 {
		t.Errorf("Search(zzz) = %+v", got)
	}
}
