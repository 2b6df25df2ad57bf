// Package roster keeps the ordered list of people shown on the board, with their
// tags.
package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrEmptyName is returned when a name is blank after trimming.
	ErrEmptyName = errors.New("name is required")
	// ErrNotFound is returned for unknown person ids.
	ErrNotFound = errors.New("person not found")
)

// Person is one entry in the roster.
type Person struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// HasTag reports whether the person carries tag.
func (p Person) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (p Person) clone() Person {
	p.Tags = append([]string{}, p.Tags...)
	return p
}

// Update is a partial change to a person. Nil fields are left alone; to clear
// all tags pass an empty, non-nil slice.
type Update struct {
	Name *string
	Tags []string
}

// Roster is an ordered collection of people. It is not safe for concurrent
// use; the owner serializes access.
type Roster struct {
	people []Person
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{}
}

// Add appends a person with the trimmed name.
func (r *Roster) Add(name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	p := Person{ID: newID(name, r.has), Name: name, Tags: []string{}}
	r.people = append(r.people, p)
	return p.clone(), nil
}

// AddMany appends one person per non-blank name, in order.
func (r *Roster) AddMany(names []string) []Person {
	var added []Person
	for _, n := range names {
		p, err := r.Add(n)
		if err != nil {
			continue
		}
		added = append(added, p)
	}
	return added
}

// Update applies a partial change. A blank name is ignored, as is a name equal
// to the current one; tags are trimmed and de-duplicated.
func (r *Roster) Update(id string, u Update) (Person, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Person{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	p := &r.people[i]
	if u.Name != nil {
		if name := strings.TrimSpace(*u.Name); name != "" {
			p.Name = name
		}
	}
	if u.Tags != nil {
		p.Tags = normalizeTags(u.Tags)
	}
	return p.clone(), nil
}

// AddTag adds a trimmed tag unless it is blank or already present.
func (r *Roster) AddTag(id, tag string) (Person, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Person{}, fmt.Errorf("add tag to %q: %w", id, ErrNotFound)
	}
	tag = strings.TrimSpace(tag)
	if tag != "" && !r.people[i].HasTag(tag) {
		r.people[i].Tags = append(r.people[i].Tags, tag)
	}
	return r.people[i].clone(), nil
}

// RemoveTag drops a tag from a person.
func (r *Roster) RemoveTag(id, tag string) (Person, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Person{}, fmt.Errorf("remove tag from %q: %w", id, ErrNotFound)
	}
	kept := r.people[i].Tags[:0]
	for _, t := range r.people[i].Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	r.people[i].Tags = kept
	return r.people[i].clone(), nil
}

// Remove deletes a person. Unknown ids are a no-op reported as false.
func (r *Roster) Remove(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.people = append(r.people[:i], r.people[i+1:]...)
	return true
}

// Get looks up a person by id.
func (r *Roster) Get(id string) (Person, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Person{}, false
	}
	return r.people[i].clone(), true
}

// List returns a copy of the roster in insertion order.
func (r *Roster) List() []Person {
	out := make([]Person, len(r.people))
	for i, p := range r.people {
		out[i] = p.clone()
	}
	return out
}

// IDs returns the person ids in order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.people))
	for i, p := range r.people {
		out[i] = p.ID
	}
	return out
}

// Len returns the number of people.
func (r *Roster) Len() int {
	return len(r.people)
}

// Replace swaps in a whole roster, e.g. from an import. Blank ids are
// regenerated, tags normalized and duplicate ids dropped.
func (r *Roster) Replace(people []Person) {
	next := &Roster{people: make([]Person, 0, len(people))}
	for _, p := range people {
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" {
			p.ID = newID(p.Name, next.has)
		}
		if next.has(p.ID) {
			continue
		}
		p.Tags = normalizeTags(p.Tags)
		next.people = append(next.people, p)
	}
	r.people = next.people
}

// Reconcile makes the roster match a list of names. Each name keeps the first
// unclaimed person already carrying it, ids and tags intact; names nobody
// carries are added and people whose name is absent are removed. Roster order
// follows names.
func (r *Roster) Reconcile(names []string) (added []Person, removed []string) {
	byName := make(map[string][]int)
	for i, p := range r.people {
		byName[p.Name] = append(byName[p.Name], i)
	}
	claimed := make([]bool, len(r.people))
	next := &Roster{people: make([]Person, 0, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if idx := byName[n]; len(idx) > 0 {
			claimed[idx[0]] = true
			byName[n] = idx[1:]
			next.people = append(next.people, r.people[idx[0]])
			continue
		}
		// placeholder keeps order; id assigned once every kept id is known
		next.people = append(next.people, Person{Name: n})
	}
	for i, p := range r.people {
		if !claimed[i] {
			removed = append(removed, p.ID)
		}
	}
	for i := range next.people {
		p := &next.people[i]
		if p.ID != "" {
			continue
		}
		p.ID = newID(p.Name, next.has)
		p.Tags = []string{}
		added = append(added, p.clone())
	}
	r.people = next.people
	return added, removed
}

// AllTags returns every tag in use, in first-seen order.
func (r *Roster) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range r.people {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Filter returns the people carrying any of the selected tags. With no
// selection everyone matches.
func (r *Roster) Filter(selected []string) []Person {
	if len(selected) == 0 {
		return r.List()
	}
	var out []Person
	for _, p := range r.people {
		for _, t := range selected {
			if p.HasTag(t) {
				out = append(out, p.clone())
				break
			}
		}
	}
	return out
}

// Search returns people whose names fuzzily match query, best match first. An
// empty query returns everyone in roster order.
func (r *Roster) Search(query string) []Person {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List()
	}
	names := make([]string, len(r.people))
	for i, p := range r.people {
		names[i] = p.Name
	}
	matches := fuzzy.Find(query, names)
	out := make([]Person, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.people[m.Index].clone())
	}
	return out
}

func (r *Roster) has(id string) bool {
	return r.indexOf(id) >= 0
}

func (r *Roster) indexOf(id string) int {
	for i, p := range r.people {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
