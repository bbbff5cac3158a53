package graph

import (
	"slices"
)

// Person is a qualifying individual from the entities source.
// Identity, name and birth year are fixed at construction; only the
// neighbor set changes, and only through the Registry.
type Person struct {
	id        int
	name      string
	birthYear int
	neighbors NeighborSet
}

// NewPerson creates a person with an empty neighbor set
func NewPerson(id int, name string, birthYear int) *Person {
	return &Person{
		id:        id,
		name:      name,
		birthYear: birthYear,
		neighbors: make(NeighborSet),
	}
}

// ID returns the normalized identity
func (p *Person) ID() int { return p.id }

// Name returns the display name, verbatim from the source
func (p *Person) Name() string { return p.name }

// BirthYear returns the birth year
func (p *Person) BirthYear() int { return p.birthYear }

// SortedNeighbors returns the neighbor identities in ascending order,
// never including the person's own identity.
func (p *Person) SortedNeighbors() []int {
	out := make([]int, 0, len(p.neighbors))
	for id := range p.neighbors {
		if id != p.id {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of neighbors, excluding self
func (p *Person) Degree() int {
	n := len(p.neighbors)
	if p.neighbors.Has(p.id) {
		n--
	}
	return n
}

// NeighborSet is a set of person identities
type NeighborSet map[int]struct{}

// AddAll inserts every id; duplicates are absorbed
func (s NeighborSet) AddAll(ids []int) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set
func (s NeighborSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Registry owns every Person of a run, keyed by identity.
// The map is filled during ingestion and sorted once, in Sorted.
type Registry struct {
	persons map[int]*Person
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{persons: make(map[int]*Person)}
}

// Put inserts p, replacing any person with the same identity (last write wins).
// It reports whether an existing person was replaced.
func (r *Registry) Put(p *Person) bool {
	_, replaced := r.persons[p.id]
	r.persons[p.id] = p
	return replaced
}

// Get returns the person with the given identity
func (r *Registry) Get(id int) (*Person, bool) {
	p, ok := r.persons[id]
	return p, ok
}

// Contains reports whether id belongs to a qualifying person
func (r *Registry) Contains(id int) bool {
	_, ok := r.persons[id]
	return ok
}

// Len returns the number of persons
func (r *Registry) Len() int {
	return len(r.persons)
}

// neighbors hands out the mutable neighbor set of one person.
// This is the only write path into a Person after construction.
func (r *Registry) neighbors(id int) (NeighborSet, bool) {
	p, ok := r.persons[id]
	if !ok {
		return nil, false
	}
	return p.neighbors, true
}

// Finalize removes every person's own identity from its neighbor set.
// Call once aggregation is complete.
func (r *Registry) Finalize() {
	for id, p := range r.persons {
		delete(p.neighbors, id)
	}
}

// Sorted returns all persons ordered by ascending identity
func (r *Registry) Sorted() []*Person {
	out := make([]*Person, 0, len(r.persons))
	for _, p := range r.persons {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *Person) int {
		return a.id - b.id
	})
	return out
}

// Edges returns the number of undirected co-appearance edges
func (r *Registry) Edges() int {
	total := 0
	for _, p := range r.persons {
		total += p.Degree()
	}
	return total / 2
}
