package graph

import (
	"github.com/teranos/castgraph/ixgest/tsv"
)

// WriteEntities writes one "identity\tname\tbirthYear" line per person.
// persons must already be in ascending identity order (see Registry.Sorted).
func WriteEntities(w *tsv.Writer, persons []*Person) error {
	for _, p := range persons {
		if err := w.BeginInt(p.id).Field(p.name).Int(p.birthYear).End(); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteGraph writes one "identity\tcount\tneighbor..." line per person, with
// neighbors ascending and the person's own identity left out.
// persons must already be in ascending identity order (see Registry.Sorted).
func WriteGraph(w *tsv.Writer, persons []*Person) error {
	for _, p := range persons {
		neighbors := p.SortedNeighbors()
		w.BeginInt(p.id).Int(len(neighbors))
		for _, n := range neighbors {
			w.Int(n)
		}
		if err := w.End(); err != nil {
			return err
		}
	}
	return w.Flush()
}
