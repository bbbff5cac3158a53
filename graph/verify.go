package graph

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/ixgest/tsv"
)

// verifyMaxLineBytes bounds graph artifact lines, which grow with degree
const verifyMaxLineBytes = 64 << 20

// VerifyReport summarizes a pair of artifacts that passed verification
type VerifyReport struct {
	Persons   int `json:"persons"`
	Edges     int `json:"edges"`
	Isolated  int `json:"isolated"`
	MaxDegree int `json:"max_degree"`
}

// Verify reloads an entity artifact and a graph artifact and checks that they
// are consistent with each other: same identities in the same strictly
// ascending order, declared neighbor counts match, neighbor lists are strictly
// ascending, no self-loops, every neighbor is a known person and adjacency is
// symmetric. The first violation is returned as an error matching
// errors.ErrArtifactMismatch.
func Verify(entities, graph io.Reader, entitiesName, graphName string) (*VerifyReport, error) {
	ids, err := readEntityIDs(tsv.NewReader(entities, entitiesName, verifyMaxLineBytes))
	if err != nil {
		return nil, err
	}

	adjacency, err := readAdjacency(tsv.NewReader(graph, graphName, verifyMaxLineBytes), ids)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{Persons: len(ids)}
	degrees := 0
	for i, id := range ids {
		neighbors := adjacency[i]
		degrees += len(neighbors)
		if len(neighbors) == 0 {
			report.Isolated++
		}
		if len(neighbors) > report.MaxDegree {
			report.MaxDegree = len(neighbors)
		}
		for _, n := range neighbors {
			j, _ := slices.BinarySearch(ids, n)
			if _, found := slices.BinarySearch(adjacency[j], id); !found {
				return nil, mismatch(graphName, i+1, "%d lists %d as neighbor but %d does not list %d", id, n, n, id)
			}
		}
	}
	report.Edges = degrees / 2

	return report, nil
}

func mismatch(name string, line int, format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrArtifactMismatch, "%s line %d: "+format, append([]interface{}{name, line}, args...)...)
}

// readEntityIDs returns the identities of the entity artifact, checking the
// line shape and the ascending order
func readEntityIDs(r *tsv.Reader) ([]int, error) {
	var ids []int
	for {
		line, err := r.Next()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, mismatch(r.Name(), r.Line(), "expected 3 fields, got %d", len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 0 {
			return nil, mismatch(r.Name(), r.Line(), "identity %q is not a non-negative integer", fields[0])
		}
		if _, err := strconv.Atoi(fields[2]); err != nil {
			return nil, mismatch(r.Name(), r.Line(), "birth year %q is not an integer", fields[2])
		}
		if len(ids) > 0 && id <= ids[len(ids)-1] {
			return nil, mismatch(r.Name(), r.Line(), "identity %d does not ascend after %d", id, ids[len(ids)-1])
		}
		ids = append(ids, id)
	}
}

// readAdjacency parses the graph artifact into neighbor lists indexed like ids
func readAdjacency(r *tsv.Reader, ids []int) ([][]int, error) {
	adjacency := make([][]int, 0, len(ids))
	for {
		line, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := len(adjacency)
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, mismatch(r.Name(), r.Line(), "expected at least 2 fields, got %d", len(fields))
		}
		values := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, mismatch(r.Name(), r.Line(), "field %d %q is not a non-negative integer", i+1, f)
			}
			values[i] = v
		}

		id, count, neighbors := values[0], values[1], values[2:]
		if row >= len(ids) {
			return nil, mismatch(r.Name(), r.Line(), "identity %d has no entity line", id)
		}
		if id != ids[row] {
			return nil, mismatch(r.Name(), r.Line(), "identity %d does not match entity line identity %d", id, ids[row])
		}
		if count != len(neighbors) {
			return nil, mismatch(r.Name(), r.Line(), "identity %d declares %d neighbors but lists %d", id, count, len(neighbors))
		}
		for i, n := range neighbors {
			if n == id {
				return nil, mismatch(r.Name(), r.Line(), "identity %d lists itself as neighbor", id)
			}
			if i > 0 && n <= neighbors[i-1] {
				return nil, mismatch(r.Name(), r.Line(), "identity %d neighbors do not ascend at %d", id, n)
			}
			if _, found := slices.BinarySearch(ids, n); !found {
				return nil, mismatch(r.Name(), r.Line(), "identity %d lists unknown neighbor %d", id, n)
			}
		}
		adjacency = append(adjacency, neighbors)
	}

	if len(adjacency) != len(ids) {
		return nil, mismatch(r.Name(), r.Line(), "has %d lines but the entity artifact has %d", len(adjacency), len(ids))
	}
	return adjacency, nil
}
