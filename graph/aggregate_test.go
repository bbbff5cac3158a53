package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// adjacency snapshots every person's sorted neighbors
func adjacency(reg *Registry) map[int][]int {
	out := make(map[int][]int, reg.Len())
	for _, p := range reg.Sorted() {
		out[p.ID()] = p.SortedNeighbors()
	}
	return out
}

// castFixture generates persons 1..n and overlapping titles
func castFixture(n, titles int) (string, string) {
	basics := []string{basicsHeader}
	for i := 1; i <= n; i++ {
		basics = append(basics, person(fmt.Sprintf("nm%07d", i), fmt.Sprintf("Person %d", i), "1970", `\N`, "actor"))
	}
	principals := []string{principalsHeader}
	for t := 1; t <= titles; t++ {
		for k := 0; k < 4; k++ {
			member := (t*7+k*13)%(n+5) + 1 // some members fall outside 1..n
			principals = append(principals, credit(fmt.Sprintf("tt%07d", t), fmt.Sprintf("nm%07d", member)))
		}
	}
	return lines(basics...), lines(principals...)
}

func TestAggregate_TwoPersonsShareOneGroup(t *testing.T) {
	basics := lines(
		basicsHeader,
		person("nm0000001", "Jane Doe", "1970", `\N`, "actress"),
		person("nm0000002", "John Roe", "1971", `\N`, "actor"),
	)
	principals := lines(principalsHeader, credit("tt0000001", "nm0000001"), credit("tt0000001", "nm0000002"))

	reg := buildGraph(t, basics, principals, 1)
	assert.Equal(t, map[int][]int{1: {2}, 2: {1}}, adjacency(reg))
	assert.Equal(t, 1, reg.Edges())
}

func TestAggregate_SymmetricWithoutSelfLoops(t *testing.T) {
	basics, principals := castFixture(60, 200)
	reg := buildGraph(t, basics, principals, 1)

	for _, p := range reg.Sorted() {
		for _, n := range p.SortedNeighbors() {
			assert.NotEqual(t, p.ID(), n, "self-loop on %d", p.ID())
			other, ok := reg.Get(n)
			require.True(t, ok, "neighbor %d of %d is not a person", n, p.ID())
			assert.Contains(t, other.SortedNeighbors(), p.ID(), "%d -> %d has no reverse edge", p.ID(), n)
		}
		assert.False(t, p.neighbors.Has(p.ID()))
	}
}

func TestAggregate_SameResultForAnyWorkerCount(t *testing.T) {
	defer goleak.VerifyNone(t)

	basics, principals := castFixture(80, 300)
	want := adjacency(buildGraph(t, basics, principals, 1))

	for _, workers := range []int{0, 2, 3, 8, 200} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got := adjacency(buildGraph(t, basics, principals, workers))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("adjacency mismatch with %d workers (-want +got):\n%s", workers, diff)
			}
		})
	}
}

func TestAggregate_SelfUntilFinalize(t *testing.T) {
	reg := registryOf(1, 2)
	idx := NewGroupIndex()
	idx.Add(10, 1)
	idx.Add(10, 2)

	require.NoError(t, Aggregate(context.Background(), idx, reg, 1))
	p, _ := reg.Get(1)
	assert.True(t, p.neighbors.Has(1))
	// Readers never see the transient self entry
	assert.Equal(t, []int{2}, p.SortedNeighbors())
	assert.Equal(t, 1, p.Degree())

	reg.Finalize()
	assert.False(t, p.neighbors.Has(1))
	assert.Equal(t, 1, p.Degree())
}

func TestAggregate_ToleratesUnknownMembers(t *testing.T) {
	reg := registryOf(1)
	idx := NewGroupIndex()
	idx.Add(10, 1)
	idx.Add(10, 99)

	require.NoError(t, Aggregate(context.Background(), idx, reg, 4))
	reg.Finalize()
	p, _ := reg.Get(1)
	assert.Equal(t, []int{99}, p.SortedNeighbors())
}

func TestAggregate_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Aggregate(ctx, NewGroupIndex(), NewRegistry(), 4)
	assert.ErrorIs(t, err, context.Canceled)
}
