package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/castgraph/errors"
)

func registryOf(ids ...int) *Registry {
	reg := NewRegistry()
	for _, id := range ids {
		reg.Put(NewPerson(id, "p", 1970))
	}
	return reg
}

func TestBuildGroupIndex(t *testing.T) {
	principals := lines(
		principalsHeader,
		credit("tt0000001", "nm0000001"),
		credit("tt0000001", "nm0000002"),
		credit("tt0000001", "nm0000001"),
		"",
		credit("tt0000002", "nm0000002"),
		credit("tt0000003", "nm0000099"),
		credit("xx0000004", "nm0000001"),
		credit("tt0000005", "nmBAD"),
	)

	idx, stats, err := BuildGroupIndex(context.Background(), reader("title.principals.tsv", principals),
		registryOf(1, 2), GroupOptions{}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	// Duplicates are kept in ingestion order
	assert.Equal(t, []int{1, 2, 1}, idx.Members(1))
	assert.Equal(t, []int{2}, idx.Members(2))
	assert.Nil(t, idx.Members(3))
	assert.Equal(t, 2, idx.Len())

	assert.Equal(t, GroupStats{
		Lines:         8,
		Blank:         1,
		Memberships:   4,
		Groups:        2,
		InvalidGroup:  1,
		InvalidPerson: 1,
		UnknownPerson: 1,
	}, stats)
	assert.Equal(t, 3, stats.Skipped())
}

func TestBuildGroupIndex_MalformedIsFatal(t *testing.T) {
	principals := lines(
		principalsHeader,
		credit("tt0000001", "nm0000001"),
		"tt0000001\tx\tnm0000002\tx\tx",
	)

	_, _, err := BuildGroupIndex(context.Background(), reader("title.principals.tsv", principals),
		registryOf(1, 2), GroupOptions{}, zaptest.NewLogger(t).Sugar())
	require.Error(t, err)
	assert.True(t, errors.IsMalformedRecord(err))
	assert.Contains(t, err.Error(), "title.principals.tsv line 3")
	assert.Equal(t, errors.ExitInvalidInput, errors.ExitCode(err))
}

func TestBuildGroupIndex_CancelledBeforeFirstRecord(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	principals := lines(principalsHeader, credit("tt0000001", "nm0000001"))
	idx, stats, err := BuildGroupIndex(ctx, reader("title.principals.tsv", principals),
		registryOf(1), GroupOptions{}, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, idx)
	assert.Zero(t, stats.Lines)
}

func TestBuildGroupIndex_TraceRecords(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	principals := lines(
		principalsHeader,
		credit("xx0000001", "nm0000001"),
		credit("tt0000002", "nmBAD"),
		credit("tt0000003", "nm0000099"),
	)

	_, stats, err := BuildGroupIndex(context.Background(), reader("title.principals.tsv", principals),
		registryOf(1), GroupOptions{TraceRecords: true}, zap.New(core).Sugar())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Skipped())

	// Unknown persons are the common case and are never logged one by one
	assert.Equal(t, 1, logs.FilterMessage("Skipping record with invalid title code").Len())
	assert.Equal(t, 1, logs.FilterMessage("Skipping record with invalid person code").Len())
}
