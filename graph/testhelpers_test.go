package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/castgraph/ixgest/tsv"
)

const (
	basicsHeader     = "nconst\tprimaryName\tbirthYear\tdeathYear\tprimaryProfession\tknownForTitles"
	principalsHeader = "tconst\tordering\tnconst\tcategory\tjob\tcharacters"
)

var defaultRoles = []string{"actor", "actress"}

// lines joins rows with newlines, with a trailing newline
func lines(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// person builds a names row
func person(code, name, birth, death, professions string) string {
	return strings.Join([]string{code, name, birth, death, professions, "tt0000001"}, "\t")
}

// credit builds a principals row
func credit(title, code string) string {
	return strings.Join([]string{title, "1", code, "actor", `\N`, `\N`}, "\t")
}

func reader(name, content string) *tsv.Reader {
	return tsv.NewReader(strings.NewReader(content), name, 0)
}

// buildGraph runs registry, groups, aggregation and finalization over two
// in-memory sources
func buildGraph(t *testing.T, basics, principals string, workers int) *Registry {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t).Sugar()

	reg, _, err := BuildRegistry(ctx, reader("name.basics.tsv", basics),
		RegistryOptions{Roles: defaultRoles, UnknownMarker: `\N`}, log)
	require.NoError(t, err)

	idx, _, err := BuildGroupIndex(ctx, reader("title.principals.tsv", principals), reg, GroupOptions{}, log)
	require.NoError(t, err)

	require.NoError(t, Aggregate(ctx, idx, reg, workers))
	reg.Finalize()
	return reg
}
