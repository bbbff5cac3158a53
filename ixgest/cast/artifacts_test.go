package cast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/graph"
)

func TestWriteArtifacts_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	entitiesPath := filepath.Join(dir, "nomi.txt")
	graphPath := filepath.Join(dir, "grafo.txt")
	require.NoError(t, os.WriteFile(entitiesPath, []byte("stale\n"), am.DefaultFilePermissions))

	p := NewCastIxProcessor(&am.Config{}, zaptest.NewLogger(t).Sugar(), nil)
	persons := []*graph.Person{graph.NewPerson(1, "Jane Doe", 1970)}
	require.NoError(t, p.writeArtifacts(persons, entitiesPath, graphPath))

	assert.Equal(t, "1\tJane Doe\t1970\n", readFile(t, entitiesPath))
	assert.Equal(t, "1\t0\n", readFile(t, graphPath))

	info, err := os.Stat(graphPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(am.DefaultFilePermissions), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staging files left behind")
}

func TestWriteArtifacts_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, am.DefaultFilePermissions))

	p := NewCastIxProcessor(&am.Config{}, zaptest.NewLogger(t).Sugar(), nil)
	err := p.writeArtifacts(nil, filepath.Join(blocker, "nomi.txt"), filepath.Join(blocker, "grafo.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsStreamIO(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestVerifyArtifacts_Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := VerifyArtifacts(filepath.Join(dir, "nomi.txt"), filepath.Join(dir, "grafo.txt"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitStreamIO, errors.ExitCode(err))
}

func TestVerifyArtifacts_Mismatch(t *testing.T) {
	dir := t.TempDir()
	entitiesPath := filepath.Join(dir, "nomi.txt")
	graphPath := filepath.Join(dir, "grafo.txt")
	require.NoError(t, os.WriteFile(entitiesPath, []byte("1\tA\t1970\n2\tB\t1971\n"), am.DefaultFilePermissions))
	require.NoError(t, os.WriteFile(graphPath, []byte("1\t1\t2\n2\t0\n"), am.DefaultFilePermissions))

	_, err := VerifyArtifacts(entitiesPath, graphPath)
	require.Error(t, err)
	assert.Equal(t, errors.ExitVerifyFailed, errors.ExitCode(err))
}
