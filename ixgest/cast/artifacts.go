package cast

import (
	"os"
	"path/filepath"

	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/graph"
	"github.com/teranos/castgraph/ixgest/tsv"
)

// stagedFile is an artifact being written under a temporary name
type stagedFile struct {
	final string
	tmp   *os.File
}

// stage creates a temporary file in the directory of path
func stage(path string) (*stagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return nil, errors.WrapStreamIO(err, dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, errors.WrapStreamIO(err, path)
	}
	return &stagedFile{final: path, tmp: tmp}, nil
}

// write fills the staged file and closes it
func (s *stagedFile) write(fn func(*tsv.Writer) error) error {
	if err := fn(tsv.NewWriter(s.tmp, s.final)); err != nil {
		return err
	}
	if err := s.tmp.Chmod(am.DefaultFilePermissions); err != nil {
		return errors.WrapStreamIO(err, s.final)
	}
	if err := s.tmp.Close(); err != nil {
		return errors.WrapStreamIO(err, s.final)
	}
	return nil
}

// commit renames the staged file over the final path
func (s *stagedFile) commit() error {
	if err := os.Rename(s.tmp.Name(), s.final); err != nil {
		return errors.WrapStreamIO(err, s.final)
	}
	return nil
}

// discard removes the temporary file; safe after commit
func (s *stagedFile) discard() {
	_ = s.tmp.Close()
	_ = os.Remove(s.tmp.Name())
}

// writeArtifacts writes the entity artifact completely, then the graph
// artifact, and only then moves both into place.
func (p *CastIxProcessor) writeArtifacts(persons []*graph.Person, entitiesPath, graphPath string) error {
	entities, err := stage(entitiesPath)
	if err != nil {
		return err
	}
	defer entities.discard()

	adjacency, err := stage(graphPath)
	if err != nil {
		return err
	}
	defer adjacency.discard()

	if err := entities.write(func(w *tsv.Writer) error { return graph.WriteEntities(w, persons) }); err != nil {
		return err
	}
	if err := adjacency.write(func(w *tsv.Writer) error { return graph.WriteGraph(w, persons) }); err != nil {
		return err
	}

	if err := entities.commit(); err != nil {
		return err
	}
	return adjacency.commit()
}

// VerifyArtifacts reopens a pair of written artifacts and checks them with
// graph.Verify.
func VerifyArtifacts(entitiesPath, graphPath string) (*graph.VerifyReport, error) {
	entities, err := os.Open(entitiesPath)
	if err != nil {
		return nil, errors.WrapStreamIO(err, entitiesPath)
	}
	defer entities.Close()

	adjacency, err := os.Open(graphPath)
	if err != nil {
		return nil, errors.WrapStreamIO(err, graphPath)
	}
	defer adjacency.Close()

	return graph.Verify(entities, adjacency, entitiesPath, graphPath)
}
