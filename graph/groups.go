package graph

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/castgraph/logger"
)

// GroupIndex maps a title identity to the qualifying persons credited in it.
// It holds identities only; the Registry owns the persons.
type GroupIndex struct {
	groups      map[int][]int
	memberships int
}

// NewGroupIndex creates an empty index
func NewGroupIndex() *GroupIndex {
	return &GroupIndex{groups: make(map[int][]int)}
}

// Add appends person to group, creating the group on first use.
// Duplicates are kept; neighbor sets absorb them.
func (g *GroupIndex) Add(group, person int) {
	g.groups[group] = append(g.groups[group], person)
	g.memberships++
}

// Members returns the member list of a group, in ingestion order
func (g *GroupIndex) Members(group int) []int {
	return g.groups[group]
}

// Len returns the number of groups with at least one member
func (g *GroupIndex) Len() int {
	return len(g.groups)
}

// Memberships returns the total number of member entries across all groups
func (g *GroupIndex) Memberships() int {
	return g.memberships
}

// GroupOptions controls group index construction
type GroupOptions struct {
	Progress     time.Duration // Minimum interval between progress logs (0 = none)
	TraceRecords bool          // Log every record with an unparsable code at debug level
}

// GroupStats counts what happened to each line of the relations source
type GroupStats struct {
	Lines         int `json:"lines"`
	Blank         int `json:"blank"`
	Memberships   int `json:"memberships"`
	Groups        int `json:"groups"`
	InvalidGroup  int `json:"invalid_group"`
	InvalidPerson int `json:"invalid_person"`
	UnknownPerson int `json:"unknown_person"`
}

// Skipped returns the number of non-blank records that added no membership
func (s GroupStats) Skipped() int {
	return s.InvalidGroup + s.InvalidPerson + s.UnknownPerson
}

// BuildGroupIndex reads the relations source and groups the persons of reg
// by title. The first line is skipped unconditionally.
//
// Records with an unparsable title or person code, or whose person is not in
// reg, are skipped without error; opts.TraceRecords logs the unparsable ones.
// Malformed lines and stream failures are fatal.
func BuildGroupIndex(ctx context.Context, r RecordReader, reg *Registry, opts GroupOptions, log *zap.SugaredLogger) (*GroupIndex, GroupStats, error) {
	var stats GroupStats
	idx := NewGroupIndex()
	prog := newProgress(log, r.Name(), opts.Progress)

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if err := r.SkipHeader(); err != nil {
		return nil, stats, err
	}

	for {
		fields, err := r.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Lines++
		prog.tick(r.Line())

		if stats.Lines%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		if fields == nil {
			stats.Blank++
			continue
		}

		group, ok := GroupIdentity(fields[colGroupCode])
		if !ok {
			stats.InvalidGroup++
			if opts.TraceRecords {
				log.Debugw("Skipping record with invalid title code",
					logger.FieldFile, r.Name(), logger.FieldLine, r.Line(), logger.FieldCode, fields[colGroupCode])
			}
			continue
		}
		person, ok := PersonIdentity(fields[colMemberCode])
		if !ok {
			stats.InvalidPerson++
			if opts.TraceRecords {
				log.Debugw("Skipping record with invalid person code",
					logger.FieldFile, r.Name(), logger.FieldLine, r.Line(), logger.FieldCode, fields[colMemberCode])
			}
			continue
		}
		if !reg.Contains(person) {
			stats.UnknownPerson++
			continue
		}

		idx.Add(group, person)
	}

	stats.Memberships = idx.Memberships()
	stats.Groups = idx.Len()
	log.Infow("Group index built",
		logger.FieldFile, r.Name(),
		logger.FieldLines, stats.Lines,
		logger.FieldGroups, stats.Groups,
		logger.FieldCount, stats.Memberships,
		logger.FieldSkipped, stats.Skipped())

	return idx, stats, nil
}
