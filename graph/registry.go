package graph

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/logger"
)

// RecordReader supplies parsed records from one input stream.
// *tsv.Reader implements it.
type RecordReader interface {
	// SkipHeader discards the first line
	SkipHeader() error
	// Record returns the next record, (nil, nil) for a blank line, io.EOF at end
	Record() ([]string, error)
	// Line returns the number of the last line read
	Line() int
	// Name identifies the stream in errors
	Name() string
}

// RegistryOptions controls entity qualification
type RegistryOptions struct {
	Roles         []string      // Profession tokens; one must be present (case-insensitive)
	UnknownMarker string        // Birth-year sentinel that rejects a record
	Strict        bool          // Abort on an invalid person code or birth year instead of skipping
	Progress      time.Duration // Minimum interval between progress logs (0 = none)
	TraceRecords  bool          // Log every skipped record at debug level
}

// RegistryStats counts what happened to each line of the entities source
type RegistryStats struct {
	Lines            int `json:"lines"`
	Blank            int `json:"blank"`
	Persons          int `json:"persons"`
	Unqualified      int `json:"unqualified"`
	InvalidIdentity  int `json:"invalid_identity"`
	InvalidBirthYear int `json:"invalid_birth_year"`
	Duplicates       int `json:"duplicates"`
}

// Skipped returns the number of non-blank records that produced no person
func (s RegistryStats) Skipped() int {
	return s.Unqualified + s.InvalidIdentity + s.InvalidBirthYear
}

// Qualifies reports whether an entity record passes the content checks: the
// birth year is not the unknown marker and the professions list contains one
// of roles. It is a pure function of its arguments.
func Qualifies(fields []string, roles []string, unknownMarker string) bool {
	if len(fields) <= colProfessions {
		return false
	}
	if fields[colBirthYear] == unknownMarker {
		return false
	}
	return hasRole(fields[colProfessions], roles)
}

// hasRole checks a comma-separated professions list for any of roles
func hasRole(professions string, roles []string) bool {
	for _, profession := range strings.Split(professions, ",") {
		profession = strings.TrimSpace(profession)
		for _, role := range roles {
			if strings.EqualFold(profession, strings.TrimSpace(role)) {
				return true
			}
		}
	}
	return false
}

// BuildRegistry reads the entities source and returns the registry of
// qualifying persons. The first line is skipped unconditionally.
//
// Malformed lines and stream failures are fatal. Unqualified records are
// skipped. Invalid person codes and birth years are skipped unless
// opts.Strict is set, in which case they are fatal.
func BuildRegistry(ctx context.Context, r RecordReader, opts RegistryOptions, log *zap.SugaredLogger) (*Registry, RegistryStats, error) {
	var stats RegistryStats
	reg := NewRegistry()
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

		if !Qualifies(fields, opts.Roles, opts.UnknownMarker) {
			stats.Unqualified++
			continue
		}

		id, ok := PersonIdentity(fields[colPersonCode])
		if !ok {
			stats.InvalidIdentity++
			if opts.Strict {
				return nil, stats, errors.WithHint(
					errors.Wrapf(errors.ErrInvalidIdentity, "%s line %d: person code %q", r.Name(), r.Line(), fields[colPersonCode]),
					"fix the code or rerun without strict_person_identity to skip such records",
				)
			}
			if opts.TraceRecords {
				log.Debugw("Skipping record with invalid person code",
					logger.FieldFile, r.Name(), logger.FieldLine, r.Line(), logger.FieldCode, fields[colPersonCode])
			}
			continue
		}

		year, err := strconv.Atoi(fields[colBirthYear])
		if err != nil {
			stats.InvalidBirthYear++
			if opts.Strict {
				return nil, stats, errors.WithHint(
					errors.Wrapf(errors.ErrInvalidValue, "%s line %d: birth year %q", r.Name(), r.Line(), fields[colBirthYear]),
					"fix the birth year or rerun without strict_person_identity to skip such records",
				)
			}
			if opts.TraceRecords {
				log.Debugw("Skipping record with invalid birth year",
					logger.FieldFile, r.Name(), logger.FieldLine, r.Line(), logger.FieldCode, fields[colPersonCode])
			}
			continue
		}

		if reg.Put(NewPerson(id, fields[colPersonName], year)) {
			stats.Duplicates++
		}
	}

	stats.Persons = reg.Len()
	log.Infow("Entity registry built",
		logger.FieldFile, r.Name(),
		logger.FieldLines, stats.Lines,
		logger.FieldPersons, stats.Persons,
		logger.FieldSkipped, stats.Skipped())

	return reg, stats, nil
}
