package cast

// Co-appearance graph construction from IMDb name.basics and title.principals snapshots.

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/graph"
	"github.com/teranos/castgraph/internal/syscap"
	"github.com/teranos/castgraph/ixgest/tsv"
	"github.com/teranos/castgraph/logger"
	"github.com/teranos/castgraph/metrics"
)

// CastIxProcessor turns the two IMDb snapshots into the entity and graph artifacts
type CastIxProcessor struct {
	cfg     *am.Config
	dryRun  bool
	trace   bool
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

// CastProcessingResult represents the result of one build run
type CastProcessingResult struct {
	RunID            string              `json:"run_id"`
	EntitiesSource   string              `json:"entities_source"`
	RelationsSource  string              `json:"relations_source"`
	EntitiesArtifact string              `json:"entities_artifact"`
	GraphArtifact    string              `json:"graph_artifact"`
	DryRun           bool                `json:"dry_run"`
	Workers          int                 `json:"workers"`
	Registry         graph.RegistryStats `json:"registry"`
	GroupIndex       graph.GroupStats    `json:"group_index"`
	Persons          int                 `json:"persons"`
	Groups           int                 `json:"groups"`
	Edges            int                 `json:"edges"`
	Phases           []PhaseTiming       `json:"phases"`
	Memory           syscap.Memory       `json:"memory"`
	Success          bool                `json:"success"`
	Message          string              `json:"message"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
}

// PhaseTiming records how long one pipeline phase took
type PhaseTiming struct {
	Phase      string `json:"phase"`
	DurationMS int64  `json:"duration_ms"`
}

// NewCastIxProcessor creates a new cast ix processor.
// A nil m gets a fresh metrics instance.
func NewCastIxProcessor(cfg *am.Config, logger *zap.SugaredLogger, m *metrics.Metrics) *CastIxProcessor {
	if m == nil {
		m = metrics.New()
	}
	return &CastIxProcessor{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// SetDryRun makes Process build the graph without writing artifacts
func (p *CastIxProcessor) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// SetTraceRecords makes ingestion log every skipped record at debug level
func (p *CastIxProcessor) SetTraceRecords(trace bool) {
	p.trace = trace
}

// Metrics returns the metrics of the processor's runs
func (p *CastIxProcessor) Metrics() *metrics.Metrics {
	return p.metrics
}

// Process runs the strictly sequential pipeline: entity registry, group index,
// neighbor aggregation, serialization. The returned result is filled as far
// as the run got, also on error.
//
// Both artifacts are staged next to their final paths and renamed into place
// only after both are fully written, so a failed run leaves any previous
// artifacts untouched and never a truncated one.
func (p *CastIxProcessor) Process(ctx context.Context, entitiesPath, relationsPath string) (*CastProcessingResult, error) {
	runID := uuid.NewString()
	log := logger.ChildLogger(p.logger, logger.FieldRunID, runID)

	result := &CastProcessingResult{
		RunID:            runID,
		EntitiesSource:   entitiesPath,
		RelationsSource:  relationsPath,
		EntitiesArtifact: p.cfg.EntitiesPath(),
		GraphArtifact:    p.cfg.GraphPath(),
		DryRun:           p.dryRun,
		Workers:          p.cfg.GetWorkers(),
		StartTime:        time.Now(),
	}
	fail := func(err error) (*CastProcessingResult, error) {
		result.Success = false
		result.Message = err.Error()
		result.EndTime = time.Now()
		log.Errorw("Build failed", logger.FieldError, err.Error())
		return result, err
	}

	log.Infow("Starting build",
		"entities", entitiesPath,
		"relations", relationsPath,
		logger.FieldWorkers, result.Workers,
		"dry_run", p.dryRun)

	result.Memory = syscap.Check(p.cfg.Resources.MinAvailableMiB, log)

	// Phase 1: entity registry
	start := time.Now()
	reg, regStats, err := p.buildRegistry(ctx, entitiesPath, log)
	result.Registry = regStats
	p.recordRegistry(regStats)
	if err != nil {
		return fail(err)
	}
	p.endPhase(result, metrics.PhaseRegistry, start, log)

	// Phase 2: group index, filtered by the complete registry
	start = time.Now()
	idx, groupStats, err := p.buildGroupIndex(ctx, relationsPath, reg, log)
	result.GroupIndex = groupStats
	p.recordGroups(groupStats)
	if err != nil {
		return fail(err)
	}
	p.endPhase(result, metrics.PhaseGroups, start, log)

	// Phase 3: neighbor aggregation
	start = time.Now()
	if err := graph.Aggregate(ctx, idx, reg, result.Workers); err != nil {
		return fail(errors.Wrap(err, "aggregating neighbors"))
	}
	reg.Finalize()
	p.endPhase(result, metrics.PhaseAggregate, start, log)

	result.Persons = reg.Len()
	result.Groups = idx.Len()
	result.Edges = reg.Edges()
	p.metrics.SetGraph(result.Persons, result.Groups, result.Edges)

	// Phase 4: serialization
	if p.dryRun {
		log.Infow("Dry run, artifacts not written",
			logger.FieldPersons, result.Persons,
			logger.FieldEdges, result.Edges)
	} else {
		start = time.Now()
		if err := p.writeArtifacts(reg.Sorted(), result.EntitiesArtifact, result.GraphArtifact); err != nil {
			return fail(err)
		}
		p.endPhase(result, metrics.PhaseWrite, start, log)
	}

	if path := p.cfg.Metrics.TextfilePath; path != "" {
		if err := p.metrics.WriteTextfile(path); err != nil {
			// The artifacts are complete; a missing metrics file is not fatal
			log.Warnw("Failed to write metrics textfile", logger.FieldFile, path, logger.FieldError, err.Error())
		}
	}

	result.Success = true
	result.EndTime = time.Now()
	result.Message = fmt.Sprintf("Built graph of %d persons and %d edges from %d titles",
		result.Persons, result.Edges, result.Groups)
	log.Infow("Build complete",
		logger.FieldPersons, result.Persons,
		logger.FieldGroups, result.Groups,
		logger.FieldEdges, result.Edges,
		logger.FieldDurationMS, result.EndTime.Sub(result.StartTime).Milliseconds())

	return result, nil
}

func (p *CastIxProcessor) progressInterval() time.Duration {
	return time.Duration(p.cfg.Ingest.ProgressIntervalSeconds) * time.Second
}

// buildRegistry opens the entities source and builds the registry from it
func (p *CastIxProcessor) buildRegistry(ctx context.Context, path string, log *zap.SugaredLogger) (*graph.Registry, graph.RegistryStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, graph.RegistryStats{}, errors.WrapStreamIO(err, path)
	}
	defer f.Close()

	opts := graph.RegistryOptions{
		Roles:         p.cfg.GetRoles(),
		UnknownMarker: p.cfg.GetUnknownMarker(),
		Strict:        p.cfg.Ingest.StrictPersonIdentity,
		Progress:      p.progressInterval(),
		TraceRecords:  p.trace,
	}
	return graph.BuildRegistry(ctx, tsv.NewReader(f, path, p.cfg.GetMaxLineBytes()), opts, log.Named("registry"))
}

// buildGroupIndex opens the relations source and groups registry members by title
func (p *CastIxProcessor) buildGroupIndex(ctx context.Context, path string, reg *graph.Registry, log *zap.SugaredLogger) (*graph.GroupIndex, graph.GroupStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, graph.GroupStats{}, errors.WrapStreamIO(err, path)
	}
	defer f.Close()

	opts := graph.GroupOptions{Progress: p.progressInterval(), TraceRecords: p.trace}
	return graph.BuildGroupIndex(ctx, tsv.NewReader(f, path, p.cfg.GetMaxLineBytes()), reg, opts, log.Named("groups"))
}

func (p *CastIxProcessor) recordRegistry(s graph.RegistryStats) {
	p.metrics.AddRead(metrics.StreamEntities, s.Lines)
	p.metrics.AddSkipped(metrics.StreamEntities, "blank", s.Blank)
	p.metrics.AddSkipped(metrics.StreamEntities, "unqualified", s.Unqualified)
	p.metrics.AddSkipped(metrics.StreamEntities, "invalid_identity", s.InvalidIdentity)
	p.metrics.AddSkipped(metrics.StreamEntities, "invalid_birth_year", s.InvalidBirthYear)
}

func (p *CastIxProcessor) recordGroups(s graph.GroupStats) {
	p.metrics.AddRead(metrics.StreamRelations, s.Lines)
	p.metrics.AddSkipped(metrics.StreamRelations, "blank", s.Blank)
	p.metrics.AddSkipped(metrics.StreamRelations, "invalid_group", s.InvalidGroup)
	p.metrics.AddSkipped(metrics.StreamRelations, "invalid_identity", s.InvalidPerson)
	p.metrics.AddSkipped(metrics.StreamRelations, "unknown_person", s.UnknownPerson)
}

func (p *CastIxProcessor) endPhase(result *CastProcessingResult, phase string, start time.Time, log *zap.SugaredLogger) {
	p.metrics.ObservePhase(phase, start)
	ms := time.Since(start).Milliseconds()
	result.Phases = append(result.Phases, PhaseTiming{Phase: phase, DurationMS: ms})
	log.Debugw("Phase complete", logger.FieldPhase, phase, logger.FieldDurationMS, ms)
}
