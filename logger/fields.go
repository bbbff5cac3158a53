package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across castgraph.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldPhase     = "phase"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError  = "error"
	FieldReason = "reason"

	// Counts and sizes
	FieldCount   = "count"
	FieldLines   = "lines"
	FieldPersons = "persons"
	FieldGroups  = "groups"
	FieldEdges   = "edges"
	FieldSkipped = "skipped"
	FieldWorkers = "workers"

	// Files and records
	FieldFile = "file"
	FieldLine = "line"
	FieldCode = "code"

	// Resources
	FieldMemTotalMiB     = "mem_total_mib"
	FieldMemAvailableMiB = "mem_available_mib"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	processor := cast.NewCastIxProcessor(cfg, logger.ComponentLogger("castgraph"), m)
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	runLogger := logger.ChildLogger(baseLogger, logger.FieldRunID, runID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
