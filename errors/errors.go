// Package errors provides error handling for castgraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints that are printed to the operator beneath a fatal error
//
// Usage:
//
//	// Wrap with context
//	if err := reader.Next(); err != nil {
//	    return errors.Wrapf(err, "reading %s", path)
//	}
//
//	// Classify input problems
//	return errors.Wrapf(errors.ErrMalformedRecord, "line %d has %d fields", line, n)
//
//	// Check errors
//	if errors.Is(err, errors.ErrStreamIO) {
//	    // fatal I/O
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"context"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for the graph build.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedRecord indicates a non-empty line did not split into the expected field count
	ErrMalformedRecord = New("malformed record")

	// ErrInvalidIdentity indicates a code failed prefix stripping or integer parsing
	ErrInvalidIdentity = New("invalid identity")

	// ErrInvalidValue indicates a field that must be numeric is not
	ErrInvalidValue = New("invalid field value")

	// ErrStreamIO indicates the underlying reader or writer failed
	ErrStreamIO = New("stream i/o failure")

	// ErrArtifactMismatch indicates a written artifact failed verification
	ErrArtifactMismatch = New("artifact mismatch")

	// ErrInvalidConfig indicates the configuration did not validate
	ErrInvalidConfig = New("invalid configuration")
)

// Process exit codes for fatal errors.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitStreamIO     = 2
	ExitInvalidInput = 3
	ExitVerifyFailed = 4
	ExitInterrupted  = 130 // 128 + SIGINT, as a shell reports Ctrl-C
)

// IsMalformedRecord checks if an error is or wraps ErrMalformedRecord
func IsMalformedRecord(err error) bool {
	return err != nil && Is(err, ErrMalformedRecord)
}

// IsInvalidIdentity checks if an error is or wraps ErrInvalidIdentity
func IsInvalidIdentity(err error) bool {
	return err != nil && Is(err, ErrInvalidIdentity)
}

// IsStreamIO checks if an error is or wraps ErrStreamIO
func IsStreamIO(err error) bool {
	return err != nil && Is(err, ErrStreamIO)
}

// WrapStreamIO marks err as a stream failure on the named file.
// The original error stays reachable through errors.Is/As.
func WrapStreamIO(err error, file string) error {
	if err == nil {
		return nil
	}
	return WithHintf(
		Mark(Wrapf(err, "%s", file), ErrStreamIO),
		"check that %s exists and is readable/writable, then rerun", file,
	)
}

// ExitCode maps a fatal error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, context.Canceled):
		return ExitInterrupted
	case IsStreamIO(err):
		return ExitStreamIO
	case IsAny(err, ErrMalformedRecord, ErrInvalidIdentity, ErrInvalidValue):
		return ExitInvalidInput
	case Is(err, ErrArtifactMismatch):
		return ExitVerifyFailed
	default:
		return ExitUsage
	}
}
