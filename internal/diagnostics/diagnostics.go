// Package diagnostics provides an injectable recorder for operational
// counters. Components receive a Recorder explicitly instead of writing to
// process-global debug state, so lifecycle and ownership stay with the caller.
package diagnostics

import (
	"log/slog"
	"sync/atomic"
)

// Recorder observes service operations.
type Recorder interface {
	// OperationCompleted records the outcome of a named service operation.
	OperationCompleted(operation string, err error)
	// ConflictDetected records a rejected booking attempt for a trainer.
	ConflictDetected(trainerID string, conflictCount int)
}

// Noop discards all observations. It is the default when no recorder is wired.
type Noop struct{}

// OperationCompleted implements Recorder.
func (Noop) OperationCompleted(string, error) {}

// ConflictDetected implements Recorder.
func (Noop) ConflictDetected(string, int) {}

// SlogRecorder counts operations and emits conflict observations through slog.
type SlogRecorder struct {
	logger     *slog.Logger
	operations atomic.Uint64
	failures   atomic.Uint64
	conflicts  atomic.Uint64
}

// NewSlogRecorder returns a recorder writing to the supplied logger.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogRecorder{logger: logger}
}

// OperationCompleted implements Recorder.
func (r *SlogRecorder) OperationCompleted(operation string, err error) {
	r.operations.Add(1)
	if err != nil {
		r.failures.Add(1)
		r.logger.Debug("operation failed", "operation", operation, "error", err)
	}
}

// ConflictDetected implements Recorder.
func (r *SlogRecorder) ConflictDetected(trainerID string, conflictCount int) {
	r.conflicts.Add(1)
	r.logger.Info("booking conflict detected", "trainer_id", trainerID, "conflicts", conflictCount)
}

// Counters returns the totals observed so far.
func (r *SlogRecorder) Counters() (operations, failures, conflicts uint64) {
	return r.operations.Load(), r.failures.Load(), r.conflicts.Load()
}
