package pipe

import (
	"github.com/macreleaser/buildtrain/pkg/context"
)

// Piper defines the interface for all pipeline steps.
// Each pipe is one stage of resolving the latest build number and runs
// after the previous stage has filled in its part of the context.
type Piper interface {
	// String returns the pipe name shown as the pipe starts.
	String() string

	// Run executes the pipe's logic against the shared context. Return a
	// SkipError via pipe.Skip() to skip without failing the pipeline.
	Run(ctx *context.Context) error
}

// IsSkip indicates that a pipe was intentionally skipped.
type IsSkip interface {
	IsSkip() bool
}

// SkipError represents an intentional skip of a pipeline step.
// The pipeline continues with the next pipe.
type SkipError struct {
	Reason string
}

func (e SkipError) Error() string { return e.Reason }
func (e SkipError) IsSkip() bool  { return true }

// Skip creates a new skip error with the given reason.
func Skip(reason string) SkipError {
	return SkipError{Reason: reason}
}
