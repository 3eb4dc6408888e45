// Package pipeline executes all registered pipes in sequence.
//
// The pipeline resolves the latest build number in stages:
//   - Validation stage: runs all validation pipes to check configuration
//   - Execution stage: signs in, locates the app, resolves the version,
//     extracts the build number and publishes it
//
// Usage:
//
//	ctx := context.NewContext(context.Background(), cfg, logger)
//	latest, err := pipeline.LatestBuildNumber(ctx)
//	if err != nil {
//	    // Handle error
//	}
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/pipe"
)

// RunValidation executes only the validation pipes.
// Used by the check command.
func RunValidation(ctx *context.Context) error {
	return runPipes(ctx, pipe.ValidationPipes)
}

// RunExecution executes only the execution pipes.
// Should be called after RunValidation succeeds.
func RunExecution(ctx *context.Context) error {
	return runPipes(ctx, pipe.ExecutionPipes)
}

// RunAll executes validation pipes first, then execution pipes.
func RunAll(ctx *context.Context) error {
	if err := RunValidation(ctx); err != nil {
		return err
	}
	return RunExecution(ctx)
}

// LatestBuildNumber runs the whole pipeline and returns the published value.
func LatestBuildNumber(ctx *context.Context) (int, error) {
	if err := RunAll(ctx); err != nil {
		return 0, err
	}
	return ctx.LatestBuildNumber, nil
}

// runPipes executes a slice of pipes in sequence.
func runPipes(ctx *context.Context, pipes []Piper) error {
	for _, p := range pipes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", p.String(), err)
		}

		ctx.Logger.WithField("action", p.String()).Info()
		start := time.Now()

		if err := p.Run(ctx); err != nil {
			if isSkip(err) {
				ctx.Logger.Infof("Skipping: %v", err)
				continue
			}
			return fmt.Errorf("%s: %w", p.String(), err)
		}

		ctx.Logger.Debugf("Completed: %s (%s)", p.String(), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func isSkip(err error) bool {
	var s pipe.IsSkip
	return errors.As(err, &s) && s.IsSkip()
}

// Piper is re-exported for convenience within the pipeline package.
type Piper = pipe.Piper
