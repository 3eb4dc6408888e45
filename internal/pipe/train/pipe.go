package train

import (
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/buildnumber"
	"github.com/macreleaser/buildtrain/pkg/context"
)

// Pipe resolves the release version whose build train is inspected.
type Pipe struct{}

func (Pipe) String() string { return "resolving version" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.App == nil {
		return fmt.Errorf("no application located")
	}

	explicit := ctx.Options.Version
	if explicit == "" {
		warnIfNotHighest(ctx)
	}

	resolver := buildnumber.NewResolver(ctx.Prompter, ctx.Logger)
	version, err := resolver.Resolve(ctx.StdCtx, explicit, ctx.App.Trains)
	if err != nil {
		return err
	}

	ctx.Version = version
	return nil
}

// warnIfNotHighest flags an auto-resolved train that is older than another
// train of the app. The last train is still used.
func warnIfNotHighest(ctx *context.Context) {
	last, ok := ctx.App.Trains.Last()
	if !ok {
		return
	}
	highest, ok := buildnumber.HighestVersion(ctx.App.Trains.Versions())
	if !ok || highest == last {
		return
	}
	ctx.Logger.Warnf("Most recent build train %s is not the highest version (%s), pass a version to inspect another train", last, highest)
}
