package app

import (
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/buildnumber"
	"github.com/macreleaser/buildtrain/pkg/connect"
	"github.com/macreleaser/buildtrain/pkg/context"
)

// Pipe locates the application record and its build trains.
type Pipe struct{}

func (Pipe) String() string { return "locating application" }

func (Pipe) Run(ctx *context.Context) error {
	identifier := ctx.Options.AppIdentifier

	app, err := ctx.Console.FindApp(ctx.StdCtx, identifier)
	if connect.IsNotFound(err) {
		return fmt.Errorf("%w for identifier %q", buildnumber.ErrAppNotFound, identifier)
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", identifier, err)
	}

	ctx.App = app
	ctx.Logger.Infof("Found %s (%s)", app.Name, app.BundleID)
	ctx.Logger.Debugf("Build trains: %v", app.Trains.Versions())
	return nil
}
