package app

import (
	"github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/env"
	"github.com/macreleaser/buildtrain/pkg/validate"
)

// CheckPipe validates application configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating app configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	if err := validate.RequiredString(ctx.Options.AppIdentifier, "app.identifier"); err != nil {
		return err
	}

	if err := env.CheckResolved(ctx.Options.AppIdentifier, "app.identifier"); err != nil {
		return err
	}

	ctx.Logger.Debug("App configuration validated successfully")
	return nil
}
