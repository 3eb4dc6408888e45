package account

import (
	"github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/env"
	"github.com/macreleaser/buildtrain/pkg/validate"
)

// CheckPipe validates account and connection configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating account configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	if err := validate.RequiredString(ctx.Options.Username, "account.username"); err != nil {
		return err
	}

	if err := env.CheckResolved(ctx.Options.Username, "account.username"); err != nil {
		return err
	}

	if err := validate.HTTPURL(ctx.Config.Connect.URL, "connect.url"); err != nil {
		return err
	}

	if err := validate.NonNegativeDuration(ctx.Config.Connect.Timeout, "connect.timeout"); err != nil {
		return err
	}

	ctx.Logger.Debug("Account configuration validated successfully")
	return nil
}
