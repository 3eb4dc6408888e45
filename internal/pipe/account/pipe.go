package account

import (
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/connect"
	"github.com/macreleaser/buildtrain/pkg/context"
)

// Pipe establishes an authenticated console session and selects the team.
type Pipe struct{}

func (Pipe) String() string { return "signing in" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.Console == nil {
		return fmt.Errorf("console client is not configured")
	}
	if ctx.Credentials == nil {
		return fmt.Errorf("credential store is not configured")
	}

	username := ctx.Options.Username
	account, err := ctx.Credentials.Lookup(username)
	if err != nil {
		return fmt.Errorf("failed to look up credentials: %w", err)
	}

	// API keys are issued per team, so there is nothing to select
	if account.APIKey != nil {
		if err := ctx.Console.UseAPIKey(*account.APIKey); err != nil {
			return fmt.Errorf("failed to use API key %s: %w", account.APIKey.KeyID, err)
		}
		ctx.Logger.Infof("Using API key %s", account.APIKey.KeyID)
		return nil
	}

	ctx.Logger.Infof("Login to App Store Connect (%s)", username)
	if err := ctx.Console.SignIn(ctx.StdCtx, username, account.Password); err != nil {
		return fmt.Errorf("failed to sign in as %s: %w", username, err)
	}
	ctx.Logger.Info("Login successful")

	teams, err := ctx.Console.ListTeams(ctx.StdCtx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	team, err := connect.ChooseTeam(ctx.StdCtx, teams, ctx.Options.Team, ctx.Prompter)
	if err != nil {
		return err
	}

	if err := ctx.Console.SelectTeam(ctx.StdCtx, team.ID); err != nil {
		return fmt.Errorf("failed to select team %s: %w", team, err)
	}
	ctx.Logger.Infof("Selected team %s", team)
	return nil
}
