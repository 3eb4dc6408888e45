package publish

import (
	"github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/env"
	"github.com/macreleaser/buildtrain/pkg/github"
	"github.com/macreleaser/buildtrain/pkg/validate"
)

// skipError signals an intentional skip. It satisfies the pipe.IsSkip interface
// checked by the pipeline runner, without importing pkg/pipe (which would cause
// an import cycle through pkg/pipe/registry.go).
type skipError string

func (e skipError) Error() string { return string(e) }
func (e skipError) IsSkip() bool  { return true }

// CheckPipe validates publish configuration
type CheckPipe struct{}

func (CheckPipe) String() string { return "validating publish configuration" }

func (CheckPipe) Run(ctx *context.Context) error {
	cfg := ctx.Config.Publish

	if cfg.Dotenv == "" && !cfg.GitHub.Enabled() {
		return skipError("publishing to the run context only")
	}

	if cfg.GitHub.Enabled() {
		gh := cfg.GitHub
		if err := validate.RequiredTogether(map[string]string{
			"publish.github.owner": gh.Owner,
			"publish.github.repo":  gh.Repo,
		}, "publish.github.owner", "publish.github.repo"); err != nil {
			return err
		}

		if err := env.CheckResolved(gh.Token, "publish.github.token"); err != nil {
			return err
		}

		token := gh.Token
		if token == "" {
			token = github.GetGitHubToken()
		}
		if err := validate.RequiredString(token, "publish.github.token (or GITHUB_TOKEN)"); err != nil {
			return err
		}
	}

	ctx.Logger.Debug("Publish configuration validated successfully")
	return nil
}
