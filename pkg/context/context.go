package context

import (
	"context"

	"github.com/macreleaser/buildtrain/pkg/config"
	"github.com/macreleaser/buildtrain/pkg/connect"
	"github.com/macreleaser/buildtrain/pkg/credentials"
	"github.com/macreleaser/buildtrain/pkg/options"
	"github.com/macreleaser/buildtrain/pkg/prompt"
	"github.com/macreleaser/buildtrain/pkg/publish"
	"github.com/macreleaser/buildtrain/pkg/shared"
	"github.com/macreleaser/buildtrain/pkg/testflight"
	"github.com/sirupsen/logrus"
)

// Context provides shared state for all pipes
type Context struct {
	StdCtx  context.Context // Standard context for cancellation support
	Config  *config.Config
	Logger  *logrus.Logger
	Options options.Options

	// Collaborators, set up by the command before the pipeline runs
	Console     connect.ClientInterface
	Credentials credentials.Store
	Prompter    prompt.Prompter
	Publishers  []publish.Publisher // run after the run context publisher

	// Strict makes malformed build versions fatal
	Strict bool

	// Values is the run context later automation steps read from
	Values *shared.Values

	// Filled in by the pipes, in order
	App               *testflight.App
	Version           string
	LatestBuildNumber int
}

// NewContext creates a new context with the given standard context, config, and logger.
// If stdCtx is nil, context.Background() is used. Prompting is disabled
// until a Prompter is set.
func NewContext(stdCtx context.Context, cfg *config.Config, logger *logrus.Logger) *Context {
	if stdCtx == nil {
		stdCtx = context.Background()
	}
	return &Context{
		StdCtx:   stdCtx,
		Config:   cfg,
		Logger:   logger,
		Prompter: prompt.NonInteractive{},
		Values:   shared.NewValues(),
	}
}

// Done returns the done channel from the standard context for cancellation support
func (c *Context) Done() <-chan struct{} {
	return c.StdCtx.Done()
}

// Err returns the error from the standard context
func (c *Context) Err() error {
	return c.StdCtx.Err()
}
