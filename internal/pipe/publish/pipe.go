package publish

import (
	"github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/publish"
	"github.com/macreleaser/buildtrain/pkg/shared"
)

// Pipe publishes the latest build number to the run context and then to
// every configured publisher.
type Pipe struct{}

func (Pipe) String() string { return "publishing build number" }

func (Pipe) Run(ctx *context.Context) error {
	publishers := append([]publish.Publisher{publish.RunContext{Values: ctx.Values}}, ctx.Publishers...)

	key := shared.LatestTestflightBuildNumber
	if err := publish.All(ctx.StdCtx, publishers, key, ctx.LatestBuildNumber); err != nil {
		return err
	}

	for _, p := range publishers {
		ctx.Logger.Debugf("Published %s=%d to %s", key, ctx.LatestBuildNumber, p)
	}
	return nil
}
