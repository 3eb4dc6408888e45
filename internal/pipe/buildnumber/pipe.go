package buildnumber

import (
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/buildnumber"
	"github.com/macreleaser/buildtrain/pkg/context"
)

// Pipe reduces the resolved build train to its latest build number.
type Pipe struct{}

func (Pipe) String() string { return "fetching latest build number" }

func (Pipe) Run(ctx *context.Context) error {
	if ctx.App == nil {
		return fmt.Errorf("no application located")
	}

	train, err := buildnumber.Lookup(ctx.App.Trains, ctx.Version)
	if err != nil {
		return err
	}

	extractor := buildnumber.Extractor{Strict: ctx.Strict, Logger: ctx.Logger}
	latest, err := extractor.Latest(train)
	if err != nil {
		return err
	}

	ctx.LatestBuildNumber = latest
	return nil
}
