// Package buildnumber decides which build train of an app to inspect and
// reduces that train to its latest build number.
package buildnumber

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/macreleaser/buildtrain/pkg/prompt"
	"github.com/macreleaser/buildtrain/pkg/testflight"
	"github.com/sirupsen/logrus"
)

// Resolver picks the release version whose build train is inspected.
//
// A non-empty explicit version always wins and is returned verbatim, even if
// the app has no train for it. Otherwise the most recently added train is
// used. Implementations differ only when both are missing.
type Resolver interface {
	Resolve(ctx context.Context, explicit string, trains *testflight.Trains) (string, error)
}

// Ensure both variants implement Resolver
var (
	_ Resolver = NonInteractiveResolver{}
	_ Resolver = InteractiveResolver{}
)

// NonInteractiveResolver fails with ErrVersionUnresolved when neither an
// explicit version nor any train is available.
type NonInteractiveResolver struct {
	Logger logrus.FieldLogger
}

func (r NonInteractiveResolver) Resolve(_ context.Context, explicit string, trains *testflight.Trains) (string, error) {
	version, ok := resolveKnown(explicit, trains)
	if !ok {
		return "", fmt.Errorf("%w: no version given and the app has no build trains", ErrVersionUnresolved)
	}
	logResolved(r.Logger, version)
	return version, nil
}

// InteractiveResolver asks the operator for a version when neither an explicit
// version nor any train is available. The answer is trimmed but otherwise not
// validated: an empty answer fails at train lookup.
type InteractiveResolver struct {
	Prompter prompt.Prompter
	Logger   logrus.FieldLogger
}

func (r InteractiveResolver) Resolve(ctx context.Context, explicit string, trains *testflight.Trains) (string, error) {
	version, ok := resolveKnown(explicit, trains)
	if !ok {
		if r.Logger != nil {
			r.Logger.Info("You have to specify a new version number")
		}
		answer, err := r.Prompter.Ask(ctx, "Version number: ")
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrVersionUnresolved, err)
		}
		version = strings.TrimSpace(answer)
	}
	logResolved(r.Logger, version)
	return version, nil
}

// NewResolver returns the interactive variant when p can reach an operator.
func NewResolver(p prompt.Prompter, logger logrus.FieldLogger) Resolver {
	if p == nil || !p.Interactive() {
		return NonInteractiveResolver{Logger: logger}
	}
	return InteractiveResolver{Prompter: p, Logger: logger}
}

func resolveKnown(explicit string, trains *testflight.Trains) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	return trains.Last()
}

func logResolved(logger logrus.FieldLogger, version string) {
	if logger == nil {
		return
	}
	logger.Infof("Fetching the latest build number for version %s", version)
}

// HighestVersion returns the greatest semantic version among versions.
// Versions that do not parse are ignored; ok is false if none parse.
func HighestVersion(versions []string) (highest string, ok bool) {
	var best *semver.Version
	for _, v := range versions {
		parsed, err := semver.NewVersion(v)
		if err != nil {
			continue
		}
		if best == nil || parsed.GreaterThan(best) {
			best = parsed
			highest = v
		}
	}
	return highest, best != nil
}
