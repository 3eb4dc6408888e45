package buildnumber

import "errors"

var (
	// ErrAppNotFound means no application matches the bundle identifier.
	ErrAppNotFound = errors.New("application not found")
	// ErrTrainNotFound means the app has no build train for the version.
	ErrTrainNotFound = errors.New("no build train")
	// ErrNoBuilds means the train exists but holds no builds.
	ErrNoBuilds = errors.New("no builds found")
	// ErrVersionUnresolved means no version was given, the app has no trains
	// and nobody can be asked.
	ErrVersionUnresolved = errors.New("release version could not be resolved")
	// ErrMalformedBuildVersion is returned in strict mode for build versions
	// without a leading number.
	ErrMalformedBuildVersion = errors.New("malformed build version")
)
