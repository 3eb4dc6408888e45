package pipe

import (
	"github.com/macreleaser/buildtrain/internal/pipe/account"
	"github.com/macreleaser/buildtrain/internal/pipe/app"
	"github.com/macreleaser/buildtrain/internal/pipe/buildnumber"
	"github.com/macreleaser/buildtrain/internal/pipe/publish"
	"github.com/macreleaser/buildtrain/internal/pipe/train"
)

// ValidationPipes contains all validation pipes, run by check and as the
// first stage of latest.
var ValidationPipes = []Piper{
	account.CheckPipe{}, // Validate account and console config
	app.CheckPipe{},     // Validate app identifier
	publish.CheckPipe{}, // Validate publish targets
}

// ExecutionPipes contains all execution pipes, run after validation
// succeeds. Order matters: each stage reads what the previous one set.
var ExecutionPipes = []Piper{
	account.Pipe{},     // Sign in and select team
	app.Pipe{},         // Locate app and its build trains
	train.Pipe{},       // Resolve the release version
	buildnumber.Pipe{}, // Reduce the train to its latest build number
	publish.Pipe{},     // Publish LATEST_TESTFLIGHT_BUILD_NUMBER
}
