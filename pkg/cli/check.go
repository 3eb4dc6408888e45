package cli

import (
	"context"

	btContext "github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/options"
	"github.com/macreleaser/buildtrain/pkg/pipeline"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration file",
	Long: `Validate the .buildtrain.yaml configuration file together with the
environment. This checks for syntax errors, required inputs, unresolved
env(VAR) references and the publish targets without contacting the console.`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

// runCheck executes the check command
func runCheck(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())

	cfg, err := loadConfig(GetConfigPath())
	if err != nil {
		ExitWithErrorf(logger, "Failed to load configuration: %v", err)
	}

	logger.Info("Configuration loaded successfully")

	opts, err := options.Load(nil, cfg)
	if err != nil {
		ExitWithErrorf(logger, "Failed to read options: %v", err)
	}

	ctx := btContext.NewContext(context.Background(), cfg, logger)
	ctx.Options = opts

	// Run validation pipeline only
	if err := pipeline.RunValidation(ctx); err != nil {
		ExitWithErrorf(logger, "Configuration validation failed: %v", err)
	}

	logger.Info("Configuration is valid")
}
