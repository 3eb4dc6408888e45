package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	btContext "github.com/macreleaser/buildtrain/pkg/context"
	"github.com/macreleaser/buildtrain/pkg/options"
	"github.com/macreleaser/buildtrain/pkg/pipeline"
	"github.com/macreleaser/buildtrain/pkg/prompt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// latestCmd represents the latest command
var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the latest TestFlight build number",
	Long: `Print the highest build number uploaded to TestFlight for a release version.
Without --app-version the most recent build train is used. If the app has no
build trains yet, the version is asked for on the terminal.

The number is printed to stdout and published as LATEST_TESTFLIGHT_BUILD_NUMBER
to every configured target; progress is logged to stderr.`,
	Args: cobra.NoArgs,
	Run:  runLatest,
}

// runLatest executes the latest command
func runLatest(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())

	cfg, err := loadConfig(GetConfigPath())
	if err != nil {
		ExitWithErrorf(logger, "Failed to load configuration: %v", err)
	}

	opts, err := options.Load(cmd.Flags(), cfg)
	if err != nil {
		ExitWithErrorf(logger, "Failed to read options: %v", err)
	}

	stdCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := btContext.NewContext(stdCtx, cfg, logger)
	ctx.Options = opts
	ctx.Strict, _ = cmd.Flags().GetBool("strict")

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	ctx.Prompter = prompt.ForStdin(!nonInteractive && prompt.IsTerminal(os.Stdin))

	consoleURL, _ := cmd.Flags().GetString("url")
	if ctx.Console, err = newConsole(cfg, consoleURL); err != nil {
		ExitWithErrorf(logger, "Failed to set up console client: %v", err)
	}

	fs := afero.NewOsFs()
	if ctx.Credentials, err = newCredentialStore(cfg, fs); err != nil {
		ExitWithErrorf(logger, "Failed to set up credentials: %v", err)
	}

	dotenv, _ := cmd.Flags().GetString("dotenv")
	if ctx.Publishers, err = newPublishers(cfg.Publish, dotenv, fs); err != nil {
		ExitWithErrorf(logger, "Failed to set up publishers: %v", err)
	}

	latest, err := pipeline.LatestBuildNumber(ctx)
	if err != nil {
		ExitWithErrorf(logger, "%v", err)
	}

	if next, _ := cmd.Flags().GetBool("next"); next {
		latest++
	}
	fmt.Fprintln(cmd.OutOrStdout(), latest)
}
