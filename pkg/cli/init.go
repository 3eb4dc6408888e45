package cli

import (
	"os"

	"github.com/macreleaser/buildtrain/pkg/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate example buildtrain configuration",
	Long: `Generate an example .buildtrain.yaml configuration file in the current directory.
Values reference environment variables with env(VAR) so no secret is written
to the file.`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

// runInit executes the init command
func runInit(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())
	configPath := config.DefaultPath

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		logger.Infof("Configuration file %s already exists", configPath)
		os.Exit(0)
	}

	if err := config.SaveConfig(configPath, config.ExampleConfig()); err != nil {
		ExitWithErrorf(logger, "Failed to save configuration: %v", err)
	}

	logger.Infof("Example configuration created: %s", configPath)
	logger.Info("Edit this file to match your app and account")
}
