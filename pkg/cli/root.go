package cli

import (
	"fmt"
	"os"

	"github.com/macreleaser/buildtrain/pkg/config"
	"github.com/macreleaser/buildtrain/pkg/options"
	"github.com/macreleaser/buildtrain/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "buildtrain",
	Short:   "Latest TestFlight build number lookup",
	Version: version.VersionInfo(),
	Long: `Buildtrain signs in to App Store Connect, finds the build train of a
release version and prints the highest build number uploaded to TestFlight
for it, so the next build can be numbered one higher.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			fmt.Fprintf(os.Stderr, "Error displaying help: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	registerCommands()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	return rootCmd.Execute()
}

// registerCommands initializes flags and registers all subcommands
func registerCommands() {
	// Set up persistent flags
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug mode")

	// Add all subcommands
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)

	options.AddFlags(latestCmd.Flags())
	latestCmd.Flags().String("url", "", "console base URL (overrides connect.url)")
	latestCmd.Flags().String("dotenv", "", "also write the result to this dotenv file")
	latestCmd.Flags().Bool("non-interactive", false, "never prompt, fail instead (default when stdin is not a terminal)")
	latestCmd.Flags().Bool("strict", false, "fail on build versions without a leading number")
	latestCmd.Flags().Bool("next", false, "print the latest build number plus one")
}

// GetConfigPath returns the config file path and whether it was set explicitly
func GetConfigPath() (string, bool) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	return flag.Value.String(), flag.Changed
}

// GetDebugMode returns debug mode flag value
func GetDebugMode() bool {
	debug, _ := rootCmd.PersistentFlags().GetBool("debug")
	return debug
}
