// Package options layers the run inputs: a changed flag wins over an
// environment variable, which wins over the config file.
package options

import (
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys of the layered inputs
const (
	AppIdentifier = "app_identifier"
	Username      = "username"
	Version       = "version"
	Team          = "team"
)

// Flag names bound to each key
var flagNames = map[string]string{
	AppIdentifier: "app-identifier",
	Username:      "username",
	Version:       "app-version",
	Team:          "team",
}

// EnvVars lists the environment variables read for each key, first match wins.
var EnvVars = map[string][]string{
	AppIdentifier: {"FASTLANE_APP_IDENTIFIER"},
	Username:      {"ITUNESCONNECT_USER", "FASTLANE_USER"},
	Version:       {"LATEST_VERSION"},
	Team:          {"FASTLANE_ITC_TEAM_ID", "FASTLANE_TEAM_ID"},
}

// Options are the resolved inputs of one run.
type Options struct {
	AppIdentifier string
	Username      string
	Version       string
	Team          string
}

// Load resolves Options from flags, the environment and cfg. Either of flags
// or cfg may be nil; flags that are not defined on the set are skipped.
func Load(flags *pflag.FlagSet, cfg *config.Config) (Options, error) {
	v := viper.New()

	if cfg != nil {
		v.SetDefault(AppIdentifier, cfg.App.Identifier)
		v.SetDefault(Username, cfg.Account.Username)
		v.SetDefault(Version, cfg.App.Version)
		v.SetDefault(Team, cfg.Account.Team)
	}

	for key, names := range EnvVars {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Options{}, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if flags != nil {
		for key, name := range flagNames {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Options{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	return Options{
		AppIdentifier: v.GetString(AppIdentifier),
		Username:      v.GetString(Username),
		Version:       v.GetString(Version),
		Team:          v.GetString(Team),
	}, nil
}

// AddFlags registers the input flags on flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.StringP(flagNames[AppIdentifier], "a", "", "bundle identifier of the app (env FASTLANE_APP_IDENTIFIER)")
	flags.StringP(flagNames[Username], "u", "", "console username (env ITUNESCONNECT_USER)")
	flags.String(flagNames[Version], "", "release version whose build train is inspected (env LATEST_VERSION)")
	flags.String(flagNames[Team], "", "team id or name to select (env FASTLANE_TEAM_ID)")
}
