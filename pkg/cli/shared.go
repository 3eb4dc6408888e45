package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/macreleaser/buildtrain/pkg/config"
	"github.com/macreleaser/buildtrain/pkg/connect"
	"github.com/macreleaser/buildtrain/pkg/credentials"
	"github.com/macreleaser/buildtrain/pkg/github"
	"github.com/macreleaser/buildtrain/pkg/logging"
	"github.com/macreleaser/buildtrain/pkg/publish"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultGitHubPath is the repository file the GitHub publisher writes to.
const DefaultGitHubPath = ".testflight-build-number"

// SetupLogger creates a logger on stderr; stdout carries command output only
func SetupLogger(debug bool) *logrus.Logger {
	return logging.New(os.Stderr, debug)
}

// ExitWithErrorf logs an error with the provided logger and exits with code 1
func ExitWithErrorf(logger *logrus.Logger, format string, args ...interface{}) {
	logger.Errorf(format, args...)
	os.Exit(1)
}

// loadConfig reads the config file. A missing file is only an error when
// its path was given explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return &config.Config{}, nil
	}
	return nil, err
}

// newConsole builds the console client; a non-empty override wins over
// connect.url.
func newConsole(cfg *config.Config, override string) (*connect.Client, error) {
	baseURL := cfg.Connect.URL
	if override != "" {
		baseURL = override
	}
	return connect.NewClient(baseURL, cfg.Connect.Timeout)
}

// newCredentialStore looks in the credentials file first, then in the
// environment.
func newCredentialStore(cfg *config.Config, fs afero.Fs) (credentials.Store, error) {
	path := cfg.Account.CredentialsFile
	if path == "" {
		var err error
		if path, err = credentials.DefaultFile(); err != nil {
			return nil, err
		}
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials file %q: %w", cfg.Account.CredentialsFile, err)
	}

	return credentials.Chain{
		credentials.FileStore{Fs: fs, Path: path},
		credentials.EnvStore{},
	}, nil
}

// newPublishers returns the configured publishers besides the run context.
// A non-empty dotenv overrides publish.dotenv.
func newPublishers(cfg config.PublishConfig, dotenv string, fs afero.Fs) ([]publish.Publisher, error) {
	var publishers []publish.Publisher

	if dotenv == "" {
		dotenv = cfg.Dotenv
	}
	if dotenv != "" {
		publishers = append(publishers, publish.Dotenv{Fs: fs, Path: dotenv})
	}

	if cfg.GitHub.Enabled() {
		token := cfg.GitHub.Token
		if token == "" {
			token = github.GetGitHubToken()
		}
		client, err := github.NewClient(token)
		if err != nil {
			return nil, err
		}
		path := cfg.GitHub.Path
		if path == "" {
			path = DefaultGitHubPath
		}
		publishers = append(publishers, publish.GitHub{
			Client: client,
			File: github.FileRef{
				Owner:  cfg.GitHub.Owner,
				Repo:   cfg.GitHub.Repo,
				Path:   path,
				Branch: cfg.GitHub.Branch,
			},
		})
	}

	return publishers, nil
}
