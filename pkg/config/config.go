package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/macreleaser/buildtrain/pkg/env"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".buildtrain.yaml"

// Config represents the complete buildtrain configuration. Every value can be
// overridden by a flag or environment variable at run time.
type Config struct {
	Connect ConnectConfig `yaml:"connect,omitempty"`
	App     AppConfig     `yaml:"app"`
	Account AccountConfig `yaml:"account"`
	Publish PublishConfig `yaml:"publish,omitempty"`
}

// ConnectConfig points at the App Store Connect console
type ConnectConfig struct {
	URL     string        `yaml:"url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// AppConfig identifies the application and, optionally, the release version
type AppConfig struct {
	Identifier string `yaml:"identifier"`
	Version    string `yaml:"version,omitempty"`
}

// AccountConfig selects the console account.
// Passwords never live here; they come from the credential store.
type AccountConfig struct {
	Username        string `yaml:"username"`
	Team            string `yaml:"team,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// PublishConfig lists where the resolved build number is published in
// addition to the run context
type PublishConfig struct {
	Dotenv string              `yaml:"dotenv,omitempty"`
	GitHub GitHubPublishConfig `yaml:"github,omitempty"`
}

// GitHubPublishConfig writes the build number to a file in a repository
type GitHubPublishConfig struct {
	Owner  string `yaml:"owner,omitempty"`
	Repo   string `yaml:"repo,omitempty"`
	Path   string `yaml:"path,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	Token  string `yaml:"token,omitempty"`
}

// Enabled reports whether any GitHub publishing field is set.
func (g GitHubPublishConfig) Enabled() bool {
	return g.Owner != "" || g.Repo != ""
}

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	cleanPath, err := validateConfigPath(path)
	if err != nil {
		return nil, err
	}

	data, err := readConfigFile(cleanPath)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes configuration YAML, resolving env(VAR) references first.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("failed to parse config: empty document")
	}

	if err := env.SubstituteNode(file.Docs[0].Body); err != nil {
		return nil, fmt.Errorf("environment variable substitution failed: %w", err)
	}

	var config Config
	if err := yaml.NodeToValue(file.Docs[0].Body, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(path string, config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Tokens may be written inline, keep the file private
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validateConfigPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	wd = filepath.Clean(wd)

	// Paths inside the working directory must stay inside it; absolute paths
	// elsewhere (CI workspaces, temp dirs) are allowed as given.
	if strings.HasPrefix(cleanPath, wd+string(filepath.Separator)) || cleanPath == wd {
		relPath, err := filepath.Rel(wd, cleanPath)
		if err != nil {
			return "", fmt.Errorf("invalid config path: %w", err)
		}
		if !filepath.IsLocal(relPath) {
			return "", fmt.Errorf("invalid config path: path traversal detected")
		}
	}

	return cleanPath, nil
}

func readConfigFile(cleanPath string) ([]byte, error) {
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config path is not a regular file")
	}

	const maxConfigSize = 1024 * 1024
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: maximum size is 1MB")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return data, nil
}
