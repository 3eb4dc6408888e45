// Package credentials resolves the secret for a console account from the
// environment or from a YAML credentials file.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/macreleaser/buildtrain/pkg/connect"
	"github.com/macreleaser/buildtrain/pkg/env"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// ErrAccountNotFound means no store holds credentials for the username.
var ErrAccountNotFound = errors.New("no credentials found")

// PasswordEnvVars are checked in order by EnvStore.
var PasswordEnvVars = []string{"BUILDTRAIN_PASSWORD", "FASTLANE_PASSWORD"}

// Account is a resolved console login. Exactly one of Password or APIKey is
// used; APIKey takes precedence.
type Account struct {
	Username string
	Password string
	APIKey   *connect.APIKey
}

// Store looks up credentials by username.
type Store interface {
	Lookup(username string) (Account, error)
}

// EnvStore serves a password from the environment for any username.
type EnvStore struct {
	LookupEnv env.LookupFunc
}

func (s EnvStore) Lookup(username string) (Account, error) {
	lookup := s.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range PasswordEnvVars {
		if password, ok := lookup(name); ok && password != "" {
			return Account{Username: username, Password: password}, nil
		}
	}
	return Account{}, fmt.Errorf("%w for %s in the environment", ErrAccountNotFound, username)
}

// DefaultFile returns ~/.buildtrain/credentials.yaml.
func DefaultFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".buildtrain", "credentials.yaml"), nil
}

type fileAccount struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password,omitempty"`
	APIKey   *fileAPIKey `yaml:"api_key,omitempty"`
}

type fileAPIKey struct {
	KeyID          string `yaml:"key_id"`
	IssuerID       string `yaml:"issuer_id"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

type fileContents struct {
	Accounts []fileAccount `yaml:"accounts"`
}

// FileStore reads accounts from a YAML file:
//
//	accounts:
//	  - username: dev@example.com
//	    password: env(APP_SPECIFIC_PASSWORD)
//	  - username: ci@example.com
//	    api_key:
//	      key_id: ABC123
//	      issuer_id: 69a6de7e-...
//	      private_key_path: ~/keys/AuthKey_ABC123.p8
//
// A missing file holds no accounts.
type FileStore struct {
	Fs   afero.Fs
	Path string
}

func (s FileStore) Lookup(username string) (Account, error) {
	accounts, err := s.load()
	if err != nil {
		return Account{}, err
	}

	for _, a := range accounts {
		if a.Username != username {
			continue
		}
		account := Account{Username: a.Username, Password: a.Password}
		if a.APIKey != nil {
			key, err := s.loadAPIKey(a.APIKey)
			if err != nil {
				return Account{}, fmt.Errorf("failed to load API key for %s: %w", username, err)
			}
			account.APIKey = key
		}
		if account.APIKey == nil {
			if err := env.CheckResolved(account.Password, "password"); err != nil {
				return Account{}, fmt.Errorf("credentials for %s: %w", username, err)
			}
			if account.Password == "" {
				return Account{}, fmt.Errorf("credentials for %s have neither password nor api_key", username)
			}
		}
		return account, nil
	}
	return Account{}, fmt.Errorf("%w for %s in %s", ErrAccountNotFound, username, s.Path)
}

func (s FileStore) load() ([]fileAccount, error) {
	data, err := afero.ReadFile(s.Fs, s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}
	if err := env.SubstituteNode(file.Docs[0].Body); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	var contents fileContents
	if err := yaml.NodeToValue(file.Docs[0].Body, &contents, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return contents.Accounts, nil
}

func (s FileStore) loadAPIKey(k *fileAPIKey) (*connect.APIKey, error) {
	path, err := homedir.Expand(k.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("private_key_path is required")
	}
	pem, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	return &connect.APIKey{KeyID: k.KeyID, IssuerID: k.IssuerID, PrivateKey: pem}, nil
}

// Chain returns the first account found across stores. Errors other than
// ErrAccountNotFound stop the search.
type Chain []Store

func (c Chain) Lookup(username string) (Account, error) {
	for _, s := range c {
		account, err := s.Lookup(username)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, ErrAccountNotFound) {
			return Account{}, err
		}
	}
	return Account{}, fmt.Errorf("%w for %s", ErrAccountNotFound, username)
}
