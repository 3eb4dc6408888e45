// Package publish makes a resolved value available to later automation steps.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/macreleaser/buildtrain/pkg/github"
	"github.com/macreleaser/buildtrain/pkg/shared"
	"github.com/spf13/afero"
)

// Publisher stores an integer result under a well-known key.
type Publisher interface {
	String() string
	Publish(ctx context.Context, key string, value int) error
}

// Ensure all publishers implement Publisher
var (
	_ Publisher = RunContext{}
	_ Publisher = Dotenv{}
	_ Publisher = GitHub{}
)

// RunContext writes into the in-process run context.
type RunContext struct {
	Values *shared.Values
}

func (RunContext) String() string { return "run context" }

func (p RunContext) Publish(_ context.Context, key string, value int) error {
	if p.Values == nil {
		return fmt.Errorf("run context is not initialised")
	}
	p.Values.Set(key, value)
	return nil
}

// Dotenv upserts KEY=value in a dotenv file, keeping every other line.
type Dotenv struct {
	Fs   afero.Fs
	Path string
}

func (p Dotenv) String() string { return "dotenv file " + p.Path }

func (p Dotenv) Publish(_ context.Context, key string, value int) error {
	existing, err := afero.ReadFile(p.Fs, p.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", p.Path, err)
	}

	updated := upsertDotenv(string(existing), key, strconv.Itoa(value))
	if err := afero.WriteFile(p.Fs, p.Path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.Path, err)
	}
	return nil
}

func upsertDotenv(content, key, value string) string {
	entry := key + "=" + value
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if content == "" {
		lines = nil
	}

	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimPrefix(strings.TrimSpace(line), "export ")
		if strings.HasPrefix(trimmed, key+"=") {
			if strings.HasPrefix(strings.TrimSpace(line), "export ") {
				lines[i] = "export " + entry
			} else {
				lines[i] = entry
			}
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}
	return strings.Join(lines, "\n") + "\n"
}

// GitHub commits the value to a file in a repository. Nothing is committed
// when the file already holds the value.
type GitHub struct {
	Client github.ClientInterface
	File   github.FileRef
}

func (p GitHub) String() string { return "GitHub file " + p.File.String() }

func (p GitHub) Publish(ctx context.Context, key string, value int) error {
	content := []byte(strconv.Itoa(value) + "\n")
	message := fmt.Sprintf("Update %s to %d", key, value)

	current, sha, err := p.Client.GetFile(ctx, p.File)
	if github.IsNotFound(err) {
		return p.Client.CreateFile(ctx, p.File, message, content)
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(current)) == strconv.Itoa(value) {
		return nil
	}
	return p.Client.UpdateFile(ctx, p.File, message, content, sha)
}

// All runs every publisher in order and stops at the first failure.
func All(ctx context.Context, publishers []Publisher, key string, value int) error {
	for _, p := range publishers {
		if err := p.Publish(ctx, key, value); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", p, err)
		}
	}
	return nil
}
