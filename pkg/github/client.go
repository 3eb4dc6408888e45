package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// NotFoundError represents a resource not found condition.
// Used by the mock client and checked by IsNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// IsNotFound returns true if the error represents a GitHub 404 Not Found response.
// It checks for both the real go-github ErrorResponse and the mock NotFoundError.
func IsNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// FileRef addresses a file on a branch. An empty Branch means the
// repository's default branch.
type FileRef struct {
	Owner  string
	Repo   string
	Path   string
	Branch string
}

func (f FileRef) String() string {
	if f.Branch == "" {
		return fmt.Sprintf("%s/%s/%s", f.Owner, f.Repo, f.Path)
	}
	return fmt.Sprintf("%s/%s/%s@%s", f.Owner, f.Repo, f.Path, f.Branch)
}

// ClientInterface defines the GitHub client contract
type ClientInterface interface {
	// GetFile returns the file's content and blob SHA.
	GetFile(ctx context.Context, ref FileRef) (content []byte, sha string, err error)
	CreateFile(ctx context.Context, ref FileRef, message string, content []byte) error
	UpdateFile(ctx context.Context, ref FileRef, message string, content []byte, sha string) error
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client wraps the GitHub client with convenience methods
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub client with the provided token for authentication.
// If token is empty, an error is returned since writing to a repository requires authentication.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	// oauth2.NewClient returns a client without timeout, so we set it explicitly
	httpClient.Timeout = time.Minute

	return &Client{
		client: github.NewClient(httpClient),
	}, nil
}

// GetGitHubToken retrieves GitHub token from environment
func GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// GetFile retrieves a file through the Contents API
func (c *Client) GetFile(ctx context.Context, ref FileRef) ([]byte, string, error) {
	var opts *github.RepositoryContentGetOptions
	if ref.Branch != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref.Branch}
	}

	file, _, _, err := c.client.Repositories.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get contents of %s: %w", ref, err)
	}
	if file == nil {
		return nil, "", fmt.Errorf("%s is a directory", ref)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode contents of %s: %w", ref, err)
	}
	return []byte(content), file.GetSHA(), nil
}

// CreateFile creates a new file in a repository via the Contents API
func (c *Client) CreateFile(ctx context.Context, ref FileRef, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: &message,
		Content: content,
	}
	if ref.Branch != "" {
		opts.Branch = &ref.Branch
	}
	if _, _, err := c.client.Repositories.CreateFile(ctx, ref.Owner, ref.Repo, ref.Path, opts); err != nil {
		return fmt.Errorf("failed to create file %s: %w", ref, err)
	}
	return nil
}

// UpdateFile updates an existing file in a repository via the Contents API.
// The sha parameter is the blob SHA of the file being replaced.
func (c *Client) UpdateFile(ctx context.Context, ref FileRef, message string, content []byte, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: &message,
		Content: content,
		SHA:     &sha,
	}
	if ref.Branch != "" {
		opts.Branch = &ref.Branch
	}
	if _, _, err := c.client.Repositories.UpdateFile(ctx, ref.Owner, ref.Repo, ref.Path, opts); err != nil {
		return fmt.Errorf("failed to update file %s: %w", ref, err)
	}
	return nil
}
