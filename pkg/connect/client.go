// Package connect talks to the App Store Connect console: it establishes a
// session, selects a team and reads application records with their TestFlight
// build trains. Every call is a single blocking round trip without retries.
package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/macreleaser/buildtrain/pkg/testflight"
	"github.com/macreleaser/buildtrain/pkg/version"
)

// DefaultBaseURL is the console endpoint used when none is configured.
const DefaultBaseURL = "https://appstoreconnect.apple.com/testflight/v1"

// DefaultTimeout bounds each request so a stalled console cannot hang a run.
const DefaultTimeout = 2 * time.Minute

// NotFoundError represents a record the console does not know about.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// IsNotFound returns true if err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// StatusError reports an unexpected HTTP status from the console.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("console request %s %s failed: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// ClientInterface defines the console client contract
type ClientInterface interface {
	SignIn(ctx context.Context, username, password string) error
	UseAPIKey(key APIKey) error
	ListTeams(ctx context.Context) ([]Team, error)
	SelectTeam(ctx context.Context, teamID string) error
	FindApp(ctx context.Context, bundleID string) (*testflight.App, error)
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// Client is an HTTP client for the console. Password sessions live in its
// cookie jar; API key sessions in its transport.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL and a zero timeout selects DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid console URL %q: %w", baseURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("invalid console URL %q: scheme must be http or https", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// do sends one JSON request and decodes a JSON response into out when out is
// non-nil. Non-2xx statuses become a *StatusError.
func (c *Client) do(ctx context.Context, method string, path []string, query url.Values, in, out interface{}) error {
	u := c.baseURL.JoinPath(path...)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("console request %s %s failed: %w", method, u.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: u.Path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", u.Path, err)
	}
	return nil
}
