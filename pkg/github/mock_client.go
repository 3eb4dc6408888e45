package github

import (
	"context"
	"fmt"
)

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

type mockFile struct {
	content []byte
	sha     string
}

// MockClient is a mock implementation of the GitHub client for testing
type MockClient struct {
	Files         map[string]mockFile // key: FileRef.String()
	Messages      []string            // commit messages, in call order
	Creates       int
	Updates       int
	ErrorToReturn error
	GetError      error // if non-nil, returned by GetFile instead of ErrorToReturn
}

// NewMockClient creates a new mock GitHub client
func NewMockClient() *MockClient {
	return &MockClient{
		Files: make(map[string]mockFile),
	}
}

// GetFile returns file content from mock data
func (m *MockClient) GetFile(ctx context.Context, ref FileRef) ([]byte, string, error) {
	if m.GetError != nil {
		return nil, "", m.GetError
	}
	if m.ErrorToReturn != nil {
		return nil, "", m.ErrorToReturn
	}

	f, ok := m.Files[ref.String()]
	if !ok {
		return nil, "", &NotFoundError{Message: fmt.Sprintf("file %s not found: 404 Not Found", ref)}
	}
	return f.content, f.sha, nil
}

// CreateFile simulates creating a file in a repository
func (m *MockClient) CreateFile(ctx context.Context, ref FileRef, message string, content []byte) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	if _, exists := m.Files[ref.String()]; exists {
		return fmt.Errorf("file %s already exists", ref)
	}

	m.Creates++
	m.Messages = append(m.Messages, message)
	m.Files[ref.String()] = mockFile{content: content, sha: m.nextSHA()}
	return nil
}

// UpdateFile simulates updating a file, rejecting stale SHAs like GitHub does
func (m *MockClient) UpdateFile(ctx context.Context, ref FileRef, message string, content []byte, sha string) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	f, exists := m.Files[ref.String()]
	if !exists {
		return &NotFoundError{Message: fmt.Sprintf("file %s not found: 404 Not Found", ref)}
	}
	if f.sha != sha {
		return fmt.Errorf("409 Conflict: %s does not match %s", sha, f.sha)
	}

	m.Updates++
	m.Messages = append(m.Messages, message)
	m.Files[ref.String()] = mockFile{content: content, sha: m.nextSHA()}
	return nil
}

// SetError sets an error to be returned by all mock operations
func (m *MockClient) SetError(err error) {
	m.ErrorToReturn = err
}

// AddFile adds file content to mock data
func (m *MockClient) AddFile(ref FileRef, content []byte, sha string) {
	m.Files[ref.String()] = mockFile{content: content, sha: sha}
}

// Content returns the current content of a mock file
func (m *MockClient) Content(ref FileRef) (string, bool) {
	f, ok := m.Files[ref.String()]
	return string(f.content), ok
}

func (m *MockClient) nextSHA() string {
	return fmt.Sprintf("sha-%d", m.Creates+m.Updates)
}
