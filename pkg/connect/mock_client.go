package connect

import (
	"context"
	"fmt"

	"github.com/macreleaser/buildtrain/pkg/testflight"
)

// Ensure MockClient implements ClientInterface
var _ ClientInterface = (*MockClient)(nil)

// MockClient is a mock implementation of the console client for testing
type MockClient struct {
	Passwords     map[string]string          // username -> password accepted by SignIn
	Apps          map[string]*testflight.App // key: bundle identifier
	Teams         []Team
	SignedInAs    string
	APIKey        *APIKey
	SelectedTeam  string
	FindAppCalls  int
	ErrorToReturn error
}

// NewMockClient creates a new mock console client
func NewMockClient() *MockClient {
	return &MockClient{
		Passwords: make(map[string]string),
		Apps:      make(map[string]*testflight.App),
	}
}

// SignIn accepts the password registered with AddAccount
func (m *MockClient) SignIn(ctx context.Context, username, password string) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	if want, ok := m.Passwords[username]; !ok || want != password {
		return fmt.Errorf("%w for %s", ErrInvalidCredentials, username)
	}
	m.SignedInAs = username
	return nil
}

// UseAPIKey records the key without validating it
func (m *MockClient) UseAPIKey(key APIKey) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	m.APIKey = &key
	return nil
}

// ListTeams returns the mock teams
func (m *MockClient) ListTeams(ctx context.Context) ([]Team, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return m.Teams, nil
}

// SelectTeam records the selected team
func (m *MockClient) SelectTeam(ctx context.Context, teamID string) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	m.SelectedTeam = teamID
	return nil
}

// FindApp looks the app up in mock data
func (m *MockClient) FindApp(ctx context.Context, bundleID string) (*testflight.App, error) {
	m.FindAppCalls++
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	app, ok := m.Apps[bundleID]
	if !ok {
		return nil, &NotFoundError{Message: fmt.Sprintf("no application with bundle identifier %s", bundleID)}
	}
	return app, nil
}

// SetError sets an error to be returned by all mock operations
func (m *MockClient) SetError(err error) {
	m.ErrorToReturn = err
}

// AddAccount registers credentials accepted by SignIn
func (m *MockClient) AddAccount(username, password string) {
	m.Passwords[username] = password
}

// AddApp adds an app to mock data
func (m *MockClient) AddApp(app *testflight.App) {
	m.Apps[app.BundleID] = app
}
