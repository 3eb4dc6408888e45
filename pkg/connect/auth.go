package connect

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/oauth2"
)

// ErrInvalidCredentials is returned when the console rejects a login.
var ErrInvalidCredentials = errors.New("invalid username or password")

const (
	apiKeyAudience = "appstoreconnect-v1"
	// Tokens may live at most 20 minutes.
	apiKeyTokenLifetime = 20 * time.Minute
)

// APIKey is an App Store Connect API key. PrivateKey holds the PEM contents of
// the downloaded .p8 file.
type APIKey struct {
	KeyID      string
	IssuerID   string
	PrivateKey []byte
}

type signInRequest struct {
	AccountName string `json:"accountName"`
	Password    string `json:"password"`
	RememberMe  bool   `json:"rememberMe"`
}

// SignIn starts a password session. The session cookie is kept by the client.
func (c *Client) SignIn(ctx context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	err := c.do(ctx, http.MethodPost, []string{"auth", "signin"}, nil, signInRequest{
		AccountName: username,
		Password:    password,
	}, nil)

	var statusErr *StatusError
	if errors.As(err, &statusErr) &&
		(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
		return fmt.Errorf("%w for %s", ErrInvalidCredentials, username)
	}
	if err != nil {
		return fmt.Errorf("failed to sign in as %s: %w", username, err)
	}
	return nil
}

// UseAPIKey authenticates every following request with a short-lived ES256
// token signed by key. Tokens are reused until they expire.
func (c *Client) UseAPIKey(key APIKey) error {
	src, err := NewKeyTokenSource(key)
	if err != nil {
		return err
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &oauth2.Transport{
		Source: oauth2.ReuseTokenSource(nil, src),
		Base:   base,
	}
	return nil
}

// NewKeyTokenSource returns a token source minting console tokens for key.
func NewKeyTokenSource(key APIKey) (oauth2.TokenSource, error) {
	if key.KeyID == "" || key.IssuerID == "" {
		return nil, fmt.Errorf("API key requires both key ID and issuer ID")
	}
	privateKey, err := jwt.ParseECPrivateKeyFromPEM(key.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API key %s: %w", key.KeyID, err)
	}
	return &keyTokenSource{
		keyID:    key.KeyID,
		issuerID: key.IssuerID,
		key:      privateKey,
		now:      time.Now,
	}, nil
}

type keyTokenSource struct {
	keyID    string
	issuerID string
	key      *ecdsa.PrivateKey
	now      func() time.Time
}

func (s *keyTokenSource) Token() (*oauth2.Token, error) {
	issued := s.now()
	expiry := issued.Add(apiKeyTokenLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.StandardClaims{
		Audience:  apiKeyAudience,
		Issuer:    s.issuerID,
		IssuedAt:  issued.Unix(),
		ExpiresAt: expiry.Unix(),
	})
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign API key token: %w", err)
	}
	return &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
