package connect

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/macreleaser/buildtrain/pkg/connect/connecttest"
)

func newAPIKey(t *testing.T) (APIKey, *ecdsa.PrivateKey) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	return APIKey{KeyID: "KEY123", IssuerID: "issuer-uuid", PrivateKey: pemBytes}, priv
}

func TestKeyTokenSource(t *testing.T) {
	key, priv := newAPIKey(t)

	src, err := NewKeyTokenSource(key)
	if err != nil {
		t.Fatalf("NewKeyTokenSource() error = %v", err)
	}
	tok, err := src.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.TokenType != "Bearer" {
		t.Errorf("TokenType = %q", tok.TokenType)
	}
	if lifetime := time.Until(tok.Expiry); lifetime > apiKeyTokenLifetime || lifetime < apiKeyTokenLifetime-time.Minute {
		t.Errorf("token lifetime = %v", lifetime)
	}

	parsed, err := jwt.Parse(tok.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return &priv.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if parsed.Method.Alg() != "ES256" {
		t.Errorf("alg = %s, want ES256", parsed.Method.Alg())
	}
	if parsed.Header["kid"] != "KEY123" {
		t.Errorf("kid = %v", parsed.Header["kid"])
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["iss"] != "issuer-uuid" || claims["aud"] != apiKeyAudience {
		t.Errorf("claims = %v", claims)
	}
}

func TestNewKeyTokenSourceErrors(t *testing.T) {
	key, _ := newAPIKey(t)

	tests := []struct {
		name string
		key  APIKey
	}{
		{name: "missing key id", key: APIKey{IssuerID: key.IssuerID, PrivateKey: key.PrivateKey}},
		{name: "missing issuer", key: APIKey{KeyID: key.KeyID, PrivateKey: key.PrivateKey}},
		{name: "bad pem", key: APIKey{KeyID: key.KeyID, IssuerID: key.IssuerID, PrivateKey: []byte("not a key")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKeyTokenSource(tt.key); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUseAPIKeyAuthenticatesRequests(t *testing.T) {
	srv := connecttest.NewServer()
	defer srv.Close()
	srv.AddApp("100", "com.example.app", "Example",
		connecttest.Train{Version: "2.0", Builds: []string{"8"}},
	)

	c := newTestClient(t, srv)
	key, _ := newAPIKey(t)
	if err := c.UseAPIKey(key); err != nil {
		t.Fatalf("UseAPIKey() error = %v", err)
	}

	ctx := context.Background()
	if _, err := c.FindApp(ctx, "com.example.app"); err != nil {
		t.Fatalf("FindApp() error = %v", err)
	}
	if _, err := c.FindApp(ctx, "com.example.app"); err != nil {
		t.Fatalf("second FindApp() error = %v", err)
	}

	tokens := srv.BearerTokens()
	if len(tokens) != 4 {
		t.Fatalf("got %d bearer tokens, want 4", len(tokens))
	}
	for _, tok := range tokens[1:] {
		if tok != tokens[0] {
			t.Error("token should be reused until it expires")
		}
	}
}
