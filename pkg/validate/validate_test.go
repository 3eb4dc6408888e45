package validate

import (
	"strings"
	"testing"
	"time"
)

func TestRequiredString(t *testing.T) {
	if err := RequiredString("com.example.app", "app.identifier"); err != nil {
		t.Errorf("RequiredString() error = %v", err)
	}
	err := RequiredString("", "app.identifier")
	if err == nil || err.Error() != "app.identifier is required" {
		t.Errorf("RequiredString() error = %v", err)
	}
}

func TestRequiredTogether(t *testing.T) {
	order := []string{"owner", "repo"}
	tests := []struct {
		name    string
		fields  map[string]string
		wantErr string
	}{
		{name: "none set", fields: map[string]string{}},
		{name: "all set", fields: map[string]string{"owner": "acme", "repo": "app"}},
		{name: "repo missing", fields: map[string]string{"owner": "acme"}, wantErr: "repo is required when owner is set"},
		{name: "owner missing", fields: map[string]string{"repo": "app"}, wantErr: "owner is required when repo is set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequiredTogether(tt.fields, order...)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("RequiredTogether() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("RequiredTogether() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr string
	}{
		{value: ""},
		{value: "https://appstoreconnect.apple.com/testflight/v1"},
		{value: "http://127.0.0.1:8080"},
		{value: "ftp://example.com", wantErr: "scheme must be http or https"},
		{value: "https://", wantErr: "missing host"},
		{value: "://bad", wantErr: "invalid value for connect.url"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := HTTPURL(tt.value, "connect.url")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("HTTPURL(%q) error = %v", tt.value, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("HTTPURL(%q) error = %v, want containing %q", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestNonNegativeDuration(t *testing.T) {
	if err := NonNegativeDuration(0, "connect.timeout"); err != nil {
		t.Errorf("zero duration: %v", err)
	}
	if err := NonNegativeDuration(time.Minute, "connect.timeout"); err != nil {
		t.Errorf("positive duration: %v", err)
	}
	if err := NonNegativeDuration(-time.Second, "connect.timeout"); err == nil {
		t.Error("expected error for negative duration")
	}
}
