package verifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "headersData.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `{
		"clientId": "abc-123",
		"clientSecret": "secret",
		"redirectUrl": "https://example.com/return",
		"psuDeviceId": "device"
	}`)

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", f.ClientID)
	assert.Equal(t, "device", f.PSUDeviceID)
	assert.Equal(t, "321-cba", f.ReversedClientID())

	creds := f.Credentials()
	assert.Empty(t, creds.PSUDeviceID)
	assert.Equal(t, "https://example.com/return", creds.RedirectURL)
}

func TestFixture_ReversedClientIDPalindrome(t *testing.T) {
	f := Fixture{ClientID: "abba"}
	assert.Equal(t, "abba-reversed", f.ReversedClientID())
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: "no such file",
		},
		{
			name:    "malformed json",
			path:    func(t *testing.T) string { return writeFixture(t, `{`) },
			wantErr: "unexpected end of JSON input",
		},
		{
			name:    "missing secret",
			path:    func(t *testing.T) string { return writeFixture(t, `{"clientId":"a","redirectUrl":"https://x"}`) },
			wantErr: "clientSecret is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
