package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerifier_MissingCredentials(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"jwt mode without path", config.Config{AuthMode: config.AuthModeJWT}, ""},
		{"jwt mode with missing file", config.Config{AuthMode: config.AuthModeJWT, FirebaseCredentialsPath: missing}, ""},
		{"firebase mode without path", config.Config{AuthMode: config.AuthModeFirebase}, ErrNoCredentials.Error()},
		{"firebase mode with missing file", config.Config{AuthMode: config.AuthModeFirebase, FirebaseCredentialsPath: missing}, "credentials file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier, err := NewVerifier(context.Background(), &tt.cfg, zerolog.Nop())
			assert.Nil(t, verifier)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
