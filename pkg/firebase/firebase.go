package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

var ErrNoCredentials = errors.New("firebase credentials path not provided")

// NewVerifier builds the ID token verifier from cfg. In jwt auth mode a
// missing or broken Firebase setup only disables /auth/firebase-login, so
// it returns a nil verifier and no error; in firebase mode it fails.
func NewVerifier(ctx context.Context, cfg *config.Config, log zerolog.Logger) (middleware.TokenVerifier, error) {
	verifier, err := newAuthClient(ctx, cfg)
	if err == nil {
		log.Info().Str("project_id", cfg.FirebaseProjectID).Msg("Firebase token verifier initialized")
		return verifier, nil
	}
	if cfg.AuthMode == config.AuthModeFirebase {
		return nil, err
	}
	log.Warn().Err(err).Msg("Firebase disabled; /auth/firebase-login will be unavailable")
	return nil, nil
}

func newAuthClient(ctx context.Context, cfg *config.Config) (middleware.TokenVerifier, error) {
	if cfg.FirebaseCredentialsPath == "" {
		return nil, ErrNoCredentials
	}
	if _, err := os.Stat(cfg.FirebaseCredentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", cfg.FirebaseCredentialsPath)
	}

	var appConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(ctx, appConfig, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firebase auth client: %w", err)
	}
	return client, nil
}
