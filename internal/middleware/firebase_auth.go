package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// SessionFromFirebaseToken maps verified token claims onto a Session.
func SessionFromFirebaseToken(token *auth.Token) *models.Session {
	sess := &models.Session{ExternalID: token.UID}
	if v, ok := token.Claims["email"].(string); ok {
		sess.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		sess.Name = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		sess.Picture = v
	}
	return sess
}

// FirebaseAuthMiddleware attaches the session from a Firebase ID token.
// Anonymous requests pass through.
func FirebaseAuthMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, ok, err := bearerToken(c)
			if !ok {
				return next(c)
			}
			if err != nil {
				return unauthorized(c, err.(*models.AppError).Message)
			}

			token, err := verifier.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return unauthorized(c, "Invalid or expired ID token")
			}

			setSession(c, SessionFromFirebaseToken(token))
			return next(c)
		}
	}
}
