package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// SessionFromContext returns the caller's session, or nil for anonymous requests.
func SessionFromContext(c echo.Context) *models.Session {
	sess, _ := c.Get(sessionKey).(*models.Session)
	return sess
}

func setSession(c echo.Context, sess *models.Session) {
	c.Set(sessionKey, sess)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is absent.
func bearerToken(c echo.Context) (token string, ok bool, err error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true, models.NewAuthenticationError("Authorization header must be in Bearer format")
	}
	return parts[1], true, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.Fail(models.NewAuthenticationError(message)))
}
