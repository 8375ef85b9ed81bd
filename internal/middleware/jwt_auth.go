package middleware

import (
	"errors"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// NewSessionToken signs a local session token carrying sess.
func NewSessionToken(secret string, ttl time.Duration, sess models.Session) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		Session: sess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ExternalID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies tokenString and returns the session it carries.
func ParseSessionToken(secret, tokenString string) (*models.Session, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ExternalID == "" {
		return nil, errors.New("invalid token")
	}
	sess := claims.Session
	return &sess, nil
}

// JWTAuthMiddleware attaches the session from a local JWT. Requests without an
// Authorization header pass through anonymously; a bad token is rejected.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok, err := bearerToken(c)
			if !ok {
				return next(c)
			}
			if err != nil {
				return unauthorized(c, err.(*models.AppError).Message)
			}

			sess, err := ParseSessionToken(secret, tokenString)
			if err != nil {
				if errors.Is(err, jwt.ErrSignatureInvalid) {
					return unauthorized(c, "Invalid token signature")
				}
				return unauthorized(c, "Invalid or expired token")
			}

			setSession(c, sess)
			return next(c)
		}
	}
}
