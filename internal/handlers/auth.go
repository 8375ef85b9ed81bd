package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler exchanges a Firebase ID token for a local session token.
type AuthHandler struct {
	identity  *services.IdentityResolver
	verifier  middleware.TokenVerifier
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil when Firebase is not configured.
func NewAuthHandler(identity *services.IdentityResolver, verifier middleware.TokenVerifier, jwtSecret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		identity:  identity,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		tokenTTL:  ttl,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies the ID token, syncs the user and issues a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	if h.verifier == nil {
		return c.JSON(http.StatusServiceUnavailable, models.Result{Error: "Identity provider is not configured"})
	}

	token, err := h.verifier.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return fail(c, models.NewAuthenticationError("Invalid Firebase ID token"))
	}
	sess := middleware.SessionFromFirebaseToken(token)

	user, err := h.identity.ResolveOrProvision(c.Request().Context(), sess)
	if err != nil {
		return fail(c, err)
	}
	sess.Username = user.Handle

	localJWT, err := middleware.NewSessionToken(h.jwtSecret, h.tokenTTL, *sess)
	if err != nil {
		return fail(c, models.NewStorageError("Failed to generate local JWT", err))
	}

	return respond(c, http.StatusOK, echo.Map{"token": localJWT, "user": user})
}
