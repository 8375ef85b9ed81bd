package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users and profiles
type UserHandler struct {
	identity *services.IdentityResolver
	profile  *services.ProfileService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(identity *services.IdentityResolver, profile *services.ProfileService) *UserHandler {
	return &UserHandler{identity: identity, profile: profile}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Resolve (or create) own profile
	g.PUT("/profile", h.UpdateProfile) // Update own profile
	g.GET("/profiles/:handle", h.GetProfileByHandle)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/suggested", h.SuggestedUsers)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.GET("/users/:id/likes", h.GetUserLikedPosts)
}

// GetProfile retrieves the authenticated user's profile, syncing it on first sight
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.identity.ResolveOrProvision(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.profile.UpdateProfile(c.Request().Context(), middleware.SessionFromContext(c), services.UpdateProfileInput{
		Name:     req.Name,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetProfileByHandle(c echo.Context) error {
	profile, err := h.profile.GetProfileByHandle(c.Request().Context(), middleware.SessionFromContext(c), c.Param("handle"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, profile)
}

// SearchUsers searches users by name or handle (?q=)
func (h *UserHandler) SearchUsers(c echo.Context) error {
	users, err := h.profile.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}

func (h *UserHandler) SuggestedUsers(c echo.Context) error {
	users, err := h.profile.SuggestedUsers(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}

func (h *UserHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.profile.GetUserPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, posts)
}

func (h *UserHandler) GetUserLikedPosts(c echo.Context) error {
	posts, err := h.profile.GetUserLikedPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, posts)
}
