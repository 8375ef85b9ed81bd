package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to the follow graph
type FollowHandler struct {
	graph *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow", h.IsFollowing)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow follows the user, or unfollows if already following
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	state, err := h.graph.ToggleFollow(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, state)
}

// IsFollowing reports whether the caller follows the user; anonymous callers get false
func (h *FollowHandler) IsFollowing(c echo.Context) error {
	following, err := h.graph.IsFollowing(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, services.FollowState{Following: following})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	users, err := h.graph.Followers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	users, err := h.graph.Following(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, users)
}
