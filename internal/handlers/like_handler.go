package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interaction *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interaction *services.InteractionService) *LikeHandler {
	return &LikeHandler{interaction: interaction}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike likes the post, or removes the caller's like
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	state, err := h.interaction.ToggleLike(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, state)
}
