package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	content *services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.content.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	comment, err := h.content.CreateComment(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id"), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, comment)
}

// DeleteComment is allowed for the comment author or the post author
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.content.DeleteComment(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil)
}
