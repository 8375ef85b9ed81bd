package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	content *services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// ListPosts returns the feed, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.content.ListPosts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, posts)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	post, err := h.content.CreatePost(c.Request().Context(), middleware.SessionFromContext(c), services.CreatePostInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.content.DeletePost(c.Request().Context(), middleware.SessionFromContext(c), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil)
}
