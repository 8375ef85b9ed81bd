package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read", h.MarkAsRead)
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	list, err := h.notifications.List(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, list)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), middleware.SessionFromContext(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks the given notifications read; ids of other users are skipped
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	var req models.MarkNotificationsReadRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	updated, err := h.notifications.MarkRead(c.Request().Context(), middleware.SessionFromContext(c), req.IDs)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"updated": updated})
}
