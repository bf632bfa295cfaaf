package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/repositories"
)

// NotificationHandler serves the caller's notification bucket.
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.Get)
	g.DELETE("", h.Clear)
}

// Get returns every pending notification for the caller, oldest first.
func (h *NotificationHandler) Get(c echo.Context) error {
	bucket, err := h.notifications.Get(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bucket)
}

// Clear empties the caller's notification bucket.
func (h *NotificationHandler) Clear(c echo.Context) error {
	if err := h.notifications.Clear(c.Request().Context(), getUserIDFromContext(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Notifications cleared successfully"})
}
