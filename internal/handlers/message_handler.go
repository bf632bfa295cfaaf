package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
)

// MessageHandler serves direct messages.
type MessageHandler struct {
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewMessageHandler(messages repositories.MessageRepository, users repositories.UserRepository, notifications repositories.NotificationRepository) *MessageHandler {
	return &MessageHandler{messages: messages, users: users, notifications: notifications}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/:id", h.GetRoom)
	g.POST("/:id", h.Send)
}

// GetRoom returns the conversation between the caller and the other user,
// oldest message first.
func (h *MessageHandler) GetRoom(c echo.Context) error {
	otherID := c.Param("id")
	userID := getUserIDFromContext(c)
	if otherID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot open a conversation with yourself")
	}
	chat, err := h.messages.GetRoom(c.Request().Context(), userID, otherID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"chat": chat})
}

// Send delivers a direct message to the other user. Senders blocked by the
// recipient are rejected; admins bypass the block.
func (h *MessageHandler) Send(c echo.Context) error {
	req := new(models.SendMessageRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	recipientID := c.Param("id")
	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	if recipientID == user.ID.Hex() {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot message yourself")
	}
	if !user.UserType.AtLeast(models.RoleAdmin) && user.IsBlockedBy(recipientID) {
		return echo.NewHTTPError(http.StatusForbidden, "User cannot message this user")
	}
	if _, err := h.users.GetByID(ctx, recipientID); err != nil {
		return httpError(err)
	}

	message := &models.Message{
		Message:   req.Message,
		Author:    user.AuthorSnapshot(false),
		CreatedAt: time.Now(),
	}
	id, err := h.messages.Send(ctx, user.ID.Hex(), recipientID, message)
	if err != nil {
		return httpError(err)
	}

	if err := h.notifications.Add(ctx, recipientID, models.NotificationEvent{
		Type:    models.NotificationMessage,
		Content: user.Firstname + " sent you a message",
		Author:  user.AuthorSnapshot(false),
	}); err != nil {
		c.Logger().Warnf("message: notifying %s: %v", recipientID, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Message sent successfully", "id": id})
}
