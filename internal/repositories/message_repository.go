package repositories

import (
	"context"
	"time"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// MessageRepository stores direct messages. A conversation is identified by
// the canonical room key of its two participants; rooms come into existence
// with their first message and are never stored separately.
type MessageRepository interface {
	GetRoom(ctx context.Context, userID, otherID string) ([]models.Message, error)
	Send(ctx context.Context, userID, recipientID string, message *models.Message) (string, error)
}

type messageRepository struct {
	store store.Store
}

// NewMessageRepository creates a store-backed MessageRepository.
func NewMessageRepository(s store.Store) MessageRepository {
	return &messageRepository{store: s}
}

func (r *messageRepository) GetRoom(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	filter := store.Filter{"roomId": models.RoomID(userID, otherID)}
	if err := r.store.GetAll(ctx, store.Messages, filter, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Send(ctx context.Context, userID, recipientID string, message *models.Message) (string, error) {
	message.RoomID = models.RoomID(userID, recipientID)
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	return r.store.Add(ctx, store.Messages, message)
}
