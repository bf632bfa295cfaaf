package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomID derives the canonical key for the direct-message conversation
// between two users: the participant ids sorted and joined, so lookups never
// depend on which side sent the first message.
func RoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return strings.Join([]string{a, b}, ":")
}

// Message represents one direct message. Rooms are implicit: a room exists
// exactly as long as messages tagged with its id do.
type Message struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RoomID    string             `json:"roomId" bson:"roomId"`
	Message   string             `json:"message" bson:"message"`
	Author    Author             `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SendMessageRequest defines the request body for sending a direct message.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}
