package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification event types.
const (
	NotificationComment      = "comment"
	NotificationReply        = "reply"
	NotificationReaction     = "reaction"
	NotificationMessage      = "message"
	NotificationReport       = "report"
	NotificationVerification = "verification"
	NotificationFollow       = "follow"
)

// NotificationEvent is a single entry in a user's notification bucket.
type NotificationEvent struct {
	Type      string    `json:"type" bson:"type"`
	Content   string    `json:"content" bson:"content"`
	Author    Author    `json:"author" bson:"author"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// NotificationBucket holds all notifications for one user. Entries are
// append-only and cleared wholesale; there is no per-entry read state.
type NotificationBucket struct {
	ID            primitive.ObjectID  `json:"-" bson:"_id,omitempty"`
	BelongsTo     string              `json:"-" bson:"belongsTo"`
	Notifications []NotificationEvent `json:"notifications" bson:"notifications"`
}
