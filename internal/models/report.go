package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report represents a report document. Target is a tagged reference so the
// moderation listing resolves the reported content from the right collection
// directly.
type Report struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Target    ContentRef         `json:"target" bson:"target"`
	Reason    string             `json:"reason" bson:"reason"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
