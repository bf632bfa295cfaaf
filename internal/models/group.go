package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a group document. UserCount is a denormalized counter that
// must be written in lock-step with Members; the two live in separate
// single-field updates, so a failed second write leaves the counter stale
// rather than being silently corrected.
type Group struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	GroupPicture string             `json:"groupPicture" bson:"groupPicture"`
	Category     string             `json:"category" bson:"category"`
	IsPrivate    bool               `json:"isPrivate" bson:"isPrivate"`
	Members      []string           `json:"members" bson:"members"`
	UserCount    int                `json:"userCount" bson:"userCount"`
	CreatedBy    string             `json:"createdBy" bson:"createdBy"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateGroupRequest defines the multipart form fields for creating a group.
// The group image arrives as a file part.
type CreateGroupRequest struct {
	Name        string `form:"name" validate:"required,min=1,max=80"`
	Description string `form:"description" validate:"required,min=1,max=500"`
	Category    string `form:"category" validate:"max=50"`
	IsPrivate   bool   `form:"isPrivate"`
}
