package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction kinds. A user appears in at most one kind's set per target.
const (
	ReactionLike  = "like"
	ReactionLove  = "love"
	ReactionLaugh = "laugh"
)

// ValidReaction reports whether kind is one of the supported reactions.
func ValidReaction(kind string) bool {
	return kind == ReactionLike || kind == ReactionLove || kind == ReactionLaugh
}

// NewReactionSets returns the empty reaction map every new post and comment
// starts with.
func NewReactionSets() map[string][]string {
	return map[string][]string{
		ReactionLike:  {},
		ReactionLove:  {},
		ReactionLaugh: {},
	}
}

// Post represents a post document. BelongsTo holds the ids of every group the
// post was published to; a post cross-posted to several groups is a single
// document. Comments holds top-level comment ids in append order.
type Post struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BelongsTo   []string            `json:"belongsTo" bson:"belongsTo"`
	Author      Author              `json:"author" bson:"author"`
	Title       string              `json:"title" bson:"title"`
	Content     string              `json:"content" bson:"content"`
	Images      []string            `json:"images" bson:"images"`
	IsAnonymous bool                `json:"isAnonymous" bson:"isAnonymous"`
	Warning     bool                `json:"warning" bson:"warning"`
	Reactions   map[string][]string `json:"reactions" bson:"reactions"`
	Comments    []string            `json:"comments" bson:"comments"`
	Bookmarks   []string            `json:"bookmarks" bson:"bookmarks"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest defines the multipart form fields for creating a post.
// Image files arrive as file parts; the handler additionally requires at
// least one of title, content or images.
type CreatePostRequest struct {
	Title       string   `form:"title" validate:"max=120"`
	Content     string   `form:"content" validate:"max=5000"`
	GroupIDs    []string `form:"groupids" validate:"required,min=1,dive,required"`
	IsAnonymous bool     `form:"isAnonymous"`
	Warning     bool     `form:"warning"`
}

// EditContentRequest defines the request body for editing a post or comment.
type EditContentRequest struct {
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// CommentRequest defines the request body for commenting or replying.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// ReactionRequest defines the request body for reacting to a post or comment.
type ReactionRequest struct {
	Reaction string `json:"reaction" validate:"required,oneof=like love laugh"`
}

// ReportRequest defines the request body for reporting a post or comment.
type ReportRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=1000"`
}
