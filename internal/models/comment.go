package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment document. Replies are comments nested under
// another comment: Comments holds the ids of direct replies, forming a tree
// rooted at a post.
type Comment struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Author    Author              `json:"author" bson:"author"`
	Content   string              `json:"content" bson:"content"`
	Reactions map[string][]string `json:"reactions" bson:"reactions"`
	Comments  []string            `json:"comments" bson:"comments"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// TargetKind tags a content reference as a post or a comment, so callers
// never have to probe both collections to resolve an id.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// ContentRef identifies a post or comment by kind and id.
type ContentRef struct {
	Kind TargetKind `json:"kind" bson:"kind"`
	ID   string     `json:"id" bson:"id"`
}

// PostRef returns a reference to a post.
func PostRef(id primitive.ObjectID) ContentRef {
	return ContentRef{Kind: TargetPost, ID: id.Hex()}
}

// CommentRef returns a reference to a comment.
func CommentRef(id primitive.ObjectID) ContentRef {
	return ContentRef{Kind: TargetComment, ID: id.Hex()}
}
