package repositories

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func TestCreateCommentAppendsToPost(t *testing.T) {
	s := store.NewMemoryStore()
	comments := NewCommentRepository(s)
	posts := NewPostRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)

	first, err := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "first", Comments: []string{}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "second", Comments: []string{}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	post, _ := posts.GetByID(ctx, postID)
	if len(post.Comments) != 2 || post.Comments[0] != first || post.Comments[1] != second {
		t.Fatalf("post comments = %v", post.Comments)
	}
}

func TestCreateReplyAppendsToParentComment(t *testing.T) {
	s := store.NewMemoryStore()
	comments := NewCommentRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)

	parentID, err := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "parent", Comments: []string{}})
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}
	poid, _ := primitive.ObjectIDFromHex(parentID)

	replyID, err := comments.Create(ctx, models.CommentRef(poid), &models.Comment{Content: "reply", Comments: []string{}})
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}

	parent, _ := comments.GetByID(ctx, parentID)
	if len(parent.Comments) != 1 || parent.Comments[0] != replyID {
		t.Fatalf("parent comments = %v", parent.Comments)
	}
}

func TestRemoveCommentIDPrunesPost(t *testing.T) {
	s := store.NewMemoryStore()
	comments := NewCommentRepository(s)
	posts := NewPostRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)

	keep, _ := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "keep", Comments: []string{}})
	drop, _ := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "drop", Comments: []string{}})

	if err := posts.RemoveCommentID(ctx, postID, drop); err != nil {
		t.Fatalf("RemoveCommentID: %v", err)
	}
	if err := comments.Remove(ctx, drop); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	post, _ := posts.GetByID(ctx, postID)
	if len(post.Comments) != 1 || post.Comments[0] != keep {
		t.Fatalf("post comments = %v", post.Comments)
	}
	if _, err := comments.GetByID(ctx, drop); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("removed comment still readable: %v", err)
	}
}

func TestUpdateCommentContent(t *testing.T) {
	s := store.NewMemoryStore()
	comments := NewCommentRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)

	id, _ := comments.Create(ctx, models.PostRef(oid), &models.Comment{Content: "before", Comments: []string{}})
	if err := comments.UpdateContent(ctx, id, "after"); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	comment, _ := comments.GetByID(ctx, id)
	if comment.Content != "after" {
		t.Fatalf("content = %q", comment.Content)
	}
}
