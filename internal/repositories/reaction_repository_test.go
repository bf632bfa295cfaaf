package repositories

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func TestSetReaction(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewReactionRepository(s)
	posts := NewPostRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)
	target := models.PostRef(oid)

	if err := repo.Set(ctx, target, "u1", models.ReactionLike); err != nil {
		t.Fatalf("Set: %v", err)
	}

	post, _ := posts.GetByID(ctx, postID)
	if !contains(post.Reactions[models.ReactionLike], "u1") {
		t.Fatalf("reaction not recorded: %v", post.Reactions)
	}

	err := repo.Set(ctx, target, "u1", models.ReactionLike)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("repeated reaction: got %v, want Conflict", err)
	}
}

func TestSetReactionSwapsKind(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewReactionRepository(s)
	posts := NewPostRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)
	target := models.PostRef(oid)

	if err := repo.Set(ctx, target, "u1", models.ReactionLike); err != nil {
		t.Fatalf("Set like: %v", err)
	}
	if err := repo.Set(ctx, target, "u1", models.ReactionLove); err != nil {
		t.Fatalf("Set love: %v", err)
	}

	post, _ := posts.GetByID(ctx, postID)
	if contains(post.Reactions[models.ReactionLike], "u1") {
		t.Fatal("previous reaction kind not removed")
	}
	if !contains(post.Reactions[models.ReactionLove], "u1") {
		t.Fatal("new reaction kind not recorded")
	}
}

func TestSetReactionRejectsUnknownKind(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewReactionRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)

	err := repo.Set(ctx, models.PostRef(oid), "u1", "angry")
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("got %v, want Validation", err)
	}
}

func TestSetReactionOnComment(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewReactionRepository(s)
	comments := NewCommentRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})
	oid, _ := primitive.ObjectIDFromHex(postID)
	commentID, err := comments.Create(ctx, models.PostRef(oid), &models.Comment{
		Content:   "first",
		Reactions: models.NewReactionSets(),
		Comments:  []string{},
	})
	if err != nil {
		t.Fatalf("Create comment: %v", err)
	}
	coid, _ := primitive.ObjectIDFromHex(commentID)

	if err := repo.Set(ctx, models.CommentRef(coid), "u1", models.ReactionLaugh); err != nil {
		t.Fatalf("Set: %v", err)
	}
	comment, _ := comments.GetByID(ctx, commentID)
	if !contains(comment.Reactions[models.ReactionLaugh], "u1") {
		t.Fatalf("comment reaction not recorded: %v", comment.Reactions)
	}
}

func TestToggleBookmark(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewReactionRepository(s)
	posts := NewPostRepository(s)
	ctx := context.Background()

	postID := seedPost(t, s, &models.Post{Title: "hello"})

	added, err := repo.ToggleBookmark(ctx, postID, "u1")
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	if !added {
		t.Fatal("first toggle did not add")
	}
	post, _ := posts.GetByID(ctx, postID)
	if !contains(post.Bookmarks, "u1") {
		t.Fatalf("bookmark not recorded: %v", post.Bookmarks)
	}

	added, err = repo.ToggleBookmark(ctx, postID, "u1")
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	if added {
		t.Fatal("second toggle did not remove")
	}
	post, _ = posts.GetByID(ctx, postID)
	if contains(post.Bookmarks, "u1") {
		t.Fatalf("bookmark not removed: %v", post.Bookmarks)
	}
}
