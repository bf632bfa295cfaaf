package store

import (
	"context"
	"testing"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
)

func TestMemoryStoreAddGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Add(ctx, Users, &models.User{Firstname: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	var byID models.User
	if err := s.Get(ctx, Users, ByID(id), &byID); err != nil {
		t.Fatalf("Get by id: %v", err)
	}
	if byID.Firstname != "Ada" {
		t.Fatalf("got %q, want Ada", byID.Firstname)
	}

	var byEmail models.User
	if err := s.Get(ctx, Users, Filter{"email": "ada@example.com"}, &byEmail); err != nil {
		t.Fatalf("Get by email: %v", err)
	}
	if byEmail.ID.Hex() != id {
		t.Fatalf("got id %s, want %s", byEmail.ID.Hex(), id)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var user models.User
	err := s.Get(ctx, Users, Filter{"email": "nobody@example.com"}, &user)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("got %v, want NotFound", err)
	}

	if _, err := s.Add(ctx, Users, &models.User{Email: "ada@example.com"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err = s.Get(ctx, Users, Filter{"email": "nobody@example.com"}, &user)
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("got %v, want NotFound", err)
	}
}

func TestMemoryStoreArrayContains(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, Posts, &models.Post{BelongsTo: []string{"g1", "g2"}, Title: "in both"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(ctx, Posts, &models.Post{BelongsTo: []string{"g2"}, Title: "only g2"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var posts []models.Post
	if err := s.GetAll(ctx, Posts, Filter{"belongsTo": "g1"}, &posts); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "in both" {
		t.Fatalf("array-contains match failed: %+v", posts)
	}
}

func TestMemoryStoreIn(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, _ := s.Add(ctx, CommentsColl, &models.Comment{Content: "first"})
	if _, err := s.Add(ctx, CommentsColl, &models.Comment{Content: "second"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	third, _ := s.Add(ctx, CommentsColl, &models.Comment{Content: "third"})

	var comments []models.Comment
	if err := s.GetAll(ctx, CommentsColl, Filter{"_id": InStrings([]string{first, third})}, &comments); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Content != "first" || comments[1].Content != "third" {
		t.Fatalf("insertion order not preserved: %+v", comments)
	}
}

func TestMemoryStoreDottedPath(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, Reports, &models.Report{
		Target: models.ContentRef{Kind: models.TargetPost, ID: "p1"},
		Reason: "spam",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	removed, err := s.Remove(ctx, Reports, Filter{"target.id": "p1"})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	if removed, _ := s.Remove(ctx, Reports, Filter{"target.id": "p1"}); removed != 0 {
		t.Fatalf("second remove deleted %d docs", removed)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Add(ctx, Users, &models.User{Firstname: "Ada", Bio: "old", Groups: []string{}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Update(ctx, Users, id, "bio", "new"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var user models.User
	if err := s.Get(ctx, Users, ByID(id), &user); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if user.Bio != "new" {
		t.Fatalf("bio = %q, want new", user.Bio)
	}
	if user.Firstname != "Ada" {
		t.Fatal("unrelated field changed by single-field update")
	}

	err = s.Update(ctx, Users, "ffffffffffffffffffffffff", "bio", "x")
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("update of missing doc: got %v, want NotFound", err)
	}
}

func TestMemoryStoreUpdateSlice(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.Add(ctx, Users, &models.User{Following: []string{}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Update(ctx, Users, id, "following", []string{"a", "b"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var user models.User
	if err := s.Get(ctx, Users, ByID(id), &user); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(user.Following) != 2 || user.Following[0] != "a" || user.Following[1] != "b" {
		t.Fatalf("following = %v", user.Following)
	}

	var follower models.User
	if err := s.Get(ctx, Users, Filter{"following": "b"}, &follower); err != nil {
		t.Fatalf("array-contains after update: %v", err)
	}
}
