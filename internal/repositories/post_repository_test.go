package repositories

import (
	"context"
	"testing"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func TestGetByGroupMatchesAnyTargetGroup(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewPostRepository(s)
	ctx := context.Background()

	seedPost(t, s, &models.Post{Title: "cross-posted", BelongsTo: []string{"g1", "g2"}})
	seedPost(t, s, &models.Post{Title: "only g2", BelongsTo: []string{"g2"}})

	posts, err := repo.GetByGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetByGroup: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "cross-posted" {
		t.Fatalf("posts = %+v", posts)
	}

	posts, err = repo.GetByGroup(ctx, "g2")
	if err != nil {
		t.Fatalf("GetByGroup: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts in g2, want 2", len(posts))
	}
}

func TestGetByAuthorSplitsAnonymity(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewPostRepository(s)
	ctx := context.Background()

	author := models.Author{ID: "u1", Firstname: "Ada"}
	anonAuthor := models.Author{ID: "u1", Firstname: "Anonymous"}
	seedPost(t, s, &models.Post{Title: "open", Author: author, IsAnonymous: false})
	seedPost(t, s, &models.Post{Title: "hidden", Author: anonAuthor, IsAnonymous: true})

	anonymous := false
	posts, err := repo.GetByAuthor(ctx, "u1", &anonymous)
	if err != nil {
		t.Fatalf("GetByAuthor: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "open" {
		t.Fatalf("open posts = %+v", posts)
	}

	anonymous = true
	posts, err = repo.GetByAuthor(ctx, "u1", &anonymous)
	if err != nil {
		t.Fatalf("GetByAuthor: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "hidden" {
		t.Fatalf("anonymous posts = %+v", posts)
	}

	posts, err = repo.GetByAuthor(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("GetByAuthor: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts without anonymity filter, want 2", len(posts))
	}
}

func TestGetBookmarkedBy(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewPostRepository(s)
	ctx := context.Background()

	seedPost(t, s, &models.Post{Title: "saved", Bookmarks: []string{"u1", "u2"}})
	seedPost(t, s, &models.Post{Title: "not saved", Bookmarks: []string{"u2"}})

	posts, err := repo.GetBookmarkedBy(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBookmarkedBy: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "saved" {
		t.Fatalf("posts = %+v", posts)
	}
}

func TestGetByIDsKeepsOrder(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewPostRepository(s)
	ctx := context.Background()

	first := seedPost(t, s, &models.Post{Title: "first"})
	seedPost(t, s, &models.Post{Title: "second"})
	third := seedPost(t, s, &models.Post{Title: "third"})

	posts, err := repo.GetByIDs(ctx, []string{first, third})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
}
