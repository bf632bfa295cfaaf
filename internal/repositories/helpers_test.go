package repositories

import (
	"context"
	"testing"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func seedUser(t *testing.T, s store.Store, user *models.User) string {
	t.Helper()
	if user.Groups == nil {
		user.Groups = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.BlockedList == nil {
		user.BlockedList = []string{}
	}
	if user.BlockedBy == nil {
		user.BlockedBy = []string{}
	}
	id, err := s.Add(context.Background(), store.Users, user)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func seedPost(t *testing.T, s store.Store, post *models.Post) string {
	t.Helper()
	if post.Reactions == nil {
		post.Reactions = models.NewReactionSets()
	}
	if post.Comments == nil {
		post.Comments = []string{}
	}
	if post.Bookmarks == nil {
		post.Bookmarks = []string{}
	}
	id, err := s.Add(context.Background(), store.Posts, post)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return id
}
