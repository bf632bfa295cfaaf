package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// ReactionRepository maintains the per-target reaction sets and post
// bookmarks.
type ReactionRepository interface {
	// Set records the user's reaction on the target. A user holds at most
	// one reaction kind per target: reacting with a different kind swaps the
	// old one out, repeating the same kind is a conflict, not a no-op.
	Set(ctx context.Context, target models.ContentRef, userID, kind string) error

	// ToggleBookmark flips the user's bookmark on a post and reports whether
	// it is now set.
	ToggleBookmark(ctx context.Context, postID, userID string) (bool, error)
}

type reactionRepository struct {
	store store.Store
}

// NewReactionRepository creates a store-backed ReactionRepository.
func NewReactionRepository(s store.Store) ReactionRepository {
	return &reactionRepository{store: s}
}

func (r *reactionRepository) Set(ctx context.Context, target models.ContentRef, userID, kind string) error {
	if !models.ValidReaction(kind) {
		return apperr.New(apperr.Validation, "invalid reaction format, must be like, love or laugh.")
	}

	collection := store.Posts
	if target.Kind == models.TargetComment {
		collection = store.CommentsColl
	}

	var doc struct {
		Reactions map[string][]string `bson:"reactions"`
	}
	if err := r.store.Get(ctx, collection, store.ByID(target.ID), &doc); err != nil {
		return err
	}
	reactions := doc.Reactions
	if reactions == nil {
		reactions = models.NewReactionSets()
	}

	if contains(reactions[kind], userID) {
		return apperr.New(apperr.Conflict, "you have already reacted")
	}

	for existing, users := range reactions {
		if existing != kind && contains(users, userID) {
			reactions[existing] = remove(users, userID)
		}
	}
	reactions[kind] = append(reactions[kind], userID)

	return r.store.Update(ctx, collection, target.ID, "reactions", reactions)
}

func (r *reactionRepository) ToggleBookmark(ctx context.Context, postID, userID string) (bool, error) {
	var doc struct {
		Bookmarks []string `bson:"bookmarks"`
	}
	if err := r.store.Get(ctx, store.Posts, store.ByID(postID), &doc); err != nil {
		return false, err
	}

	if contains(doc.Bookmarks, userID) {
		return false, r.store.Update(ctx, store.Posts, postID, "bookmarks", remove(doc.Bookmarks, userID))
	}
	return true, r.store.Update(ctx, store.Posts, postID, "bookmarks", append(doc.Bookmarks, userID))
}
