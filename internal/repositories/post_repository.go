package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// PostRepository defines post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (string, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Post, error)
	// GetByGroup returns every post published to the group.
	GetByGroup(ctx context.Context, groupID string) ([]models.Post, error)
	// GetByAuthor returns the author's posts; anonymous narrows to anonymous
	// or non-anonymous posts when non-nil.
	GetByAuthor(ctx context.Context, authorID string, anonymous *bool) ([]models.Post, error)
	// GetBookmarkedBy returns every post the user has bookmarked.
	GetBookmarkedBy(ctx context.Context, userID string) ([]models.Post, error)
	UpdateContent(ctx context.Context, id, content string) error
	// RemoveCommentID prunes a removed comment's id from the post's
	// top-level comment list.
	RemoveCommentID(ctx context.Context, postID, commentID string) error
	Remove(ctx context.Context, id string) error
}

type postRepository struct {
	store store.Store
}

// NewPostRepository creates a store-backed PostRepository.
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{store: s}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	return r.store.Add(ctx, store.Posts, post)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.store.Get(ctx, store.Posts, store.ByID(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	if err := r.store.GetAll(ctx, store.Posts, store.Filter{"_id": store.InStrings(ids)}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByGroup(ctx context.Context, groupID string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.store.GetAll(ctx, store.Posts, store.Filter{"belongsTo": groupID}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID string, anonymous *bool) ([]models.Post, error) {
	filter := store.Filter{"author.id": authorID}
	if anonymous != nil {
		filter["isAnonymous"] = *anonymous
	}
	var posts []models.Post
	if err := r.store.GetAll(ctx, store.Posts, filter, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetBookmarkedBy(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	if err := r.store.GetAll(ctx, store.Posts, store.Filter{"bookmarks": userID}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdateContent(ctx context.Context, id, content string) error {
	return r.store.Update(ctx, store.Posts, id, "content", content)
}

func (r *postRepository) RemoveCommentID(ctx context.Context, postID, commentID string) error {
	post, err := r.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Posts, postID, "comments", remove(post.Comments, commentID))
}

func (r *postRepository) Remove(ctx context.Context, id string) error {
	count, err := r.store.Remove(ctx, store.Posts, store.ByID(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "Post not found")
	}
	return nil
}
