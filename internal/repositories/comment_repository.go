package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// CommentRepository defines comment data operations. Creating a comment also
// appends its id to the parent's comment list (a post for top-level comments,
// a comment for replies); the insert and the back-link write are independent.
type CommentRepository interface {
	Create(ctx context.Context, parent models.ContentRef, comment *models.Comment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Remove(ctx context.Context, id string) error
}

type commentRepository struct {
	store store.Store
}

// NewCommentRepository creates a store-backed CommentRepository.
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{store: s}
}

func (r *commentRepository) Create(ctx context.Context, parent models.ContentRef, comment *models.Comment) (string, error) {
	id, err := r.store.Add(ctx, store.CommentsColl, comment)
	if err != nil {
		return "", err
	}

	collection := store.Posts
	if parent.Kind == models.TargetComment {
		collection = store.CommentsColl
	}

	var parentDoc struct {
		Comments []string `bson:"comments"`
	}
	if err := r.store.Get(ctx, collection, store.ByID(parent.ID), &parentDoc); err != nil {
		return "", err
	}
	if err := r.store.Update(ctx, collection, parent.ID, "comments", append(parentDoc.Comments, id)); err != nil {
		return "", err
	}
	return id, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.store.Get(ctx, store.CommentsColl, store.ByID(id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var comments []models.Comment
	if err := r.store.GetAll(ctx, store.CommentsColl, store.Filter{"_id": store.InStrings(ids)}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return r.store.Update(ctx, store.CommentsColl, id, "content", content)
}

func (r *commentRepository) Remove(ctx context.Context, id string) error {
	count, err := r.store.Remove(ctx, store.CommentsColl, store.ByID(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "Comment not found")
	}
	return nil
}
