package feed

import (
	"context"
	"sort"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
)

// Post is a feed entry: a post with its full comment subtree attached in
// place of the stored comment ids.
type Post struct {
	models.Post
	Comments []Comment `json:"comments"`
}

// Comment is a hydrated comment node with its replies attached.
type Comment struct {
	models.Comment
	Comments []Comment `json:"comments"`
}

// Service assembles visibility-filtered, comment-hydrated, chronologically
// ordered feeds.
type Service struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewService creates a feed Service.
func NewService(posts repositories.PostRepository, comments repositories.CommentRepository) *Service {
	return &Service{posts: posts, comments: comments}
}

// BuildFeed returns every post visible to the viewer across their joined
// groups: per-group candidates unioned with de-dup by post id (cross-posts
// appear once), filtered for visibility, hydrated and sorted ascending by
// creation time.
func (s *Service) BuildFeed(ctx context.Context, viewer *models.User) ([]Post, error) {
	var candidates []models.Post
	seen := map[string]bool{}
	for _, groupID := range viewer.Groups {
		posts, err := s.posts.GetByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for _, post := range posts {
			id := post.ID.Hex()
			if seen[id] {
				continue
			}
			seen[id] = true
			candidates = append(candidates, post)
		}
	}
	return s.Assemble(ctx, viewer, FilterPosts(viewer, candidates))
}

// GroupFeed returns the visible posts of a single group the viewer belongs
// to, hydrated and ordered.
func (s *Service) GroupFeed(ctx context.Context, viewer *models.User, groupID string) ([]Post, error) {
	posts, err := s.posts.GetByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.Assemble(ctx, viewer, FilterPosts(viewer, posts))
}

// Assemble hydrates each post's comment tree and sorts the result ascending
// by creation time, keeping first-encountered order on ties.
func (s *Service) Assemble(ctx context.Context, viewer *models.User, posts []models.Post) ([]Post, error) {
	result := make([]Post, 0, len(posts))
	dedup := map[string]bool{}
	for _, post := range posts {
		id := post.ID.Hex()
		if dedup[id] {
			continue
		}
		dedup[id] = true

		tree, err := s.commentTree(ctx, viewer, post.Comments, map[string]bool{})
		if err != nil {
			return nil, err
		}
		result = append(result, Post{Post: post, Comments: tree})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// commentTree resolves comment ids into hydrated nodes, descending into
// replies level by level. Comment graphs are trees by construction, but the
// seen set makes a malformed cyclic graph terminate instead of recursing
// forever. Comments whose author has blocked the viewer are dropped with
// their subtree.
func (s *Service) commentTree(ctx context.Context, viewer *models.User, ids []string, seen map[string]bool) ([]Comment, error) {
	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		pending = append(pending, id)
	}
	if len(pending) == 0 {
		return []Comment{}, nil
	}

	fetched, err := s.comments.GetByIDs(ctx, pending)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Comment, len(fetched))
	for _, comment := range fetched {
		byID[comment.ID.Hex()] = comment
	}

	tree := make([]Comment, 0, len(pending))
	for _, id := range pending {
		comment, ok := byID[id]
		if !ok {
			// Dangling id left behind by a removal race; skip it.
			continue
		}
		if hideComment(viewer, comment.Author.ID) {
			continue
		}
		replies, err := s.commentTree(ctx, viewer, comment.Comments, seen)
		if err != nil {
			return nil, err
		}
		tree = append(tree, Comment{Comment: comment, Comments: replies})
	}
	return tree, nil
}
