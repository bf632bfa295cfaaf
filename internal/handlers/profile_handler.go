package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/feed"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
)

// ProfileHandler serves other users' profiles and the follow/block graph.
type ProfileHandler struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	notifications repositories.NotificationRepository
	feeds         *feed.Service
}

func NewProfileHandler(users repositories.UserRepository, posts repositories.PostRepository, notifications repositories.NotificationRepository, feeds *feed.Service) *ProfileHandler {
	return &ProfileHandler{users: users, posts: posts, notifications: notifications, feeds: feeds}
}

func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/:id", h.GetProfile)
	g.POST("/:id/follow", h.Follow)
	g.POST("/:id/unfollow", h.Unfollow)
	g.POST("/:id/block", h.Block)
	g.POST("/:id/unblock", h.Unblock)
}

// GetProfile returns another user's profile. Private profiles show a reduced
// field set unless viewer and owner follow each other; full profiles include
// the owner's non-anonymous posts visible to the viewer plus the names of
// mutual followers.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID := c.Param("id")

	viewer, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	if !viewer.UserType.AtLeast(models.RoleAdmin) && viewer.IsBlockedBy(ownerID) {
		return echo.NewHTTPError(http.StatusForbidden, "User does not have access to this profile")
	}

	owner, err := h.users.GetByID(ctx, ownerID)
	if err != nil {
		return httpError(err)
	}

	if !feed.CanViewFullProfile(viewer, owner) {
		return c.JSON(http.StatusOK, echo.Map{"user": feed.PublicProfile(*owner)})
	}

	notAnonymous := false
	posts, err := h.posts.GetByAuthor(ctx, ownerID, &notAnonymous)
	if err != nil {
		return httpError(err)
	}
	hydrated, err := h.feeds.Assemble(ctx, viewer, feed.FilterPosts(viewer, posts))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            feed.SanitizeProfile(*owner),
		"posts":           hydrated,
		"mutualFollowers": h.mutualFollowers(ctx, viewer, owner),
	})
}

// mutualFollowers returns the display names of the owner's followers that the
// viewer also follows. Lookup failures drop the entry rather than failing the
// profile.
func (h *ProfileHandler) mutualFollowers(ctx context.Context, viewer, owner *models.User) []string {
	names := []string{}
	for _, id := range owner.Followers {
		if !followsID(viewer.Following, id) {
			continue
		}
		mutual, err := h.users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		names = append(names, mutual.Firstname+" "+mutual.Lastname)
	}
	return names
}

// Follow subscribes the caller to the target user's posts.
func (h *ProfileHandler) Follow(c echo.Context) error {
	ctx := c.Request().Context()
	targetID := c.Param("id")
	viewer, err := h.relationCaller(c, targetID)
	if err != nil {
		return err
	}
	if !viewer.UserType.AtLeast(models.RoleAdmin) && viewer.IsBlockedBy(targetID) {
		return echo.NewHTTPError(http.StatusForbidden, "User does not have access to this profile")
	}
	if err := h.users.Follow(ctx, viewer.ID.Hex(), targetID); err != nil {
		return httpError(err)
	}
	if err := h.notifications.Add(ctx, targetID, models.NotificationEvent{
		Type:    models.NotificationFollow,
		Content: viewer.Firstname + " " + viewer.Lastname + " started following you",
		Author:  viewer.AuthorSnapshot(false),
	}); err != nil {
		c.Logger().Warnf("follow: notifying %s: %v", targetID, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Followed user successfully"})
}

// Unfollow removes the caller's subscription to the target user.
func (h *ProfileHandler) Unfollow(c echo.Context) error {
	viewer, err := h.relationCaller(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.users.Unfollow(c.Request().Context(), viewer.ID.Hex(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Unfollowed user successfully"})
}

// Block hides the caller from the target and severs any follow relationship
// in both directions first.
func (h *ProfileHandler) Block(c echo.Context) error {
	viewer, err := h.relationCaller(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.users.Block(c.Request().Context(), viewer.ID.Hex(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Blocked user successfully"})
}

// Unblock lifts a block placed by the caller.
func (h *ProfileHandler) Unblock(c echo.Context) error {
	viewer, err := h.relationCaller(c, c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.users.Unblock(c.Request().Context(), viewer.ID.Hex(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Unblocked user successfully"})
}

// relationCaller loads the caller and rejects self-referential graph edits.
func (h *ProfileHandler) relationCaller(c echo.Context, targetID string) (*models.User, error) {
	viewer, err := h.users.GetByID(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return nil, httpError(err)
	}
	if viewer.ID.Hex() == targetID {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Cannot perform this action on yourself")
	}
	return viewer, nil
}

func followsID(list []string, id string) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}
