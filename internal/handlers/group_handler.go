package handlers

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/feed"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
	"github.com/solace-app/backend/pkg/objectstore"
)

// GroupHandler serves group management and the aggregated feed.
type GroupHandler struct {
	groups  repositories.GroupRepository
	users   repositories.UserRepository
	posts   repositories.PostRepository
	reports repositories.ReportRepository
	feeds   *feed.Service
	objects objectstore.ObjectStore
}

func NewGroupHandler(groups repositories.GroupRepository, users repositories.UserRepository, posts repositories.PostRepository, reports repositories.ReportRepository, feeds *feed.Service, objects objectstore.ObjectStore) *GroupHandler {
	return &GroupHandler{groups: groups, users: users, posts: posts, reports: reports, feeds: feeds, objects: objects}
}

// Feed returns the caller's aggregated feed: the visible posts of every
// joined group, deduplicated and in ascending creation order, with full
// comment trees.
func (h *GroupHandler) Feed(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	posts, err := h.feeds.BuildFeed(ctx, viewer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"feed": posts})
}

// ListGroups returns every group.
func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groups.GetAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": groups})
}

// Create makes a new group from a multipart form and joins the creator to it.
// Group names are unique.
func (h *GroupHandler) Create(c echo.Context) error {
	req := new(models.CreateGroupRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	exists, err := h.groups.Exists(ctx, req.Name)
	if err != nil {
		return httpError(err)
	}
	if exists {
		return echo.NewHTTPError(http.StatusConflict, "A group with this name already exists")
	}

	picture := ""
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["groupPicture"]; len(files) == 1 {
			urls, err := h.objects.UploadFiles(ctx, []*multipart.FileHeader{files[0]})
			if err != nil {
				return httpError(err)
			}
			picture = urls[0]
		}
	}

	userID := getUserIDFromContext(c)
	group := &models.Group{
		Name:         req.Name,
		Description:  req.Description,
		GroupPicture: picture,
		Category:     req.Category,
		IsPrivate:    req.IsPrivate,
		Members:      []string{},
		UserCount:    0,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	id, err := h.groups.Create(ctx, group)
	if err != nil {
		return httpError(err)
	}
	if err := h.groups.Join(ctx, userID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Group created successfully", "id": id})
}

// Join adds the caller to the group.
func (h *GroupHandler) Join(c echo.Context) error {
	if err := h.groups.Join(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Joined group successfully"})
}

// Leave removes the caller from the group.
func (h *GroupHandler) Leave(c echo.Context) error {
	if err := h.groups.Leave(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Left group successfully"})
}

// Delete removes a group along with its posts and any reports against them.
// Only the creator or a moderator and above may delete a group.
func (h *GroupHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	groupID := c.Param("id")

	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	group, err := h.groups.GetByID(ctx, groupID)
	if err != nil {
		return httpError(err)
	}
	if group.CreatedBy != user.ID.Hex() && !user.UserType.AtLeast(models.RoleModerator) {
		return echo.NewHTTPError(http.StatusForbidden, "User is unauthorized to make this request.")
	}

	posts, err := h.posts.GetByGroup(ctx, groupID)
	if err != nil {
		return httpError(err)
	}
	for _, post := range posts {
		postID := post.ID.Hex()
		if err := h.posts.Remove(ctx, postID); err != nil {
			return httpError(err)
		}
		if _, err := h.reports.RemoveByTarget(ctx, postID); err != nil {
			return httpError(err)
		}
	}

	if err := h.groups.Delete(ctx, groupID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Group deleted successfully"})
}
