package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/feed"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
	"github.com/solace-app/backend/pkg/objectstore"
)

// UserHandler serves the authenticated user's own account surface plus the
// admin user-management endpoints.
type UserHandler struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	feeds   *feed.Service
	objects objectstore.ObjectStore
}

func NewUserHandler(users repositories.UserRepository, posts repositories.PostRepository, feeds *feed.Service, objects objectstore.ObjectStore) *UserHandler {
	return &UserHandler{users: users, posts: posts, feeds: feeds, objects: objects}
}

// Me returns the caller's own profile with credentials stripped.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	user.Password = ""
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// MyPosts returns the caller's non-anonymous posts, comment trees included.
func (h *UserHandler) MyPosts(c echo.Context) error {
	return h.authoredPosts(c, false)
}

// MyAnonymousPosts returns the caller's anonymous posts. Only the author's
// own listing resolves anonymous content back to its creator.
func (h *UserHandler) MyAnonymousPosts(c echo.Context) error {
	return h.authoredPosts(c, true)
}

func (h *UserHandler) authoredPosts(c echo.Context, anonymous bool) error {
	ctx := c.Request().Context()
	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	posts, err := h.posts.GetByAuthor(ctx, user.ID.Hex(), &anonymous)
	if err != nil {
		return httpError(err)
	}
	hydrated, err := h.feeds.Assemble(ctx, user, posts)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": hydrated})
}

// MyBookmarks returns every post the caller has bookmarked.
func (h *UserHandler) MyBookmarks(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	posts, err := h.posts.GetBookmarkedBy(ctx, user.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	hydrated, err := h.feeds.Assemble(ctx, user, posts)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": hydrated})
}

// ListUsers returns every other user, minus the ones who have blocked the
// caller. Admins see the full roster.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	viewer, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	all, err := h.users.GetAll(ctx)
	if err != nil {
		return httpError(err)
	}

	users := make([]models.User, 0, len(all))
	for _, u := range all {
		if u.ID == viewer.ID {
			continue
		}
		if !viewer.UserType.AtLeast(models.RoleAdmin) && viewer.IsBlockedBy(u.ID.Hex()) {
			continue
		}
		users = append(users, feed.SanitizeProfile(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Unverified lists accounts awaiting verification, selfies included so the
// reviewing admin can compare them against the profile picture.
func (h *UserHandler) Unverified(c echo.Context) error {
	users, err := h.users.GetUnverified(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Verify marks the given account as verified.
func (h *UserHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.users.Verify(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "User verified successfully"})
}

// Promote raises a user's level. The new level must be strictly above the
// target's current one.
func (h *UserHandler) Promote(c echo.Context) error {
	return h.setLevel(c, true)
}

// Downgrade lowers a user's level. The new level must be strictly below the
// target's current one.
func (h *UserHandler) Downgrade(c echo.Context) error {
	return h.setLevel(c, false)
}

func (h *UserHandler) setLevel(c echo.Context, up bool) error {
	req := new(models.PromoteRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.ValidRole(req.Level) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown user level")
	}

	ctx := c.Request().Context()
	target, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if up && target.UserType >= req.Level {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot promote user to the same or a lower level")
	}
	if !up && target.UserType <= req.Level {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot downgrade user to the same or a higher level")
	}
	if err := h.users.SetUserType(ctx, target.ID.Hex(), req.Level); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "User level updated successfully"})
}

// UpdateBio replaces the caller's profile bio.
func (h *UserHandler) UpdateBio(c echo.Context) error {
	req := new(models.UpdateBioRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if err := h.users.SetBio(c.Request().Context(), getUserIDFromContext(c), req.Bio); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Bio updated successfully"})
}

// UpdatePrivacy toggles whether the caller's full profile is restricted to
// mutual followers.
func (h *UserHandler) UpdatePrivacy(c echo.Context) error {
	req := new(models.UpdatePrivacyRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if err := h.users.SetPrivacy(c.Request().Context(), getUserIDFromContext(c), *req.IsPrivate); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Privacy updated successfully"})
}

// UpdateProfileImage replaces the caller's profile picture with an uploaded
// file.
func (h *UserHandler) UpdateProfileImage(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A profile image file is required")
	}
	files := form.File["profileImage"]
	if len(files) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "A profile image file is required")
	}

	ctx := c.Request().Context()
	urls, err := h.objects.UploadFiles(ctx, []*multipart.FileHeader{files[0]})
	if err != nil {
		return httpError(err)
	}
	if err := h.users.SetProfileImage(ctx, getUserIDFromContext(c), urls[0]); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Profile image updated successfully", "url": urls[0]})
}

// DeleteAccount removes the caller's user document. Authored content keeps
// its embedded author snapshot.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), getUserIDFromContext(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Account deleted successfully"})
}
