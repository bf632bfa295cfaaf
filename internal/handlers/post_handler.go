package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/feed"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/repositories"
	"github.com/solace-app/backend/pkg/objectstore"
)

// PostHandler serves posts, comments, reactions, bookmarks and moderation.
type PostHandler struct {
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	users         repositories.UserRepository
	reactions     repositories.ReactionRepository
	reports       repositories.ReportRepository
	notifications repositories.NotificationRepository
	feeds         *feed.Service
	objects       objectstore.ObjectStore
}

func NewPostHandler(posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository, reactions repositories.ReactionRepository, reports repositories.ReportRepository, notifications repositories.NotificationRepository, feeds *feed.Service, objects objectstore.ObjectStore) *PostHandler {
	return &PostHandler{
		posts:         posts,
		comments:      comments,
		users:         users,
		reactions:     reactions,
		reports:       reports,
		notifications: notifications,
		feeds:         feeds,
		objects:       objects,
	}
}

// GroupPosts returns the hydrated posts of one group the caller belongs to.
// Membership is required regardless of role; moderation reaches non-joined
// content through reports, not the group listing.
func (h *PostHandler) GroupPosts(c echo.Context) error {
	ctx := c.Request().Context()
	groupID := c.Param("groupid")

	viewer, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	if !viewer.InGroup(groupID) {
		return echo.NewHTTPError(http.StatusForbidden, "User does not have access to this group")
	}

	posts, err := h.feeds.GroupFeed(ctx, viewer, groupID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// Create publishes a post to one or more groups the caller belongs to. A
// single document serves every target group. Anonymous posts redact the
// embedded author display fields but keep the author id.
func (h *PostHandler) Create(c echo.Context) error {
	req := new(models.CreatePostRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return httpError(err)
	}
	for _, groupID := range req.GroupIDs {
		if !user.InGroup(groupID) {
			return echo.NewHTTPError(http.StatusForbidden, "User must belong to every selected group")
		}
	}

	images := []string{}
	if form, err := c.MultipartForm(); err == nil && len(form.File["images"]) > 0 {
		images, err = h.objects.UploadFiles(ctx, form.File["images"])
		if err != nil {
			return httpError(err)
		}
	}
	if req.Title == "" && req.Content == "" && len(images) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "A post needs a title, content or images")
	}

	post := &models.Post{
		BelongsTo:   req.GroupIDs,
		Author:      user.AuthorSnapshot(req.IsAnonymous),
		Title:       req.Title,
		Content:     req.Content,
		Images:      images,
		IsAnonymous: req.IsAnonymous,
		Warning:     req.Warning,
		Reactions:   models.NewReactionSets(),
		Comments:    []string{},
		Bookmarks:   []string{},
		CreatedAt:   time.Now(),
	}
	id, err := h.posts.Create(ctx, post)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Post created successfully", "id": id})
}

// Edit replaces the content of a post or comment. The id is resolved against
// posts first, then comments; only the author may edit.
func (h *PostHandler) Edit(c echo.Context) error {
	req := new(models.EditContentRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	userID := getUserIDFromContext(c)

	if post, err := h.posts.GetByID(ctx, id); err == nil {
		if post.Author.ID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Only the author can edit this post")
		}
		if err := h.posts.UpdateContent(ctx, id, req.Message); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{"msg": "Post updated successfully"})
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return httpError(err)
	}

	comment, err := h.comments.GetByID(ctx, id)
	if err != nil {
		return httpError(err)
	}
	if comment.Author.ID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can edit this comment")
	}
	if err := h.comments.UpdateContent(ctx, id, req.Message); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Comment updated successfully"})
}

// Comment adds a top-level comment to a post in a group the caller belongs to.
func (h *PostHandler) Comment(c echo.Context) error {
	return h.comment(c, c.Param("id"), "")
}

// Reply adds a reply under an existing comment of the post.
func (h *PostHandler) Reply(c echo.Context) error {
	return h.comment(c, c.Param("postid"), c.Param("id"))
}

func (h *PostHandler) comment(c echo.Context, postID, parentCommentID string) error {
	req := new(models.CommentRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, post, err := h.gatedPost(c, postID)
	if err != nil {
		return err
	}

	parent := models.PostRef(post.ID)
	notifyType := models.NotificationComment
	notifyTarget := post.Author.ID
	notifyContent := user.Firstname + " commented on your post"
	if parentCommentID != "" {
		parentComment, err := h.comments.GetByID(ctx, parentCommentID)
		if err != nil {
			return httpError(err)
		}
		parent = models.CommentRef(parentComment.ID)
		notifyType = models.NotificationReply
		notifyTarget = parentComment.Author.ID
		notifyContent = user.Firstname + " replied to your comment"
	}

	comment := &models.Comment{
		Author:    user.AuthorSnapshot(false),
		Content:   req.Content,
		Reactions: models.NewReactionSets(),
		Comments:  []string{},
		CreatedAt: time.Now(),
	}
	id, err := h.comments.Create(ctx, parent, comment)
	if err != nil {
		return httpError(err)
	}

	if notifyTarget != user.ID.Hex() {
		if err := h.notifications.Add(ctx, notifyTarget, models.NotificationEvent{
			Type:    notifyType,
			Content: notifyContent,
			Author:  user.AuthorSnapshot(false),
		}); err != nil {
			c.Logger().Warnf("comment: notifying %s: %v", notifyTarget, err)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Comment added successfully", "id": id})
}

// React records the caller's reaction on a post, or on a comment when the
// second id is present. Repeating the same reaction is a conflict; a
// different reaction replaces the previous one.
func (h *PostHandler) React(c echo.Context) error {
	req := new(models.ReactionRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, post, err := h.gatedPost(c, c.Param("postid"))
	if err != nil {
		return err
	}

	target := models.PostRef(post.ID)
	notifyTarget := post.Author.ID
	notifyContent := user.Firstname + " reacted to your post"
	if commentID := c.Param("id"); commentID != "" {
		comment, err := h.comments.GetByID(ctx, commentID)
		if err != nil {
			return httpError(err)
		}
		target = models.CommentRef(comment.ID)
		notifyTarget = comment.Author.ID
		notifyContent = user.Firstname + " reacted to your comment"
	}

	if err := h.reactions.Set(ctx, target, user.ID.Hex(), req.Reaction); err != nil {
		return httpError(err)
	}

	if notifyTarget != user.ID.Hex() {
		if err := h.notifications.Add(ctx, notifyTarget, models.NotificationEvent{
			Type:    models.NotificationReaction,
			Content: notifyContent,
			Author:  user.AuthorSnapshot(false),
		}); err != nil {
			c.Logger().Warnf("react: notifying %s: %v", notifyTarget, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Reaction added successfully"})
}

// Bookmark toggles the caller's bookmark on a post.
func (h *PostHandler) Bookmark(c echo.Context) error {
	ctx := c.Request().Context()
	user, post, err := h.gatedPost(c, c.Param("postid"))
	if err != nil {
		return err
	}
	added, err := h.reactions.ToggleBookmark(ctx, post.ID.Hex(), user.ID.Hex())
	if err != nil {
		return httpError(err)
	}
	msg := "Bookmark removed successfully"
	if added {
		msg = "Bookmark added successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": msg})
}

// Remove deletes a post, or a comment when the second id is present. The
// group-access gate is checked before authorship, so a non-member gets a 403
// even for their own content. Authors, moderators and admins may remove;
// reports against the removed content are pruned.
func (h *PostHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	user, post, err := h.gatedPost(c, c.Param("postid"))
	if err != nil {
		return err
	}

	commentID := c.Param("id")
	if commentID == "" {
		if post.Author.ID != user.ID.Hex() && !user.UserType.AtLeast(models.RoleModerator) {
			return echo.NewHTTPError(http.StatusForbidden, "User is unauthorized to make this request.")
		}
		if err := h.removePost(ctx, post); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{"msg": "Post removed successfully"})
	}

	comment, err := h.comments.GetByID(ctx, commentID)
	if err != nil {
		return httpError(err)
	}
	if comment.Author.ID != user.ID.Hex() && !user.UserType.AtLeast(models.RoleModerator) {
		return echo.NewHTTPError(http.StatusForbidden, "User is unauthorized to make this request.")
	}
	if err := h.removeComment(ctx, post.ID.Hex(), commentID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Comment removed successfully"})
}

// Report files a report against a post, or a comment when the second id is
// present. Reports from moderators and admins remove the content immediately;
// everyone else's report is recorded and announced to the admins.
func (h *PostHandler) Report(c echo.Context) error {
	req := new(models.ReportRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, post, err := h.gatedPost(c, c.Param("postid"))
	if err != nil {
		return err
	}

	target := models.PostRef(post.ID)
	if commentID := c.Param("id"); commentID != "" {
		comment, err := h.comments.GetByID(ctx, commentID)
		if err != nil {
			return httpError(err)
		}
		target = models.CommentRef(comment.ID)
	}

	if user.UserType.AtLeast(models.RoleModerator) {
		if target.Kind == models.TargetComment {
			err = h.removeComment(ctx, post.ID.Hex(), target.ID)
		} else {
			err = h.removePost(ctx, post)
		}
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{"msg": "Reported content removed successfully"})
	}

	if _, err := h.reports.Add(ctx, &models.Report{
		Target:    target,
		Reason:    req.Reason,
		CreatedAt: time.Now(),
	}); err != nil {
		return httpError(err)
	}
	if err := h.notifications.SendToAdmins(ctx, models.NotificationEvent{
		Type:    models.NotificationReport,
		Content: "Content was reported: " + req.Reason,
		Author:  user.AuthorSnapshot(false),
	}); err != nil {
		c.Logger().Warnf("report: notifying admins: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Content reported successfully"})
}

// ListReports returns every open report together with the reported content.
// Reports whose content has since disappeared are listed without it.
func (h *PostHandler) ListReports(c echo.Context) error {
	ctx := c.Request().Context()
	reports, err := h.reports.GetAll(ctx)
	if err != nil {
		return httpError(err)
	}

	result := make([]echo.Map, 0, len(reports))
	for _, report := range reports {
		entry := echo.Map{"report": report}
		switch report.Target.Kind {
		case models.TargetComment:
			if comment, err := h.comments.GetByID(ctx, report.Target.ID); err == nil {
				entry["content"] = comment
			}
		default:
			if post, err := h.posts.GetByID(ctx, report.Target.ID); err == nil {
				entry["content"] = post
			}
		}
		result = append(result, entry)
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": result})
}

// gatedPost loads the caller and the post and applies the group-access gate.
func (h *PostHandler) gatedPost(c echo.Context, postID string) (*models.User, *models.Post, error) {
	ctx := c.Request().Context()
	user, err := h.users.GetByID(ctx, getUserIDFromContext(c))
	if err != nil {
		return nil, nil, httpError(err)
	}
	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, httpError(err)
	}
	if !feed.CanView(user, post) {
		return nil, nil, echo.NewHTTPError(http.StatusForbidden, "User does not have access to this group")
	}
	return user, post, nil
}

func (h *PostHandler) removePost(ctx context.Context, post *models.Post) error {
	id := post.ID.Hex()
	if err := h.posts.Remove(ctx, id); err != nil {
		return err
	}
	_, err := h.reports.RemoveByTarget(ctx, id)
	return err
}

func (h *PostHandler) removeComment(ctx context.Context, postID, commentID string) error {
	if err := h.posts.RemoveCommentID(ctx, postID, commentID); err != nil {
		return err
	}
	if err := h.comments.Remove(ctx, commentID); err != nil {
		return err
	}
	_, err := h.reports.RemoveByTarget(ctx, commentID)
	return err
}
