// Package feed implements the visibility rules and the feed aggregation that
// sit between raw documents and anything returned to a viewer.
package feed

import "github.com/solace-app/backend/internal/models"

// CanView reports whether the viewer may see the post: the viewer must share
// at least one of the post's groups, and non-admin viewers never see content
// from an author who has blocked them.
func CanView(viewer *models.User, post *models.Post) bool {
	if !groupsIntersect(viewer.Groups, post.BelongsTo) {
		return false
	}
	if viewer.UserType.AtLeast(models.RoleAdmin) {
		return true
	}
	return !viewer.IsBlockedBy(post.Author.ID)
}

// FilterPosts drops every candidate the viewer may not see, preserving order.
func FilterPosts(viewer *models.User, posts []models.Post) []models.Post {
	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if CanView(viewer, &post) {
			visible = append(visible, post)
		}
	}
	return visible
}

// hideComment reports whether a comment must be hidden from the viewer
// because its author has blocked them.
func hideComment(viewer *models.User, author string) bool {
	if viewer == nil || viewer.UserType.AtLeast(models.RoleAdmin) {
		return false
	}
	return viewer.IsBlockedBy(author)
}

// SanitizeProfile strips the fields that must never cross a user boundary:
// the password hash, phone number, email and selfie reference.
func SanitizeProfile(user models.User) models.User {
	user.Password = ""
	user.PhoneNumber = ""
	user.Email = ""
	user.SelfieImageURL = ""
	return user
}

// PublicProfile reduces a user to the fields shown when a private profile is
// viewed without mutual-follow access.
func PublicProfile(user models.User) models.User {
	return models.User{
		ID:              user.ID,
		Firstname:       user.Firstname,
		Lastname:        user.Lastname,
		Gender:          user.Gender,
		Bio:             user.Bio,
		UserType:        user.UserType,
		Verified:        user.Verified,
		IsPrivate:       user.IsPrivate,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}
}

// CanViewFullProfile reports whether the viewer gets the owner's full profile:
// the owner themselves, an admin, any viewer of a public profile, or a
// mutual follower of a private one.
func CanViewFullProfile(viewer, owner *models.User) bool {
	if !owner.IsPrivate {
		return true
	}
	if viewer.ID == owner.ID || viewer.UserType.AtLeast(models.RoleAdmin) {
		return true
	}
	return containsID(owner.Following, viewer.ID.Hex()) && containsID(viewer.Following, owner.ID.Hex())
}

func groupsIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func containsID(list []string, id string) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}
