package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the ordered user-type hierarchy. Comparisons always go through
// AtLeast so the levels can be renumbered without hunting down raw
// integer checks.
type Role int

const (
	RoleUser Role = iota + 1
	RoleModerator
	RoleAdmin
)

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool { return r >= min }

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ValidRole reports whether r is one of the defined levels.
func ValidRole(r Role) bool { return r >= RoleUser && r <= RoleAdmin }

// User represents a user document.
//
// Following/Followers and BlockedList/BlockedBy are mirrored relations: the
// backend is the sole maintainer of their symmetry because the store offers
// no multi-document transactions.
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Firstname       string             `json:"firstname" bson:"firstname"`
	Lastname        string             `json:"lastname" bson:"lastname"`
	Email           string             `json:"email,omitempty" bson:"email"`
	PhoneNumber     string             `json:"phoneNumber,omitempty" bson:"phoneNumber"`
	Password        string             `json:"-" bson:"password"`
	Gender          string             `json:"gender" bson:"gender"`
	DOB             string             `json:"dob" bson:"dob"`
	Bio             string             `json:"bio" bson:"bio"`
	UserType        Role               `json:"userType" bson:"userType"`
	Verified        bool               `json:"verified" bson:"verified"`
	IsPrivate       bool               `json:"isPrivate" bson:"isPrivate"`
	ProfileImageURL string             `json:"profileImageUrl" bson:"profileImageUrl"`
	SelfieImageURL  string             `json:"selfieImageUrl,omitempty" bson:"selfieImageUrl"`
	Groups          []string           `json:"groups" bson:"groups"`
	Following       []string           `json:"following" bson:"following"`
	Followers       []string           `json:"followers" bson:"followers"`
	BlockedList     []string           `json:"blockedList,omitempty" bson:"blockedList"`
	BlockedBy       []string           `json:"blockedBy,omitempty" bson:"blockedBy"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// Author is the snapshot of a user embedded into posts, comments,
// notifications and messages.
type Author struct {
	ID              string `json:"id" bson:"id"`
	Firstname       string `json:"firstname" bson:"firstname"`
	Lastname        string `json:"lastname" bson:"lastname"`
	ProfileImageURL string `json:"profileImageUrl" bson:"profileImageUrl"`
	Gender          string `json:"gender" bson:"gender"`
}

// AuthorSnapshot builds the embedded author record for content created by u.
// Anonymous content keeps the author id for moderation traceability but
// redacts every display field.
func (u *User) AuthorSnapshot(anonymous bool) Author {
	if anonymous {
		return Author{
			ID:        u.ID.Hex(),
			Firstname: "Anonymous",
			Gender:    u.Gender,
		}
	}
	return Author{
		ID:              u.ID.Hex(),
		Firstname:       u.Firstname,
		Lastname:        u.Lastname,
		ProfileImageURL: u.ProfileImageURL,
		Gender:          u.Gender,
	}
}

// InGroup reports whether the user has joined the group.
func (u *User) InGroup(groupID string) bool {
	for _, g := range u.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}

// IsBlockedBy reports whether id has blocked this user.
func (u *User) IsBlockedBy(id string) bool {
	for _, b := range u.BlockedBy {
		if b == id {
			return true
		}
	}
	return false
}

// LoginRequest defines the request body for logging in.
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required,e164"`
	Password    string `json:"password" form:"password" validate:"required"`
}

// RegisterRequest defines the multipart form fields for registration. The
// profile picture and selfie arrive as file parts and are validated in the
// handler.
type RegisterRequest struct {
	Firstname   string `form:"firstname" validate:"required,min=1,max=50"`
	Lastname    string `form:"lastname" validate:"required,min=1,max=50"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" validate:"required,e164"`
	Password    string `form:"password" validate:"required,min=8"`
	Gender      string `form:"gender" validate:"required,oneof=woman non-binary"`
	DOB         string `form:"dob" validate:"required"`
}

// PromoteRequest defines the request body for changing a user's level.
type PromoteRequest struct {
	Level Role `json:"level" validate:"required"`
}

// UpdateBioRequest defines the request body for updating the profile bio.
type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=300"`
}

// UpdatePrivacyRequest defines the request body for toggling profile privacy.
type UpdatePrivacyRequest struct {
	IsPrivate *bool `json:"isPrivate" validate:"required"`
}
