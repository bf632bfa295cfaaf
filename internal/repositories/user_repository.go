package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// UserRepository defines user and social-graph data operations. Follow, block
// and their inverses are mirrored relations: each call performs two
// independent single-document writes, one per side, with no cross-document
// atomicity.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetUnverified(ctx context.Context) ([]models.User, error)
	GetAdmins(ctx context.Context) ([]models.User, error)
	Verify(ctx context.Context, id string) error
	SetUserType(ctx context.Context, id string, level models.Role) error
	SetBio(ctx context.Context, id, bio string) error
	SetPrivacy(ctx context.Context, id string, isPrivate bool) error
	SetProfileImage(ctx context.Context, id, url string) error
	Follow(ctx context.Context, userID, targetID string) error
	Unfollow(ctx context.Context, userID, targetID string) error
	Block(ctx context.Context, userID, targetID string) error
	Unblock(ctx context.Context, userID, targetID string) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	store store.Store
}

// NewUserRepository creates a store-backed UserRepository.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (string, error) {
	return r.store.Add(ctx, store.Users, user)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, store.Users, store.ByID(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, store.Users, store.Filter{"email": email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	var user models.User
	if err := r.store.Get(ctx, store.Users, store.Filter{"phoneNumber": phoneNumber}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.GetAll(ctx, store.Users, store.Filter{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetUnverified(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.GetAll(ctx, store.Users, store.Filter{"verified": false}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetAdmins(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.GetAll(ctx, store.Users, store.Filter{"userType": models.RoleAdmin}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Verify(ctx context.Context, id string) error {
	return r.store.Update(ctx, store.Users, id, "verified", true)
}

func (r *userRepository) SetUserType(ctx context.Context, id string, level models.Role) error {
	return r.store.Update(ctx, store.Users, id, "userType", level)
}

func (r *userRepository) SetBio(ctx context.Context, id, bio string) error {
	return r.store.Update(ctx, store.Users, id, "bio", bio)
}

func (r *userRepository) SetPrivacy(ctx context.Context, id string, isPrivate bool) error {
	return r.store.Update(ctx, store.Users, id, "isPrivate", isPrivate)
}

func (r *userRepository) SetProfileImage(ctx context.Context, id, url string) error {
	return r.store.Update(ctx, store.Users, id, "profileImageUrl", url)
}

// Follow adds target to the user's following list, then the user to the
// target's followers list.
func (r *userRepository) Follow(ctx context.Context, userID, targetID string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if contains(user.Following, targetID) {
		return apperr.New(apperr.Conflict, "User is already following user")
	}
	if err := r.store.Update(ctx, store.Users, userID, "following", append(user.Following, targetID)); err != nil {
		return err
	}

	target, err := r.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Users, targetID, "followers", append(target.Followers, userID))
}

// Unfollow removes target from the user's following list, then the user from
// the target's followers list.
func (r *userRepository) Unfollow(ctx context.Context, userID, targetID string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !contains(user.Following, targetID) {
		return apperr.New(apperr.Conflict, "User is not following user")
	}
	if err := r.store.Update(ctx, store.Users, userID, "following", remove(user.Following, targetID)); err != nil {
		return err
	}

	target, err := r.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Users, targetID, "followers", remove(target.Followers, userID))
}

// Block severs any follow relationship in both directions, then records the
// block on both sides' mirrored lists.
func (r *userRepository) Block(ctx context.Context, userID, targetID string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if contains(user.BlockedList, targetID) {
		return apperr.New(apperr.Conflict, "User is already blocked")
	}

	if contains(user.Following, targetID) {
		if err := r.Unfollow(ctx, userID, targetID); err != nil {
			return err
		}
	}
	if contains(user.Followers, targetID) {
		if err := r.Unfollow(ctx, targetID, userID); err != nil {
			return err
		}
	}

	if err := r.store.Update(ctx, store.Users, userID, "blockedList", append(user.BlockedList, targetID)); err != nil {
		return err
	}

	target, err := r.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Users, targetID, "blockedBy", append(target.BlockedBy, userID))
}

// Unblock removes the block from both sides' mirrored lists.
func (r *userRepository) Unblock(ctx context.Context, userID, targetID string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !contains(user.BlockedList, targetID) {
		return apperr.New(apperr.Conflict, "User is not blocked")
	}
	if err := r.store.Update(ctx, store.Users, userID, "blockedList", remove(user.BlockedList, targetID)); err != nil {
		return err
	}

	target, err := r.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Users, targetID, "blockedBy", remove(target.BlockedBy, userID))
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	count, err := r.store.Remove(ctx, store.Users, store.ByID(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func remove(list []string, value string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		if item != value {
			result = append(result, item)
		}
	}
	return result
}
