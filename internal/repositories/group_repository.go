package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// GroupRepository defines group data operations. Join and Leave maintain the
// denormalized userCount in lock-step with the members list; the three writes
// involved (user's groups, group's members, group's userCount) are
// independent, so a later failure leaves earlier writes in place.
type GroupRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, group *models.Group) (string, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	GetAll(ctx context.Context) ([]models.Group, error)
	Join(ctx context.Context, userID, groupID string) error
	Leave(ctx context.Context, userID, groupID string) error
	Delete(ctx context.Context, id string) error
}

type groupRepository struct {
	store store.Store
}

// NewGroupRepository creates a store-backed GroupRepository.
func NewGroupRepository(s store.Store) GroupRepository {
	return &groupRepository{store: s}
}

func (r *groupRepository) Exists(ctx context.Context, name string) (bool, error) {
	var group models.Group
	err := r.store.Get(ctx, store.Groups, store.Filter{"name": name}, &group)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) (string, error) {
	return r.store.Add(ctx, store.Groups, group)
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.store.Get(ctx, store.Groups, store.ByID(id), &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.store.GetAll(ctx, store.Groups, store.Filter{}, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Join adds the group to the user's groups list, then the user to the group's
// members list, then writes the recomputed userCount.
func (r *groupRepository) Join(ctx context.Context, userID, groupID string) error {
	var user models.User
	if err := r.store.Get(ctx, store.Users, store.ByID(userID), &user); err != nil {
		return err
	}
	if contains(user.Groups, groupID) {
		return apperr.New(apperr.Conflict, "User has already joined this group")
	}

	group, err := r.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if err := r.store.Update(ctx, store.Users, userID, "groups", append(user.Groups, groupID)); err != nil {
		return err
	}

	members := append(group.Members, userID)
	if err := r.store.Update(ctx, store.Groups, groupID, "members", members); err != nil {
		return err
	}
	return r.store.Update(ctx, store.Groups, groupID, "userCount", len(members))
}

// Leave removes the group from the user's groups list, then the user from the
// group's members list, then writes the recomputed userCount.
func (r *groupRepository) Leave(ctx context.Context, userID, groupID string) error {
	var user models.User
	if err := r.store.Get(ctx, store.Users, store.ByID(userID), &user); err != nil {
		return err
	}
	if !contains(user.Groups, groupID) {
		return apperr.New(apperr.Conflict, "User does not belong to this group")
	}

	group, err := r.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if err := r.store.Update(ctx, store.Users, userID, "groups", remove(user.Groups, groupID)); err != nil {
		return err
	}

	members := remove(group.Members, userID)
	if err := r.store.Update(ctx, store.Groups, groupID, "members", members); err != nil {
		return err
	}
	return r.store.Update(ctx, store.Groups, groupID, "userCount", len(members))
}

// Delete removes the group document after pulling the group out of every
// member's groups list, one write per member.
func (r *groupRepository) Delete(ctx context.Context, id string) error {
	group, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, memberID := range group.Members {
		var member models.User
		if err := r.store.Get(ctx, store.Users, store.ByID(memberID), &member); err != nil {
			if apperr.IsKind(err, apperr.NotFound) {
				continue
			}
			return err
		}
		if err := r.store.Update(ctx, store.Users, memberID, "groups", remove(member.Groups, id)); err != nil {
			return err
		}
	}

	count, err := r.store.Remove(ctx, store.Groups, store.ByID(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "Group does not exist")
	}
	return nil
}
