package repositories

import (
	"context"
	"time"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// NotificationRepository maintains the per-user notification buckets.
// Delivery is at-least-once and fire-and-forget: callers treat Add failures
// as non-fatal to the primary operation.
type NotificationRepository interface {
	// CreateBucket creates the user's empty bucket at registration.
	CreateBucket(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.NotificationBucket, error)
	Add(ctx context.Context, userID string, event models.NotificationEvent) error
	// Clear empties the bucket wholesale; there is no per-entry removal.
	Clear(ctx context.Context, userID string) error
	// SendToAdmins appends the event to every admin's bucket, one write per
	// admin.
	SendToAdmins(ctx context.Context, event models.NotificationEvent) error
}

type notificationRepository struct {
	store store.Store
	users UserRepository
}

// NewNotificationRepository creates a store-backed NotificationRepository.
func NewNotificationRepository(s store.Store, users UserRepository) NotificationRepository {
	return &notificationRepository{store: s, users: users}
}

func (r *notificationRepository) CreateBucket(ctx context.Context, userID string) error {
	bucket := models.NotificationBucket{
		BelongsTo:     userID,
		Notifications: []models.NotificationEvent{},
	}
	_, err := r.store.Add(ctx, store.Notifications, &bucket)
	return err
}

func (r *notificationRepository) Get(ctx context.Context, userID string) (*models.NotificationBucket, error) {
	var bucket models.NotificationBucket
	if err := r.store.Get(ctx, store.Notifications, store.Filter{"belongsTo": userID}, &bucket); err != nil {
		return nil, err
	}
	return &bucket, nil
}

func (r *notificationRepository) Add(ctx context.Context, userID string, event models.NotificationEvent) error {
	bucket, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.store.Update(ctx, store.Notifications, bucket.ID.Hex(), "notifications", append(bucket.Notifications, event))
}

func (r *notificationRepository) Clear(ctx context.Context, userID string) error {
	bucket, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, store.Notifications, bucket.ID.Hex(), "notifications", []models.NotificationEvent{})
}

func (r *notificationRepository) SendToAdmins(ctx context.Context, event models.NotificationEvent) error {
	admins, err := r.users.GetAdmins(ctx)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if err := r.Add(ctx, admin.ID.Hex(), event); err != nil {
			return err
		}
	}
	return nil
}
