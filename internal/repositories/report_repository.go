package repositories

import (
	"context"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

// ReportRepository maintains the moderation report queue.
type ReportRepository interface {
	Add(ctx context.Context, report *models.Report) (string, error)
	GetAll(ctx context.Context) ([]models.Report, error)
	// RemoveByTarget prunes every report referencing the removed content.
	RemoveByTarget(ctx context.Context, targetID string) (int64, error)
}

type reportRepository struct {
	store store.Store
}

// NewReportRepository creates a store-backed ReportRepository.
func NewReportRepository(s store.Store) ReportRepository {
	return &reportRepository{store: s}
}

func (r *reportRepository) Add(ctx context.Context, report *models.Report) (string, error) {
	return r.store.Add(ctx, store.Reports, report)
}

func (r *reportRepository) GetAll(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.store.GetAll(ctx, store.Reports, store.Filter{}, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) RemoveByTarget(ctx context.Context, targetID string) (int64, error) {
	return r.store.Remove(ctx, store.Reports, store.Filter{"target.id": targetID})
}
