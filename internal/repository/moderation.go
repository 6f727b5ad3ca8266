package repository

import (
	"context"
	"errors"

	"prompthub/internal/models"

	"gorm.io/gorm"
)

// ModerationRepository defines persistence operations for the moderation queue.
type ModerationRepository interface {
	Report(ctx context.Context, item *models.ModerationItem) (*models.ModerationItem, error)
	GetByID(ctx context.Context, id uint) (*models.ModerationItem, error)
	ListByStatus(ctx context.Context, status models.ModerationStatus, limit, offset int) ([]*models.ModerationItem, error)
	Resolve(ctx context.Context, id uint, status models.ModerationStatus, reviewerID uint) (*models.ModerationItem, error)
	CountByStatus(ctx context.Context, status models.ModerationStatus) (int64, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository creates a new ModerationRepository
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

// Report files a report against a target. If a pending item for the same
// target already exists, its report count is incremented instead of creating
// a duplicate queue entry.
func (r *moderationRepository) Report(ctx context.Context, item *models.ModerationItem) (*models.ModerationItem, error) {
	var out *models.ModerationItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ModerationItem
		err := tx.Where("target_type = ? AND target_id = ? AND status = ?",
			item.TargetType, item.TargetID, models.ModerationPending).
			First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Model(&existing).
				UpdateColumn("report_count", gorm.Expr("report_count + 1")).Error; err != nil {
				return err
			}
			existing.ReportCount++
			out = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item.Status = models.ModerationPending
			item.ReportCount = 1
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			out = item
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func (r *moderationRepository) GetByID(ctx context.Context, id uint) (*models.ModerationItem, error) {
	var item models.ModerationItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("ModerationItem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *moderationRepository) ListByStatus(ctx context.Context, status models.ModerationStatus, limit, offset int) ([]*models.ModerationItem, error) {
	var items []*models.ModerationItem
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// Resolve moves a pending item to approved or rejected. The status predicate
// in the UPDATE makes the transition race-safe: a second reviewer's decision
// matches zero rows and surfaces as a conflict.
func (r *moderationRepository) Resolve(ctx context.Context, id uint, status models.ModerationStatus, reviewerID uint) (*models.ModerationItem, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ModerationItem{}).
		Where("id = ? AND status = ?", id, models.ModerationPending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewerID,
		})
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, models.NewConflictError("moderation item is not pending")
	}
	return r.GetByID(ctx, id)
}

func (r *moderationRepository) CountByStatus(ctx context.Context, status models.ModerationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ModerationItem{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
