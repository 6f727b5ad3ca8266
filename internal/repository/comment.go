package repository

import (
	"context"
	"errors"

	"prompthub/internal/cache"
	"prompthub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPrompt(ctx context.Context, promptID uint, limit, offset int) ([]*models.Comment, error)
	ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	CountByPrompt(ctx context.Context, promptID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// applyReplyCount adds a subquery counting live replies for each comment.
func (r *commentRepository) applyReplyCount(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, " +
		"(SELECT COUNT(*) FROM comments AS replies WHERE replies.parent_id = comments.id AND replies.deleted_at IS NULL) as reply_count")
}

// invalidatePromptDetail drops the cached prompt detail after its comment
// set changes. The detail payload embeds the comments.
func (r *commentRepository) invalidatePromptDetail(ctx context.Context, promptID uint) {
	if cache.GetClient() == nil {
		return
	}
	var slug string
	r.db.WithContext(ctx).Model(&models.Prompt{}).Where("id = ?", promptID).Pluck("slug", &slug)
	cache.InvalidatePrompt(ctx, promptID, slug)
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	r.invalidatePromptDetail(ctx, comment.PromptID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.applyReplyCount(r.db.WithContext(ctx)).
		Preload("User").
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPrompt returns top-level comments for a prompt, newest first.
// Replies are fetched separately via ListReplies.
func (r *commentRepository) ListByPrompt(ctx context.Context, promptID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyReplyCount(r.db.WithContext(ctx)).
		Preload("User").
		Where("prompt_id = ? AND parent_id IS NULL", promptID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// ListReplies returns direct replies to a comment, oldest first so a thread
// reads in conversation order.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyReplyCount(r.db.WithContext(ctx)).
		Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	r.invalidatePromptDetail(ctx, comment.PromptID)
	return nil
}

// Delete soft-deletes a comment and its direct replies.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var promptID uint
	if cache.GetClient() != nil {
		r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Pluck("prompt_id", &promptID)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return err
	}
	if promptID != 0 {
		r.invalidatePromptDetail(ctx, promptID)
	}
	return nil
}

func (r *commentRepository) CountByPrompt(ctx context.Context, promptID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("prompt_id = ?", promptID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}
