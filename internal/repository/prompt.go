// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"prompthub/internal/cache"
	"prompthub/internal/models"

	"gorm.io/gorm"
)

// PromptListOptions carries filtering and pagination for prompt listings.
type PromptListOptions struct {
	Category models.PromptCategory
	Tag      string
	UserID   uint // filter by author, 0 for all
	Sort     string
	Limit    int
	Offset   int
}

// PromptRepository defines the interface for prompt data operations
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error)
	GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Prompt, error)
	List(ctx context.Context, opts PromptListOptions, currentUserID uint) ([]*models.Prompt, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Prompt, error)
	Update(ctx context.Context, prompt *models.Prompt) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, promptID uint) (bool, error)
	Like(ctx context.Context, userID, promptID uint) error
	Unlike(ctx context.Context, userID, promptID uint) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	err := r.db.WithContext(ctx).Create(prompt).Error
	if err == nil {
		cache.InvalidatePromptLists(ctx)
	}
	return err
}

func (r *promptRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error) {
	if currentUserID == 0 {
		return cache.Aside(ctx, cache.PromptKey(id), cache.PromptTTL, func() (*models.Prompt, error) {
			return r.fetchOne(ctx, 0, "prompts.id = ?", id)
		})
	}
	return r.fetchOne(ctx, currentUserID, "prompts.id = ?", id)
}

func (r *promptRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Prompt, error) {
	if currentUserID == 0 {
		return cache.Aside(ctx, cache.PromptSlugKey(slug), cache.PromptTTL, func() (*models.Prompt, error) {
			return r.fetchOne(ctx, 0, "prompts.slug = ?", slug)
		})
	}
	return r.fetchOne(ctx, currentUserID, "prompts.slug = ?", slug)
}

func (r *promptRepository) fetchOne(ctx context.Context, currentUserID uint, cond string, arg any) (*models.Prompt, error) {
	var prompt models.Prompt
	err := r.applyPromptDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		Preload("Likes").
		Where(cond, arg).
		First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Prompt", arg)
		}
		return nil, models.NewInternalError(err)
	}
	return &prompt, nil
}

func (r *promptRepository) List(ctx context.Context, opts PromptListOptions, currentUserID uint) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	base := r.applyPromptDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User")

	if opts.UserID != 0 {
		base = base.Where("prompts.user_id = ?", opts.UserID)
	} else {
		base = base.Where("prompts.is_public = ?", true)
	}
	if opts.Category != "" {
		base = base.Where("prompts.category = ?", opts.Category)
	}
	if opts.Tag != "" {
		// Tags are stored as a JSON array; a substring match on the quoted
		// tag is precise enough for filtering.
		base = base.Where("prompts.tags::text LIKE ?", "%\""+opts.Tag+"\"%")
	}

	err := r.applySort(base, opts.Sort).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// applySort appends the ORDER BY (and optional WHERE) clause for the requested sort type.
// likes_count and comments_count are SELECT aliases from applyPromptDetails; PostgreSQL
// allows referencing them in ORDER BY within the same query level.
func (r *promptRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "top":
		return db.Order("likes_count DESC, created_at DESC")
	case "trending":
		return db.
			Where("prompts.created_at > NOW() - INTERVAL '48 hours'").
			Order("(likes_count + comments_count * 2) DESC")
	case "views":
		return db.Order("view_count DESC, created_at DESC")
	default: // "new" and anything unrecognized
		return db.Order("created_at DESC")
	}
}

func (r *promptRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	like := "%" + query + "%"
	err := r.applyPromptDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("prompts.is_public = ?", true).
		Where("title ILIKE ? OR description ILIKE ? OR content ILIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// applyPromptDetails adds subqueries to fetch counts and liked status in a single query.
func (r *promptRepository) applyPromptDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "prompts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.prompt_id = prompts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.prompt_id = prompts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.prompt_id = prompts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *promptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Save(prompt).Error; err != nil {
		return err
	}
	cache.InvalidatePrompt(ctx, prompt.ID, prompt.Slug)
	cache.InvalidatePromptLists(ctx)
	return nil
}

// Delete soft-deletes the prompt and removes its comments and likes in one
// transaction so a deleted prompt never leaves orphaned children behind.
func (r *promptRepository) Delete(ctx context.Context, id uint) error {
	var slug string
	r.db.WithContext(ctx).Model(&models.Prompt{}).Where("id = ?", id).Pluck("slug", &slug)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("prompt_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Prompt{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePrompt(ctx, id, slug)
	cache.InvalidatePromptLists(ctx)
	return nil
}

func (r *promptRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// invalidateDetail drops both cached copies of a prompt detail. The payload
// embeds likes and comments, so any change to those invalidates it.
func (r *promptRepository) invalidateDetail(ctx context.Context, promptID uint) {
	if cache.GetClient() == nil {
		return
	}
	var slug string
	r.db.WithContext(ctx).Model(&models.Prompt{}).Where("id = ?", promptID).Pluck("slug", &slug)
	cache.InvalidatePrompt(ctx, promptID, slug)
}

func (r *promptRepository) IsLiked(ctx context.Context, userID, promptID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *promptRepository) Like(ctx context.Context, userID, promptID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING to handle race conditions
	// This is atomic and prevents duplicate key errors
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, prompt_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, prompt_id) DO NOTHING`,
		userID, promptID,
	)
	if result.Error == nil {
		r.invalidateDetail(ctx, promptID)
	}
	return result.Error
}

func (r *promptRepository) Unlike(ctx context.Context, userID, promptID uint) error {
	// Hard delete the like record (not soft delete)
	err := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND prompt_id = ?", userID, promptID).Delete(&models.Like{}).Error
	if err == nil {
		r.invalidateDetail(ctx, promptID)
	}
	return err
}

func (r *promptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Prompt{}).Count(&count).Error
	return count, err
}

func (r *promptRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
