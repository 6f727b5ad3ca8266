package service

import (
	"context"
	"fmt"
	"strings"

	"prompthub/internal/cache"
	"prompthub/internal/models"
	"prompthub/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxTitleLen       = 255
	maxContentLen     = 50000
	maxDescriptionLen = 1000
	maxTags           = 10
	maxTagLen         = 30
)

type PromptService struct {
	promptRepo repository.PromptRepository
	notifSvc   *NotificationService
	isAdmin    func(ctx context.Context, userID uint) (bool, error)
}

type CreatePromptInput struct {
	UserID      uint
	Title       string
	Content     string
	Description string
	Category    models.PromptCategory
	Tags        []string
	Language    string
	IsPublic    *bool
}

type UpdatePromptInput struct {
	UserID      uint
	PromptID    uint
	Title       *string
	Content     *string
	Description *string
	Category    *models.PromptCategory
	Tags        []string
	Language    *string
	IsPublic    *bool
}

type DeletePromptInput struct {
	UserID   uint
	PromptID uint
}

type ListPromptsInput struct {
	Category      models.PromptCategory
	Tag           string
	AuthorID      uint
	Sort          string
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewPromptService(
	promptRepo repository.PromptRepository,
	notifSvc *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		notifSvc:   notifSvc,
		isAdmin:    isAdmin,
	}
}

func (s *PromptService) CreatePrompt(ctx context.Context, in CreatePromptInput) (*models.Prompt, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 255 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 1000 characters)")
	}

	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	language := in.Language
	if language == "" {
		language = "en"
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	prompt := &models.Prompt{
		Title:       strings.TrimSpace(in.Title),
		Slug:        s.makeSlug(in.Title),
		Content:     in.Content,
		Description: in.Description,
		Category:    category,
		Tags:        tags,
		Language:    language,
		IsPublic:    isPublic,
		UserID:      in.UserID,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	// Re-fetch so counts and the author come back populated
	return s.promptRepo.GetByID(ctx, prompt.ID, in.UserID)
}

// makeSlug derives a URL slug from the title with a short random suffix so
// two prompts with the same title never collide.
func (s *PromptService) makeSlug(title string) string {
	base := slug.Make(title)
	if len(base) > 200 {
		base = base[:200]
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

func normalizeTags(tags []string) ([]string, error) {
	if len(tags) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if len(t) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 30 characters)")
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// GetPrompt fetches a prompt by id and counts the view when someone other
// than the author looks at it. Private prompts are only visible to their
// author and admins.
func (s *PromptService) GetPrompt(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisible(ctx, prompt, currentUserID); err != nil {
		return nil, err
	}
	if currentUserID != prompt.UserID {
		if err := s.promptRepo.IncrementViewCount(ctx, id); err == nil {
			prompt.ViewCount++
		}
	}
	return prompt, nil
}

func (s *PromptService) GetPromptBySlug(ctx context.Context, slugValue string, currentUserID uint) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetBySlug(ctx, slugValue, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisible(ctx, prompt, currentUserID); err != nil {
		return nil, err
	}
	if currentUserID != prompt.UserID {
		if err := s.promptRepo.IncrementViewCount(ctx, prompt.ID); err == nil {
			prompt.ViewCount++
		}
	}
	return prompt, nil
}

func (s *PromptService) checkVisible(ctx context.Context, prompt *models.Prompt, currentUserID uint) error {
	if prompt.IsPublic || prompt.UserID == currentUserID {
		return nil
	}
	if s.isAdmin != nil && currentUserID != 0 {
		admin, err := s.isAdmin(ctx, currentUserID)
		if err == nil && admin {
			return nil
		}
	}
	return models.NewNotFoundError("Prompt", prompt.ID)
}

func (s *PromptService) ListPrompts(ctx context.Context, in ListPromptsInput) ([]*models.Prompt, error) {
	if in.Category != "" && !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}

	opts := repository.PromptListOptions{
		Category: in.Category,
		Tag:      in.Tag,
		UserID:   in.AuthorID,
		Sort:     in.Sort,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}

	// Anonymous first-page listings are served through the cache
	if in.CurrentUserID == 0 && in.AuthorID == 0 && in.Tag == "" && in.Offset == 0 && in.Limit <= 20 {
		key := cache.PromptListKey(string(in.Category), in.Sort, 0, in.Limit)
		return cache.Aside(ctx, key, cache.PromptListTTL, func() ([]*models.Prompt, error) {
			return s.promptRepo.List(ctx, opts, 0)
		})
	}

	prompts, err := s.promptRepo.List(ctx, opts, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	// Author listings show private prompts only to the author themselves
	if in.AuthorID != 0 && in.AuthorID != in.CurrentUserID {
		visible := prompts[:0]
		for _, p := range prompts {
			if p.IsPublic {
				visible = append(visible, p)
			}
		}
		prompts = visible
	}
	return prompts, nil
}

func (s *PromptService) SearchPrompts(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Prompt, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.promptRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *PromptService) UpdatePrompt(ctx context.Context, in UpdatePromptInput) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, in.PromptID, in.UserID)
	if err != nil {
		return nil, err
	}

	if prompt.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own prompts")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 255 characters)")
		}
		prompt.Title = title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		prompt.Content = *in.Content
	}
	if in.Description != nil {
		if len(*in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 1000 characters)")
		}
		prompt.Description = *in.Description
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, models.NewValidationError("Invalid category")
		}
		prompt.Category = *in.Category
	}
	if in.Tags != nil {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		prompt.Tags = tags
	}
	if in.Language != nil && *in.Language != "" {
		prompt.Language = *in.Language
	}
	if in.IsPublic != nil {
		prompt.IsPublic = *in.IsPublic
	}

	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return s.promptRepo.GetByID(ctx, prompt.ID, in.UserID)
}

func (s *PromptService) DeletePrompt(ctx context.Context, in DeletePromptInput) error {
	prompt, err := s.promptRepo.GetByID(ctx, in.PromptID, in.UserID)
	if err != nil {
		return err
	}

	if prompt.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own prompts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own prompts")
		}
	}

	return s.promptRepo.Delete(ctx, in.PromptID)
}

// ToggleLike flips the current user's like on a prompt and returns the
// refreshed prompt. Liking someone else's prompt notifies its author.
func (s *PromptService) ToggleLike(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisible(ctx, prompt, userID); err != nil {
		return nil, err
	}

	isLiked, err := s.promptRepo.IsLiked(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.promptRepo.Unlike(ctx, userID, promptID); err != nil {
			return nil, err
		}
	} else {
		if err := s.promptRepo.Like(ctx, userID, promptID); err != nil {
			return nil, err
		}
		if s.notifSvc != nil {
			fromID := userID
			_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
				UserID:     prompt.UserID,
				FromUserID: &fromID,
				Type:       models.NotificationLike,
				Message:    fmt.Sprintf("Someone liked your prompt %q", prompt.Title),
				Link:       fmt.Sprintf("/prompts/%d", prompt.ID),
			})
		}
	}

	return s.promptRepo.GetByID(ctx, promptID, userID)
}

func (s *PromptService) UnlikePrompt(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	if err := s.promptRepo.Unlike(ctx, userID, promptID); err != nil {
		return nil, err
	}
	return s.promptRepo.GetByID(ctx, promptID, userID)
}
