package service

import (
	"context"
	"fmt"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	promptRepo  repository.PromptRepository
	notifSvc    *NotificationService
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID   uint
	PromptID uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	promptRepo repository.PromptRepository,
	notifSvc *NotificationService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		promptRepo:  promptRepo,
		notifSvc:    notifSvc,
		isAdmin:     isAdmin,
	}
}

// CreateComment adds a comment or a reply. Threading is one level deep:
// a reply's parent must be a top-level comment on the same prompt.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	prompt, err := s.promptRepo.GetByID(ctx, in.PromptID, 0)
	if err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	var parent *models.Comment
	if in.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, models.NewValidationError("Parent comment not found")
		}
		if parent.PromptID != in.PromptID {
			return nil, models.NewValidationError("Parent comment belongs to another prompt")
		}
		if parent.ParentID != nil {
			return nil, models.NewValidationError("Replies cannot be nested further")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		PromptID: in.PromptID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		fromID := in.UserID
		link := fmt.Sprintf("/prompts/%d", prompt.ID)
		if parent != nil {
			_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
				UserID:     parent.UserID,
				FromUserID: &fromID,
				Type:       models.NotificationComment,
				Message:    "Someone replied to your comment",
				Link:       link,
			})
		}
		// The prompt author hears about every new comment except their own
		// and ones already covered by the reply notification above.
		if parent == nil || parent.UserID != prompt.UserID {
			_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
				UserID:     prompt.UserID,
				FromUserID: &fromID,
				Type:       models.NotificationComment,
				Message:    fmt.Sprintf("New comment on your prompt %q", prompt.Title),
				Link:       link,
			})
		}
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, promptID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.promptRepo.GetByID(ctx, promptID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPrompt(ctx, promptID, limit, offset)
}

func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment.Content = in.Content
	comment.IsEdited = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isAdmin == nil {
			return nil, models.NewForbiddenError("You can only delete your own comments")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}
