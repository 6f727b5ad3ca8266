package service

import (
	"context"
	"fmt"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

const maxReportReasonLen = 255

// AdminStats aggregates counters for the admin dashboard.
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalPrompts     int64 `json:"total_prompts"`
	TotalComments    int64 `json:"total_comments"`
	PendingReports   int64 `json:"pending_reports"`
	ResolvedApproved int64 `json:"resolved_approved"`
	ResolvedRejected int64 `json:"resolved_rejected"`
}

// ModerationService implements content reporting and the admin review queue.
type ModerationService struct {
	modRepo     repository.ModerationRepository
	promptRepo  repository.PromptRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	notifSvc    *NotificationService
}

type ReportInput struct {
	ReporterID uint
	TargetType models.ModerationTarget
	TargetID   uint
	Reason     string
}

type ResolveInput struct {
	ReviewerID uint
	ItemID     uint
}

func NewModerationService(
	modRepo repository.ModerationRepository,
	promptRepo repository.PromptRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notifSvc *NotificationService,
) *ModerationService {
	return &ModerationService{
		modRepo:     modRepo,
		promptRepo:  promptRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
	}
}

// Report files a user report against a prompt or comment. The flagged
// content must exist; its opening text is captured as an excerpt so
// reviewers can triage without opening every item.
func (s *ModerationService) Report(ctx context.Context, in ReportInput) (*models.ModerationItem, error) {
	if in.Reason == "" {
		return nil, models.NewValidationError("Reason is required")
	}
	if len(in.Reason) > maxReportReasonLen {
		return nil, models.NewValidationError("Reason too long (max 255 characters)")
	}

	var excerpt string
	switch in.TargetType {
	case models.ModerationTargetPrompt:
		prompt, err := s.promptRepo.GetByID(ctx, in.TargetID, 0)
		if err != nil {
			return nil, err
		}
		excerpt = truncate(prompt.Title+": "+prompt.Content, 500)
	case models.ModerationTargetComment:
		comment, err := s.commentRepo.GetByID(ctx, in.TargetID)
		if err != nil {
			return nil, err
		}
		excerpt = truncate(comment.Content, 500)
	default:
		return nil, models.NewValidationError("Invalid target type")
	}

	return s.modRepo.Report(ctx, &models.ModerationItem{
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		ReporterID: in.ReporterID,
		Reason:     in.Reason,
		Excerpt:    excerpt,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ListQueue returns moderation items filtered by status. An empty status
// returns everything, newest first.
func (s *ModerationService) ListQueue(ctx context.Context, status models.ModerationStatus, limit, offset int) ([]*models.ModerationItem, error) {
	switch status {
	case "", models.ModerationPending, models.ModerationApproved, models.ModerationRejected:
	default:
		return nil, models.NewValidationError("Invalid status filter")
	}
	return s.modRepo.ListByStatus(ctx, status, limit, offset)
}

// Approve clears a pending report: the content stays up.
func (s *ModerationService) Approve(ctx context.Context, in ResolveInput) (*models.ModerationItem, error) {
	return s.modRepo.Resolve(ctx, in.ItemID, models.ModerationApproved, in.ReviewerID)
}

// Reject upholds a pending report: the flagged content is removed and its
// author is told why.
func (s *ModerationService) Reject(ctx context.Context, in ResolveInput) (*models.ModerationItem, error) {
	item, err := s.modRepo.Resolve(ctx, in.ItemID, models.ModerationRejected, in.ReviewerID)
	if err != nil {
		return nil, err
	}

	switch item.TargetType {
	case models.ModerationTargetPrompt:
		prompt, err := s.promptRepo.GetByID(ctx, item.TargetID, 0)
		if err != nil {
			// Already gone; the queue decision still stands.
			return item, nil
		}
		if err := s.promptRepo.Delete(ctx, item.TargetID); err != nil {
			return nil, err
		}
		s.notifyRemoval(ctx, prompt.UserID, fmt.Sprintf("Your prompt %q was removed by a moderator", prompt.Title))
	case models.ModerationTargetComment:
		comment, err := s.commentRepo.GetByID(ctx, item.TargetID)
		if err != nil {
			return item, nil
		}
		if err := s.commentRepo.Delete(ctx, item.TargetID); err != nil {
			return nil, err
		}
		s.notifyRemoval(ctx, comment.UserID, "One of your comments was removed by a moderator")
	}

	return item, nil
}

func (s *ModerationService) notifyRemoval(ctx context.Context, userID uint, message string) {
	if s.notifSvc == nil {
		return
	}
	_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
		UserID:  userID,
		Type:    models.NotificationSystem,
		Message: message,
	})
}

// Stats returns the admin dashboard counters.
func (s *ModerationService) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalPrompts, err = s.promptRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = s.commentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReports, err = s.modRepo.CountByStatus(ctx, models.ModerationPending); err != nil {
		return nil, err
	}
	if stats.ResolvedApproved, err = s.modRepo.CountByStatus(ctx, models.ModerationApproved); err != nil {
		return nil, err
	}
	if stats.ResolvedRejected, err = s.modRepo.CountByStatus(ctx, models.ModerationRejected); err != nil {
		return nil, err
	}
	return stats, nil
}
