package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"prompthub/internal/middleware"
	"prompthub/internal/models"
	"prompthub/internal/notifications"
	"prompthub/internal/repository"
)

// NotificationService persists notifications and pushes them to connected
// clients. Persistence is the source of truth; the Redis publish is best
// effort and a failure there never fails the triggering request.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	notifier  *notifications.Notifier
}

type CreateNotificationInput struct {
	UserID     uint
	FromUserID *uint
	Type       models.NotificationType
	Message    string
	Link       string
}

type BulkNotificationInput struct {
	UserID uint
	IDs    []uint
	All    bool
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Notify stores a notification and publishes it to the recipient's channel.
// Self-notifications are silently skipped.
func (s *NotificationService) Notify(ctx context.Context, in CreateNotificationInput) error {
	if in.FromUserID != nil && *in.FromUserID == in.UserID {
		return nil
	}
	if in.Message == "" {
		return models.NewValidationError("Notification message is required")
	}

	n := &models.Notification{
		UserID:     in.UserID,
		FromUserID: in.FromUserID,
		Type:       in.Type,
		Message:    in.Message,
		Link:       in.Link,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return err
	}
	middleware.NotificationsPublished.WithLabelValues(string(in.Type)).Inc()

	if in.FromUserID != nil {
		if from, err := s.userRepo.GetByID(ctx, *in.FromUserID); err == nil {
			n.FromUser = from
		}
	}

	s.publish(ctx, n)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, n *models.Notification) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(n.View())
	if err != nil {
		return
	}
	if err := s.notifier.PublishUser(ctx, n.UserID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "notification publish failed",
			slog.Any("recipient", n.UserID),
			slog.String("error", err.Error()),
		)
	}
}

// Broadcast sends a system notification to every connected client without
// persisting per-user rows.
func (s *NotificationService) Broadcast(ctx context.Context, message string) error {
	if message == "" {
		return models.NewValidationError("Broadcast message is required")
	}
	if s.notifier == nil {
		return nil
	}
	payload, err := json.Marshal(models.NotificationView{
		Type:    models.NotificationSystem,
		Message: message,
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	middleware.NotificationsPublished.WithLabelValues(string(models.NotificationSystem)).Inc()
	return s.notifier.PublishBroadcast(ctx, string(payload))
}

// List returns the recipient's most recent notifications as API projections.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.NotificationView, error) {
	rows, err := s.notifRepo.ListRecent(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.NotificationView, 0, len(rows))
	for _, n := range rows {
		views = append(views, n.View())
	}
	return views, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.UnreadCount(ctx, userID)
}

// MarkRead marks the given notification ids (or all unread when All is set)
// as read for the recipient. Returns the number of rows updated.
func (s *NotificationService) MarkRead(ctx context.Context, in BulkNotificationInput) (int64, error) {
	if in.All {
		return s.notifRepo.MarkAllRead(ctx, in.UserID)
	}
	if len(in.IDs) == 0 {
		return 0, models.NewValidationError("notification_ids is required")
	}
	return s.notifRepo.MarkRead(ctx, in.UserID, in.IDs)
}

// Delete removes the given notification ids (or all when All is set) for the
// recipient. Returns the number of rows deleted.
func (s *NotificationService) Delete(ctx context.Context, in BulkNotificationInput) (int64, error) {
	if in.All {
		return s.notifRepo.DeleteAll(ctx, in.UserID)
	}
	if len(in.IDs) == 0 {
		return 0, models.NewValidationError("notification_ids is required")
	}
	return s.notifRepo.Delete(ctx, in.UserID, in.IDs)
}
