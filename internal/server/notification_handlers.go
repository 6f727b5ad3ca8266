package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Returns the 50 most
// recent notifications for the caller plus the unread count.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	notifications, err := s.notifService.List(ctx, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	unread, err := s.notifService.UnreadCount(ctx, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkNotificationsRead handles PUT /api/notifications with body
// {notification_ids: [...]} or {all: true}. The update predicate is scoped
// to the caller, so ids belonging to other users are never touched.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		NotificationIDs []uint `json:"notification_ids"`
		All             bool   `json:"all"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.notifService.MarkRead(ctx, service.BulkNotificationInput{
		UserID: userID,
		IDs:    req.NotificationIDs,
		All:    req.All,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "updated": updated})
}

// DeleteNotifications handles DELETE /api/notifications with the same body
// shape and recipient scoping as MarkNotificationsRead.
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		NotificationIDs []uint `json:"notification_ids"`
		All             bool   `json:"all"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deleted, err := s.notifService.Delete(ctx, service.BulkNotificationInput{
		UserID: userID,
		IDs:    req.NotificationIDs,
		All:    req.All,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "deleted": deleted})
}
