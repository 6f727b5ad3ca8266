package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdminStats handles GET /api/admin/stats
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.modService.Stats(c.Context())
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(stats)
}

// GetAdminUsers handles GET /api/admin/users?q=&limit=&offset=
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(ctx, c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(users)
}

// UpdateAdminUser handles PUT /api/admin/users/:id with body {role} and/or
// {status}. Role changes and status changes go through the service so the
// allowed values and suspension notification are enforced in one place.
func (s *Server) UpdateAdminUser(c *fiber.Ctx) error {
	ctx := c.Context()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role   *models.UserRole   `json:"role"`
		Status *models.UserStatus `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Role == nil && req.Status == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("role or status is required"))
	}

	var user *models.User
	if req.Role != nil {
		user, err = s.userService.SetRole(ctx, targetID, *req.Role)
		if err != nil {
			return models.RespondError(c, err)
		}
	}
	if req.Status != nil {
		user, err = s.userService.SetStatus(ctx, targetID, *req.Status)
		if err != nil {
			return models.RespondError(c, err)
		}
	}

	return c.JSON(user)
}

// DeleteAdminUser handles DELETE /api/admin/users/:id. Admins cannot delete
// their own account through the console.
func (s *Server) DeleteAdminUser(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if targetID == adminID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Use account deletion for your own account"))
	}

	if err := s.userService.DeleteAccount(ctx, targetID); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetModerationQueue handles GET /api/admin/moderation?status=pending|approved|rejected
func (s *Server) GetModerationQueue(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 50)

	items, err := s.modService.ListQueue(ctx,
		models.ModerationStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(items)
}

// ApproveModerationItem handles PUT /api/admin/moderation/:id/approve
func (s *Server) ApproveModerationItem(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.modService.Approve(ctx, service.ResolveInput{
		ReviewerID: adminID,
		ItemID:     itemID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(item)
}

// RejectModerationItem handles PUT /api/admin/moderation/:id/reject. The
// flagged content is removed and its author notified.
func (s *Server) RejectModerationItem(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.modService.Reject(ctx, service.ResolveInput{
		ReviewerID: adminID,
		ItemID:     itemID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(item)
}
