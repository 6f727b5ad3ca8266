// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"prompthub/internal/models"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePrompt handles POST /api/prompts
func (s *Server) CreatePrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string                `json:"title"`
		Content     string                `json:"content"`
		Description string                `json:"description"`
		Category    models.PromptCategory `json:"category"`
		Tags        []string              `json:"tags"`
		Language    string                `json:"language"`
		IsPublic    *bool                 `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, err := s.promptService.CreatePrompt(ctx, service.CreatePromptInput{
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Language:    req.Language,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(prompt)
}

// GetPrompts handles GET /api/prompts
func (s *Server) GetPrompts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	authorID := c.QueryInt("author_id", 0)
	if authorID < 0 {
		authorID = 0
	}

	prompts, err := s.promptService.ListPrompts(ctx, service.ListPromptsInput{
		Category:      models.PromptCategory(c.Query("category")),
		Tag:           c.Query("tag"),
		AuthorID:      uint(authorID),
		Sort:          c.Query("sort"),
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompts)
}

// SearchPrompts handles GET /api/prompts/search?q=...
func (s *Server) SearchPrompts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 10)
	userID, _ := s.optionalUserID(c)

	prompts, err := s.promptService.SearchPrompts(ctx, c.Query("q"), page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompts)
}

// GetPrompt handles GET /api/prompts/:id
func (s *Server) GetPrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	prompt, err := s.promptService.GetPrompt(ctx, id, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompt)
}

// GetPromptBySlug handles GET /api/prompts/slug/:slug
func (s *Server) GetPromptBySlug(c *fiber.Ctx) error {
	ctx := c.Context()
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slug"))
	}
	userID, _ := s.optionalUserID(c)

	prompt, err := s.promptService.GetPromptBySlug(ctx, slug, userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompt)
}

// GetUserPrompts handles GET /api/users/:id/prompts
func (s *Server) GetUserPrompts(c *fiber.Ctx) error {
	ctx := c.Context()
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	currentUserID := c.Locals("userID").(uint)

	prompts, err := s.promptService.ListPrompts(ctx, service.ListPromptsInput{
		AuthorID:      authorID,
		Sort:          c.Query("sort"),
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompts)
}

// UpdatePrompt handles PATCH /api/prompts/:id. Only provided fields are
// persisted; absent keys leave the stored values untouched.
func (s *Server) UpdatePrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	promptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string                `json:"title"`
		Content     *string                `json:"content"`
		Description *string                `json:"description"`
		Category    *models.PromptCategory `json:"category"`
		Tags        []string               `json:"tags"`
		Language    *string                `json:"language"`
		IsPublic    *bool                  `json:"is_public"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, err := s.promptService.UpdatePrompt(ctx, service.UpdatePromptInput{
		UserID:      userID,
		PromptID:    promptID,
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Language:    req.Language,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompt)
}

// DeletePrompt handles DELETE /api/prompts/:id (owner or admin)
func (s *Server) DeletePrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	promptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.promptService.DeletePrompt(ctx, service.DeletePromptInput{
		UserID:   userID,
		PromptID: promptID,
	}); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// LikePrompt handles POST /api/prompts/:id/like
// This endpoint toggles the like status - if already liked, it unlikes; if not liked, it likes
func (s *Server) LikePrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	promptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, err := s.promptService.ToggleLike(ctx, userID, promptID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompt)
}

// UnlikePrompt handles DELETE /api/prompts/:id/like
func (s *Server) UnlikePrompt(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	promptID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, err := s.promptService.UnlikePrompt(ctx, userID, promptID)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(prompt)
}

// ReportPrompt handles POST /api/prompts/:id/report
func (s *Server) ReportPrompt(c *fiber.Ctx) error {
	return s.report(c, models.ModerationTargetPrompt)
}

// ReportComment handles POST /api/comments/:id/report
func (s *Server) ReportComment(c *fiber.Ctx) error {
	return s.report(c, models.ModerationTargetComment)
}

func (s *Server) report(c *fiber.Ctx, targetType models.ModerationTarget) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.modService.Report(ctx, service.ReportInput{
		ReporterID: userID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     req.Reason,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}
