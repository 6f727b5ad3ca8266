package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompthub/internal/config"
	"prompthub/internal/models"
	"prompthub/internal/repository"
	"prompthub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPromptRepository is a mock of the PromptRepository interface
type MockPromptRepository struct {
	mock.Mock
}

func (m *MockPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Prompt, error) {
	args := m.Called(ctx, slug, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) List(ctx context.Context, opts repository.PromptListOptions, currentUserID uint) ([]*models.Prompt, error) {
	args := m.Called(ctx, opts, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Prompt, error) {
	args := m.Called(ctx, query, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prompt), args.Error(1)
}

func (m *MockPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	args := m.Called(ctx, prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromptRepository) IncrementViewCount(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromptRepository) IsLiked(ctx context.Context, userID, promptID uint) (bool, error) {
	args := m.Called(ctx, userID, promptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromptRepository) Like(ctx context.Context, userID, promptID uint) error {
	args := m.Called(ctx, userID, promptID)
	return args.Error(0)
}

func (m *MockPromptRepository) Unlike(ctx context.Context, userID, promptID uint) error {
	args := m.Called(ctx, userID, promptID)
	return args.Error(0)
}

func (m *MockPromptRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPromptRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newPromptTestApp(t *testing.T, promptRepo *MockPromptRepository, userID uint, isAdmin bool) *fiber.App {
	t.Helper()
	s := &Server{
		config: &config.Config{JWTSecret: "test_secret"},
		promptService: service.NewPromptService(promptRepo, nil, func(context.Context, uint) (bool, error) {
			return isAdmin, nil
		}),
	}
	app := fiber.New()
	app.Get("/prompts/:id", s.GetPrompt)
	app.Post("/prompts", authStub(userID), s.CreatePrompt)
	app.Patch("/prompts/:id", authStub(userID), s.UpdatePrompt)
	app.Delete("/prompts/:id", authStub(userID), s.DeletePrompt)
	app.Post("/prompts/:id/like", authStub(userID), s.LikePrompt)
	return app
}

func TestCreatePrompt(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Prompt")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Prompt).ID = 10
			}).Return(nil)
		promptRepo.On("GetByID", mock.Anything, uint(10), uint(7)).Return(&models.Prompt{
			ID: 10, Title: "Code review checklist", UserID: 7, IsPublic: true,
			User: models.User{ID: 7, Username: "bob"},
		}, nil)

		app := newPromptTestApp(t, promptRepo, 7, false)

		payload, _ := json.Marshal(map[string]any{
			"title":    "Code review checklist",
			"content":  "Review the following code for defects...",
			"category": "TECHNOLOGY",
			"tags":     []string{"Review", "review", "go"},
		})
		req := httptest.NewRequest(http.MethodPost, "/prompts", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var prompt models.Prompt
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&prompt))
		assert.Equal(t, uint(10), prompt.ID)
		assert.Equal(t, "Code review checklist", prompt.Title)
		promptRepo.AssertExpectations(t)
	})

	t.Run("Missing Title", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		app := newPromptTestApp(t, promptRepo, 7, false)

		payload, _ := json.Marshal(map[string]any{"content": "some content"})
		req := httptest.NewRequest(http.MethodPost, "/prompts", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		promptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Category", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		app := newPromptTestApp(t, promptRepo, 7, false)

		payload, _ := json.Marshal(map[string]any{
			"title": "x", "content": "y", "category": "astrology",
		})
		req := httptest.NewRequest(http.MethodPost, "/prompts", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPrompt(t *testing.T) {
	t.Run("Anonymous view counts", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(0)).Return(&models.Prompt{
			ID: 3, Title: "Summarizer", UserID: 9, IsPublic: true, ViewCount: 4,
		}, nil)
		promptRepo.On("IncrementViewCount", mock.Anything, uint(3)).Return(nil)

		app := newPromptTestApp(t, promptRepo, 0, false)

		req := httptest.NewRequest(http.MethodGet, "/prompts/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var prompt models.Prompt
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&prompt))
		assert.Equal(t, 5, prompt.ViewCount)
		promptRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Prompt", 99))

		app := newPromptTestApp(t, promptRepo, 0, false)

		req := httptest.NewRequest(http.MethodGet, "/prompts/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Private prompt hidden from anonymous", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(0)).Return(&models.Prompt{
			ID: 3, Title: "Secret", UserID: 9, IsPublic: false,
		}, nil)

		app := newPromptTestApp(t, promptRepo, 0, false)

		req := httptest.NewRequest(http.MethodGet, "/prompts/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		app := newPromptTestApp(t, promptRepo, 0, false)

		req := httptest.NewRequest(http.MethodGet, "/prompts/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdatePrompt(t *testing.T) {
	t.Run("Non-Owner Forbidden", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(&models.Prompt{
			ID: 3, Title: "Summarizer", UserID: 9, IsPublic: true,
		}, nil)

		app := newPromptTestApp(t, promptRepo, 7, false)

		payload, _ := json.Marshal(map[string]any{"title": "Hijacked"})
		req := httptest.NewRequest(http.MethodPatch, "/prompts/3", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		promptRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Owner Partial Update", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		stored := &models.Prompt{ID: 3, Title: "Old title", Content: "body", UserID: 7, IsPublic: true}
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(stored, nil)
		promptRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Prompt) bool {
			// untouched fields keep their stored values
			return p.Title == "New title" && p.Content == "body"
		})).Return(nil)

		app := newPromptTestApp(t, promptRepo, 7, false)

		payload, _ := json.Marshal(map[string]any{"title": "New title"})
		req := httptest.NewRequest(http.MethodPatch, "/prompts/3", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		promptRepo.AssertExpectations(t)
	})
}

func TestDeletePrompt(t *testing.T) {
	t.Run("Admin Can Delete", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(&models.Prompt{
			ID: 3, UserID: 9, IsPublic: true,
		}, nil)
		promptRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		app := newPromptTestApp(t, promptRepo, 7, true)

		req := httptest.NewRequest(http.MethodDelete, "/prompts/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		promptRepo.AssertExpectations(t)
	})

	t.Run("Non-Owner Forbidden", func(t *testing.T) {
		promptRepo := new(MockPromptRepository)
		promptRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(&models.Prompt{
			ID: 3, UserID: 9, IsPublic: true,
		}, nil)

		app := newPromptTestApp(t, promptRepo, 7, false)

		req := httptest.NewRequest(http.MethodDelete, "/prompts/3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		promptRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLikePrompt_Toggles(t *testing.T) {
	promptRepo := new(MockPromptRepository)
	promptRepo.On("GetByID", mock.Anything, uint(3), uint(7)).Return(&models.Prompt{
		ID: 3, UserID: 9, IsPublic: true,
	}, nil)
	promptRepo.On("IsLiked", mock.Anything, uint(7), uint(3)).Return(false, nil)
	promptRepo.On("Like", mock.Anything, uint(7), uint(3)).Return(nil)

	app := newPromptTestApp(t, promptRepo, 7, false)

	req := httptest.NewRequest(http.MethodPost, "/prompts/3/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	promptRepo.AssertExpectations(t)
}
