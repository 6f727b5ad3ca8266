package service

import (
	"context"
	"errors"
	"testing"

	"prompthub/internal/models"
	"prompthub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promptRepoStub is a stub for repository.PromptRepository.
type promptRepoStub struct {
	createFn      func(context.Context, *models.Prompt) error
	getByIDFn     func(context.Context, uint, uint) (*models.Prompt, error)
	getBySlugFn   func(context.Context, string, uint) (*models.Prompt, error)
	listFn        func(context.Context, repository.PromptListOptions, uint) ([]*models.Prompt, error)
	searchFn      func(context.Context, string, int, int, uint) ([]*models.Prompt, error)
	updateFn      func(context.Context, *models.Prompt) error
	deleteFn      func(context.Context, uint) error
	incViewFn     func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) error
	unlikeFn      func(context.Context, uint, uint) error
	countByUserFn func(context.Context, uint) (int64, error)
	countFn       func(context.Context) (int64, error)
}

func (s *promptRepoStub) Create(ctx context.Context, p *models.Prompt) error {
	return s.createFn(ctx, p)
}
func (s *promptRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Prompt, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *promptRepoStub) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Prompt, error) {
	return s.getBySlugFn(ctx, slug, currentUserID)
}
func (s *promptRepoStub) List(ctx context.Context, opts repository.PromptListOptions, currentUserID uint) ([]*models.Prompt, error) {
	return s.listFn(ctx, opts, currentUserID)
}
func (s *promptRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Prompt, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *promptRepoStub) Update(ctx context.Context, p *models.Prompt) error {
	return s.updateFn(ctx, p)
}
func (s *promptRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *promptRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incViewFn(ctx, id)
}
func (s *promptRepoStub) IsLiked(ctx context.Context, userID, promptID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, promptID)
}
func (s *promptRepoStub) Like(ctx context.Context, userID, promptID uint) error {
	return s.likeFn(ctx, userID, promptID)
}
func (s *promptRepoStub) Unlike(ctx context.Context, userID, promptID uint) error {
	return s.unlikeFn(ctx, userID, promptID)
}
func (s *promptRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *promptRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPromptRepo() *promptRepoStub {
	return &promptRepoStub{
		createFn: func(_ context.Context, _ *models.Prompt) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Prompt, error) {
			return &models.Prompt{ID: id, IsPublic: true}, nil
		},
		getBySlugFn: func(_ context.Context, _ string, _ uint) (*models.Prompt, error) {
			return &models.Prompt{ID: 1, IsPublic: true}, nil
		},
		listFn: func(_ context.Context, _ repository.PromptListOptions, _ uint) ([]*models.Prompt, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Prompt, error) {
			return nil, nil
		},
		updateFn:      func(_ context.Context, _ *models.Prompt) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		incViewFn:     func(_ context.Context, _ uint) error { return nil },
		isLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:        func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		countByUserFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByPromptFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	listRepliesFn   func(context.Context, uint) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
	countByPromptFn func(context.Context, uint) (int64, error)
	countFn         func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPrompt(ctx context.Context, promptID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPromptFn(ctx, promptID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountByPrompt(ctx context.Context, promptID uint) (int64, error) {
	return s.countByPromptFn(ctx, promptID)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PromptID: 1}, nil
		},
		listByPromptFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countByPromptFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByIDWithCountsFn func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	deleteFn            func(context.Context, uint) error
	listFn              func(context.Context, int, int) ([]models.User, error)
	searchFn            func(context.Context, string, int, int) ([]models.User, error)
	countFn             func(context.Context) (int64, error)
	followFn            func(context.Context, uint, uint) error
	unfollowFn          func(context.Context, uint, uint) error
	isFollowingFn       func(context.Context, uint, uint) (bool, error)
	listFollowersFn     func(context.Context, uint, int, int) ([]models.UserSummary, error)
	listFollowingFn     func(context.Context, uint, int, int) ([]models.UserSummary, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithCounts(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDWithCountsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	return s.listFollowersFn(ctx, userID, limit, offset)
}
func (s *userRepoStub) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	return s.listFollowingFn(ctx, userID, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user", Status: models.StatusActive, Role: models.RoleUser}, nil
		},
		getByIDWithCountsFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		searchFn:        func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		followFn:        func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:      func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listFollowersFn: func(_ context.Context, _ uint, _, _ int) ([]models.UserSummary, error) { return nil, nil },
		listFollowingFn: func(_ context.Context, _ uint, _, _ int) ([]models.UserSummary, error) { return nil, nil },
	}
}

// notifRepoStub is a stub for repository.NotificationRepository.
type notifRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listRecentFn  func(context.Context, uint) ([]*models.Notification, error)
	markReadFn    func(context.Context, uint, []uint) (int64, error)
	markAllReadFn func(context.Context, uint) (int64, error)
	deleteFn      func(context.Context, uint, []uint) (int64, error)
	deleteAllFn   func(context.Context, uint) (int64, error)
	unreadCountFn func(context.Context, uint) (int64, error)
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) ListRecent(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.listRecentFn(ctx, userID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error) {
	return s.markReadFn(ctx, userID, ids)
}
func (s *notifRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}
func (s *notifRepoStub) Delete(ctx context.Context, userID uint, ids []uint) (int64, error) {
	return s.deleteFn(ctx, userID, ids)
}
func (s *notifRepoStub) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	return s.deleteAllFn(ctx, userID)
}
func (s *notifRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn:      func(_ context.Context, _ *models.Notification) error { return nil },
		listRecentFn:  func(_ context.Context, _ uint) ([]*models.Notification, error) { return nil, nil },
		markReadFn:    func(_ context.Context, _ uint, ids []uint) (int64, error) { return int64(len(ids)), nil },
		markAllReadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteFn:      func(_ context.Context, _ uint, ids []uint) (int64, error) { return int64(len(ids)), nil },
		deleteAllFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		unreadCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// modRepoStub is a stub for repository.ModerationRepository.
type modRepoStub struct {
	reportFn        func(context.Context, *models.ModerationItem) (*models.ModerationItem, error)
	getByIDFn       func(context.Context, uint) (*models.ModerationItem, error)
	listByStatusFn  func(context.Context, models.ModerationStatus, int, int) ([]*models.ModerationItem, error)
	resolveFn       func(context.Context, uint, models.ModerationStatus, uint) (*models.ModerationItem, error)
	countByStatusFn func(context.Context, models.ModerationStatus) (int64, error)
}

func (s *modRepoStub) Report(ctx context.Context, item *models.ModerationItem) (*models.ModerationItem, error) {
	return s.reportFn(ctx, item)
}
func (s *modRepoStub) GetByID(ctx context.Context, id uint) (*models.ModerationItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *modRepoStub) ListByStatus(ctx context.Context, status models.ModerationStatus, limit, offset int) ([]*models.ModerationItem, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *modRepoStub) Resolve(ctx context.Context, id uint, status models.ModerationStatus, reviewerID uint) (*models.ModerationItem, error) {
	return s.resolveFn(ctx, id, status, reviewerID)
}
func (s *modRepoStub) CountByStatus(ctx context.Context, status models.ModerationStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}

func noopModRepo() *modRepoStub {
	return &modRepoStub{
		reportFn: func(_ context.Context, item *models.ModerationItem) (*models.ModerationItem, error) {
			item.Status = models.ModerationPending
			item.ReportCount = 1
			return item, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.ModerationItem, error) {
			return &models.ModerationItem{ID: id, Status: models.ModerationPending}, nil
		},
		listByStatusFn: func(_ context.Context, _ models.ModerationStatus, _, _ int) ([]*models.ModerationItem, error) {
			return nil, nil
		},
		resolveFn: func(_ context.Context, id uint, status models.ModerationStatus, reviewerID uint) (*models.ModerationItem, error) {
			return &models.ModerationItem{ID: id, Status: status, ReviewedBy: &reviewerID}, nil
		},
		countByStatusFn: func(_ context.Context, _ models.ModerationStatus) (int64, error) { return 0, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
