package service

import (
	"context"
	"strings"
	"testing"

	"prompthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("nil pointers leave fields untouched", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, DisplayName: "Old Name", Bio: "old bio"}, nil
		}
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo, nil)

		bio := "new bio"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &bio})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "new bio", saved.Bio)
		assert.Equal(t, "Old Name", saved.DisplayName)
	})

	t.Run("bio too long", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), nil)
		bio := strings.Repeat("x", 501)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Bio: &bio})
		assertValidationError(t, err)
	})
}

func TestUserService_FollowUser(t *testing.T) {
	t.Parallel()

	t.Run("cannot follow yourself", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), nil)
		assertValidationError(t, svc.FollowUser(context.Background(), 1, 1))
	})

	t.Run("first follow notifies followee", func(t *testing.T) {
		t.Parallel()
		var notified *models.Notification
		notifRepo := noopNotifRepo()
		notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
			notified = n
			return nil
		}
		svc := NewUserService(noopUserRepo(), NewNotificationService(notifRepo, noopUserRepo(), nil))

		require.NoError(t, svc.FollowUser(context.Background(), 1, 2))
		require.NotNil(t, notified)
		assert.Equal(t, uint(2), notified.UserID)
		assert.Equal(t, models.NotificationFollow, notified.Type)
	})

	t.Run("repeat follow stays silent", func(t *testing.T) {
		t.Parallel()
		notifRepo := noopNotifRepo()
		notifRepo.createFn = func(_ context.Context, _ *models.Notification) error {
			t.Fatal("repeat follow must not notify again")
			return nil
		}
		repo := noopUserRepo()
		repo.isFollowingFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewUserService(repo, NewNotificationService(notifRepo, noopUserRepo(), nil))

		assert.NoError(t, svc.FollowUser(context.Background(), 1, 2))
	})
}

func TestUserService_SetRole(t *testing.T) {
	t.Parallel()

	t.Run("promote to admin", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), nil)
		user, err := svc.SetRole(context.Background(), 2, models.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), nil)
		_, err := svc.SetRole(context.Background(), 2, "SUPERUSER")
		assertValidationError(t, err)
	})
}

func TestUserService_SetStatus_SuspendNotifies(t *testing.T) {
	t.Parallel()

	var notified *models.Notification
	notifRepo := noopNotifRepo()
	notifRepo.createFn = func(_ context.Context, n *models.Notification) error {
		notified = n
		return nil
	}
	svc := NewUserService(noopUserRepo(), NewNotificationService(notifRepo, noopUserRepo(), nil))

	user, err := svc.SetStatus(context.Background(), 2, models.StatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, user.Status)
	require.NotNil(t, notified)
	assert.Equal(t, models.NotificationSystem, notified.Type)
}

func TestUserService_SetStatus_DeletedRejected(t *testing.T) {
	t.Parallel()
	svc := NewUserService(noopUserRepo(), nil)
	_, err := svc.SetStatus(context.Background(), 2, models.StatusDeleted)
	assertValidationError(t, err)
}
