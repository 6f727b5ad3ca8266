package service

import (
	"context"
	"fmt"

	"prompthub/internal/models"
	"prompthub/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	notifSvc *NotificationService
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}

func NewUserService(userRepo repository.UserRepository, notifSvc *NotificationService) *UserService {
	return &UserService{userRepo: userRepo, notifSvc: notifSvc}
}

// ListUsers pages through accounts, optionally filtered by a username or
// email substring.
func (s *UserService) ListUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if query != "" {
		return s.userRepo.Search(ctx, query, limit, offset)
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns the public profile with prompt and follow counts.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithCounts(ctx, id)
}

// UpdateProfile updates the caller's own profile fields. Nil pointers leave
// the corresponding field untouched.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxDisplayNameLen = 60

	if in.DisplayName != nil {
		if len(*in.DisplayName) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 60 characters)")
		}
		user.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByIDWithCounts(ctx, user.ID)
}

// DeleteAccount soft-deletes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Status = models.StatusDeleted
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// FollowUser makes followerID follow followeeID and notifies the followee.
// Following yourself or a missing user is rejected; repeat follows are no-ops.
func (s *UserService) FollowUser(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	already, err := s.userRepo.IsFollowing(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Follow(ctx, followerID, followeeID); err != nil {
		return err
	}

	if !already && s.notifSvc != nil {
		fromID := followerID
		_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
			UserID:     followeeID,
			FromUserID: &fromID,
			Type:       models.NotificationFollow,
			Message:    "You have a new follower",
			Link:       fmt.Sprintf("/users/%d", followerID),
		})
	}
	return nil
}

func (s *UserService) UnfollowUser(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	return s.userRepo.Unfollow(ctx, followerID, followeeID)
}

func (s *UserService) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowers(ctx, userID, limit, offset)
}

func (s *UserService) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowing(ctx, userID, limit, offset)
}

// SetRole promotes or demotes a user. Admin console only.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role models.UserRole) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, models.NewValidationError("Invalid role")
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetStatus suspends or reactivates a user. Admin console only.
func (s *UserService) SetStatus(ctx context.Context, targetID uint, status models.UserStatus) (*models.User, error) {
	if status != models.StatusActive && status != models.StatusSuspended {
		return nil, models.NewValidationError("Invalid status")
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if status == models.StatusSuspended && s.notifSvc != nil {
		_ = s.notifSvc.Notify(ctx, CreateNotificationInput{
			UserID:  targetID,
			Type:    models.NotificationSystem,
			Message: "Your account has been suspended by a moderator",
		})
	}
	return user, nil
}
