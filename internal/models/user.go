// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the authorization role of a user.
type UserRole string

const (
	// RoleUser is the default role for registered users.
	RoleUser UserRole = "USER"
	// RoleAdmin grants access to the admin console and moderation actions.
	RoleAdmin UserRole = "ADMIN"
)

// UserStatus defines the account lifecycle state of a user.
type UserStatus string

const (
	// StatusActive indicates a user in good standing.
	StatusActive UserStatus = "ACTIVE"
	// StatusSuspended indicates a user suspended by moderation.
	StatusSuspended UserStatus = "SUSPENDED"
	// StatusDeleted indicates a user who removed their account.
	StatusDeleted UserStatus = "DELETED"
)

// User represents a registered PromptHub account.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"size:30;unique;not null" json:"username"`
	Email       string     `gorm:"unique;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        UserRole   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Status      UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	DisplayName string     `gorm:"size:60" json:"display_name"`
	Bio         string     `gorm:"size:500" json:"bio"`
	AvatarURL   string     `json:"avatar_url"`
	// Aggregate counts are not persisted; computed at query time.
	PromptsCount   int `gorm:"->" json:"prompts_count"`
	FollowersCount int `gorm:"->" json:"followers_count"`
	FollowingCount int `gorm:"->" json:"following_count"`

	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Prompts []Prompt `gorm:"foreignKey:UserID" json:"prompts,omitempty"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the compact author projection embedded in prompts,
// comments and notifications.
type UserSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Summary returns the compact projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
