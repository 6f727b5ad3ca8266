package models

import (
	"time"

	"gorm.io/gorm"
)

// PromptCategory classifies a prompt for browsing and filtering.
type PromptCategory string

const (
	CategoryAI         PromptCategory = "AI"
	CategoryCreative   PromptCategory = "CREATIVE"
	CategoryBusiness   PromptCategory = "BUSINESS"
	CategoryEducation  PromptCategory = "EDUCATION"
	CategoryTechnology PromptCategory = "TECHNOLOGY"
	CategoryOther      PromptCategory = "OTHER"
)

// ValidCategory reports whether c is one of the known prompt categories.
func ValidCategory(c PromptCategory) bool {
	switch c {
	case CategoryAI, CategoryCreative, CategoryBusiness, CategoryEducation,
		CategoryTechnology, CategoryOther:
		return true
	}
	return false
}

// Prompt represents a user-authored unit of shareable AI-prompt text,
// the core content entity of the application.
type Prompt struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null;index" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex" json:"slug"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Description string         `gorm:"type:text" json:"description"`
	Category    PromptCategory `gorm:"type:varchar(20);not null;default:'OTHER';index" json:"category"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	Language    string         `gorm:"size:50;default:'en'" json:"language"`
	IsPublic    bool           `gorm:"not null;default:true" json:"is_public"`
	ViewCount   int            `gorm:"not null;default:0" json:"view_count"`

	// UserID is the owning author; immutable after creation.
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this prompt (computed).
	Liked bool `gorm:"->" json:"liked"`

	Comments []Comment `gorm:"foreignKey:PromptID" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PromptID" json:"likes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
