package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a prompt. A comment may reply to
// another comment on the same prompt via ParentID (one level of threading
// is enforced at the service layer; storage allows arbitrary depth).
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	PromptID uint   `gorm:"not null;index" json:"prompt_id"`
	ParentID *uint  `gorm:"index" json:"parent_id,omitempty"`
	IsEdited bool   `gorm:"not null;default:false" json:"is_edited"`

	User   User     `gorm:"foreignKey:UserID" json:"user"`
	Prompt Prompt   `gorm:"foreignKey:PromptID" json:"prompt,omitempty"`
	Parent *Comment `gorm:"foreignKey:ParentID" json:"-"`

	// ReplyCount is not persisted; computed at query time.
	ReplyCount int `gorm:"->" json:"reply_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
