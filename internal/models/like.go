package models

import "time"

// Like represents a user's like on a prompt.
// The combination of UserID and PromptID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_prompt" json:"user_id"`
	PromptID  uint      `gorm:"not null;uniqueIndex:idx_user_prompt" json:"prompt_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Prompt Prompt `gorm:"foreignKey:PromptID" json:"-"`
}
