package models

import "time"

// ModerationStatus is the review state of a flagged content item.
// Valid transitions are pending -> approved and pending -> rejected;
// nothing transitions back to pending.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// ModerationTarget identifies the kind of content a report points at.
type ModerationTarget string

const (
	ModerationTargetPrompt  ModerationTarget = "prompt"
	ModerationTargetComment ModerationTarget = "comment"
)

// ModerationItem is a flagged prompt or comment awaiting an admin decision.
// Repeated reports against the same target increment ReportCount on the
// existing pending item instead of creating duplicates.
type ModerationItem struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	TargetType  ModerationTarget `gorm:"type:varchar(10);not null;index:idx_mod_target" json:"target_type"`
	TargetID    uint             `gorm:"not null;index:idx_mod_target" json:"target_id"`
	ReporterID  uint             `gorm:"not null" json:"reporter_id"`
	Reason      string           `gorm:"size:255" json:"reason"`
	Excerpt     string           `gorm:"size:500" json:"excerpt"`
	Status      ModerationStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	ReportCount int              `gorm:"not null;default:1" json:"report_count"`
	ReviewedBy  *uint            `json:"reviewed_by,omitempty"`

	Reporter User  `gorm:"foreignKey:ReporterID" json:"-"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
