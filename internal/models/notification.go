package models

import "time"

// NotificationType discriminates the kinds of notification a user can receive.
type NotificationType string

const (
	NotificationComment     NotificationType = "COMMENT"
	NotificationLike        NotificationType = "LIKE"
	NotificationFollow      NotificationType = "FOLLOW"
	NotificationMention     NotificationType = "MENTION"
	NotificationPromptShare NotificationType = "PROMPT_SHARE"
	NotificationSystem      NotificationType = "SYSTEM"
)

// Notification is a message delivered to exactly one recipient user.
// Bulk read/delete operations must always be scoped by UserID so a
// client can never affect another recipient's rows.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	FromUserID *uint            `json:"from_user_id,omitempty"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message    string           `gorm:"size:500;not null" json:"message"`
	Link       string           `gorm:"size:255" json:"link,omitempty"`
	IsRead     bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`

	User     User  `gorm:"foreignKey:UserID" json:"-"`
	FromUser *User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
}

// NotificationView is the list projection returned by the notifications API:
// the row itself plus a compact fromUser summary.
type NotificationView struct {
	ID        uint             `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	FromUser  *UserSummary     `json:"from_user,omitempty"`
}

// View converts the notification into its list projection.
func (n *Notification) View() NotificationView {
	v := NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.FromUser != nil {
		s := n.FromUser.Summary()
		v.FromUser = &s
	}
	return v
}
