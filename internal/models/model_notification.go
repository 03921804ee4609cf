package models

import "time"

// Notification is a user-visible message, currently produced on first badge
// awards and admin point grants.
type Notification struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	Kind      string    `gorm:"column:kind;type:varchar(64);not null" json:"kind"`
	Message   string    `gorm:"column:message;type:varchar(255);not null" json:"message"`
	Read      bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}
