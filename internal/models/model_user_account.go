package models

import "time"

// UserAccount is the local mirror of an externally-authenticated identity.
// Rows are created lazily on the first authenticated request; identity
// itself (credentials, sessions) lives with the auth provider.
type UserAccount struct {
	ID        string     `gorm:"column:id;type:varchar(64);primary_key" json:"id"`
	Email     string     `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	Banned    bool       `gorm:"column:banned;not null;default:false" json:"banned"`
	BannedAt  *time.Time `gorm:"column:banned_at;default:null" json:"banned_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserAccount) TableName() string {
	return "user_account"
}
