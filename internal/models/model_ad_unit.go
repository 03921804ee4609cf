package models

import "time"

// AdUnit is an advertising placement managed from the admin surface.
type AdUnit struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Placement string    `gorm:"column:placement;type:varchar(64);not null" json:"placement"`
	ImageURL  string    `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	TargetURL string    `gorm:"column:target_url;type:varchar(512)" json:"target_url"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdUnit) TableName() string {
	return "ad_unit"
}
