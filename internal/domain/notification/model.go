package notification

import "time"

type Notification struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	UserID    string     `gorm:"type:uuid;index;not null"`
	Type      string     `gorm:"size:64;not null"`
	Title     string     `gorm:"not null"`
	Message   string     `gorm:"not null"`
	Link      *string    `gorm:"type:text"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
