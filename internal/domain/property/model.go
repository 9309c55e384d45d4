package property

import "time"

type Property struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	OwnerID     string    `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"not null"`
	Address     string    `gorm:"not null"`
	MonthlyRent float64   `gorm:"type:numeric(12,2);not null"`
	Charges     float64   `gorm:"type:numeric(12,2);not null;default:0"`
	Available   bool      `gorm:"not null;default:true"`
	OccupantID  *string   `gorm:"type:uuid"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CreateInput struct {
	OwnerID     string
	Title       string
	Address     string
	MonthlyRent float64
	Charges     float64
}
