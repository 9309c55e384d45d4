package receipt

import "time"

type Status string

const (
	StatusDeclared  Status = "DECLARED"
	StatusConfirmed Status = "CONFIRMED"
)

// Receipt is one month of rent on one lease. The (lease, month, year)
// triple is unique: a period is declared at most once, then confirmed.
type Receipt struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	LeaseID     string     `gorm:"type:uuid;not null;uniqueIndex:idx_receipts_lease_period"`
	Month       int        `gorm:"not null;uniqueIndex:idx_receipts_lease_period"`
	Year        int        `gorm:"not null;uniqueIndex:idx_receipts_lease_period"`
	RentAmount  float64    `gorm:"type:numeric(12,2);not null"`
	Charges     float64    `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount float64    `gorm:"type:numeric(12,2);not null"`
	Status      Status     `gorm:"type:varchar(16);not null"`
	DeclaredAt  time.Time  `gorm:"not null"`
	PaidAt      *time.Time
}

type Actor struct {
	ID       string
	IsOwner  bool
	IsTenant bool
}

type PeriodInput struct {
	LeaseID string
	Month   int
	Year    int
}
