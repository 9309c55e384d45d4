package lease

import "time"

type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
	StatusEnded   Status = "ENDED"
)

// canTransition encodes the only legal lifecycle edges. Retroactive
// issuance is the one path that skips PENDING, and it never goes
// through this check because the lease is born ACTIVE.
func (s Status) canTransition(next Status) bool {
	switch {
	case s == StatusPending && next == StatusActive:
		return true
	case s == StatusActive && next == StatusEnded:
		return true
	default:
		return false
	}
}

// Live reports whether the lease still binds the pair. A live lease
// blocks re-issuance and keeps the prior application terminal.
func (s Status) Live() bool {
	return s != StatusEnded
}

type Lease struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	PropertyID  string     `gorm:"type:uuid;index;not null"`
	TenantID    string     `gorm:"type:uuid;index;not null"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     *time.Time `gorm:"type:date"`
	MonthlyRent float64    `gorm:"type:numeric(12,2);not null"`
	Deposit     float64    `gorm:"type:numeric(12,2);not null"`
	Charges     float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Status      Status     `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

type InventoryKind string

const (
	InventoryMoveIn  InventoryKind = "move_in"
	InventoryMoveOut InventoryKind = "move_out"
)

// InventoryRecord is the recorded walkthrough confirmation gating
// activation (move-in) and termination (move-out).
type InventoryRecord struct {
	ID         string        `gorm:"type:uuid;primaryKey"`
	LeaseID    string        `gorm:"type:uuid;index;not null"`
	Kind       InventoryKind `gorm:"type:varchar(16);not null"`
	RecordedBy string        `gorm:"type:uuid;not null"`
	RecordedAt time.Time     `gorm:"not null"`
}

type Actor struct {
	ID       string
	IsOwner  bool
	IsTenant bool
}

type CreateInput struct {
	ApplicationID string
	StartDate     time.Time
	EndDate       *time.Time
	RentAmount    float64
	DepositAmount *float64
}

type IssueResult struct {
	Lease             *Lease
	ReceiptsGenerated int
	IsRetroactive     bool
}

// BackfillReceipt is a synthetic, already-confirmed payment record for
// one month of a retroactive lease. The repository maps it onto the
// payment ledger's receipt table.
type BackfillReceipt struct {
	LeaseID     string
	Month       int
	Year        int
	RentAmount  float64
	Charges     float64
	TotalAmount float64
	PaidAt      time.Time
}
