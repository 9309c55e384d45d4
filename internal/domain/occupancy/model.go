package occupancy

import "time"

// LeaseTenant is one occupant's membership in a lease. Rows are never
// hard-deleted: a departure sets LeftAt so past receipts keep their
// share-period attribution.
type LeaseTenant struct {
	LeaseID   string     `gorm:"type:uuid;primaryKey"`
	TenantID  string     `gorm:"type:uuid;primaryKey"`
	IsPrimary bool       `gorm:"not null;default:false"`
	Share     int        `gorm:"not null;default:100"`
	JoinedAt  time.Time  `gorm:"not null"`
	LeftAt    *time.Time `gorm:"index"`
}

func (t LeaseTenant) Active() bool {
	return t.LeftAt == nil
}

type Actor struct {
	ID       string
	IsOwner  bool
	IsTenant bool
}

type AddInput struct {
	Email string
	// Share overrides the equal-split rebalance for the newcomer.
	Share *int
}

type UpdateInput struct {
	Share     *int
	IsPrimary *bool
}

// OccupantList is the read model: active rows primary-first, plus the
// advisory share total (not an enforced invariant, see ListOccupants).
type OccupantList struct {
	Occupants  []LeaseTenant
	TotalShare int
}
