package application

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// decidable reports whether a status transition is legal. Applications
// only ever move out of PENDING; every other state is terminal.
func (s Status) decidable(next Status) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusAccepted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// Active statuses block a second application for the same pair.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAccepted
}

type Application struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	PropertyID string    `gorm:"type:uuid;index;not null"`
	TenantID   string    `gorm:"type:uuid;index;not null"`
	Status     Status    `gorm:"type:varchar(16);not null"`
	Message    *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// DocumentLink shares an applicant document with the property owner for
// the lifetime of the application.
type DocumentLink struct {
	ApplicationID string `gorm:"type:uuid;primaryKey"`
	DocumentID    string `gorm:"type:uuid;primaryKey"`
}

type Actor struct {
	ID       string
	IsOwner  bool
	IsTenant bool
}

type CreateInput struct {
	PropertyID  string
	Message     string
	DocumentIDs []string
}

type CreateResult struct {
	Application   *Application
	DocumentCount int
}
