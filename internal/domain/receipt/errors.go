package receipt

import "errors"

var (
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrReceiptExists      = errors.New("receipt already exists for this period")
	ErrMonthOutOfRange    = errors.New("month outside the lease period")
	ErrInvalidPeriod      = errors.New("invalid month or year")
	ErrNotPropertyOwner   = errors.New("not property owner")
	ErrNotOccupant        = errors.New("not an occupant of this lease")
	ErrTenantRoleRequired = errors.New("tenant role required")
	ErrLeaseNotActive     = errors.New("lease is not active")
	ErrAlreadyConfirmed   = errors.New("receipt already confirmed")
)
