package application

import (
	"errors"
	"fmt"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrTenantRoleRequired  = errors.New("tenant role required")
	ErrNotPropertyOwner    = errors.New("not property owner")
	ErrNotApplicant        = errors.New("not the applicant")
	ErrPropertyUnavailable = errors.New("property not available")
	ErrOwnProperty         = errors.New("cannot apply to own property")
	ErrAlreadyApplied      = errors.New("already applied")
	ErrForeignDocument     = errors.New("document not owned by applicant")
	ErrInvalidTransition   = errors.New("invalid application transition")
	ErrCooldownActive      = errors.New("application cooldown active")
)

// CooldownError carries the remaining wait so callers can tell the
// tenant exactly when a retry becomes possible.
type CooldownError struct {
	DaysLeft int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("application cooldown active, retry in %d day(s)", e.DaysLeft)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
