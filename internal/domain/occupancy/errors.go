package occupancy

import "errors"

var (
	ErrNotPropertyOwner     = errors.New("not property owner")
	ErrForbidden            = errors.New("not allowed to view occupants")
	ErrLeaseNotActive       = errors.New("lease is not active")
	ErrOccupantLimitReached = errors.New("occupant limit reached")
	ErrNoAccountForEmail    = errors.New("no account exists for this email")
	ErrAlreadyOccupant      = errors.New("already an occupant of this lease")
	ErrOccupantNotFound     = errors.New("occupant not found")
	ErrLastOccupant         = errors.New("cannot remove the last occupant, end the lease instead")
	ErrShareOutOfRange      = errors.New("share must be between 0 and 100")
	ErrCannotUnsetPrimary   = errors.New("cannot unset primary directly, promote another occupant")
)
