package lease

import "errors"

var (
	ErrInvalidInput             = errors.New("invalid lease input")
	ErrLeaseNotFound            = errors.New("lease not found")
	ErrNotPropertyOwner         = errors.New("not property owner")
	ErrOwnerRoleRequired        = errors.New("owner role required")
	ErrApplicationNotAccepted   = errors.New("application not accepted")
	ErrLeaseExists              = errors.New("active lease already exists for this property and tenant")
	ErrInvalidTransition        = errors.New("invalid lease transition")
	ErrMoveInInventoryRequired  = errors.New("move-in inventory confirmation required")
	ErrMoveOutInventoryRequired = errors.New("move-out inventory confirmation required")
)
