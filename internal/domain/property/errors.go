package property

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid property input")
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("not property owner")
)
