package food

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown food category")
	ErrDuplicateFood   = errors.New("duplicate food name in catalog")
	ErrInvalidEntry    = errors.New("invalid food entry")
)
