package chat

import "errors"

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrInvalidUserID = errors.New("message must belong to a user")
)
