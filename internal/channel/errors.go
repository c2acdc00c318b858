package channel

import "errors"

// Domain errors
var (
	ErrEmptyURL   = errors.New("channel url cannot be empty")
	ErrCommentURL = errors.New("channel url cannot start with '#'")
)
