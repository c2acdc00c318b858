package library

import "errors"

// Domain errors
var (
	ErrInvalidPlaylistURL = errors.New("playlist url must be an absolute http(s) url")
	ErrPlaylistNotFound   = errors.New("saved playlist not found")
	ErrEmptyChannelID     = errors.New("channel id cannot be empty")
	ErrInvalidVolume      = errors.New("volume must be between 0 and 100")
	ErrInvalidSettings    = errors.New("invalid settings file")
)
