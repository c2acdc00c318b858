package epg

import "errors"

// Domain errors for EPG operations.
var (
	// Program validation errors
	ErrEmptyChannelID = errors.New("epg program channel id cannot be empty")
	ErrInvalidRange   = errors.New("epg program ends before it starts")

	// XMLTV errors
	ErrInvalidTime      = errors.New("invalid xmltv time")
	ErrInvalidEPGFormat = errors.New("invalid epg format")
	ErrGuideNotFound    = errors.New("epg guide not found")
)
