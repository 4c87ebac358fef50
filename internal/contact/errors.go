package contact

import "errors"

// Validation errors
var (
	ErrMissingField = errors.New("field is required")
	ErrInvalidEmail = errors.New("invalid email address")
)

// Relay errors
var (
	ErrRelayURLRequired = errors.New("relay URL is required")
	ErrInvalidRelayURL  = errors.New("invalid relay URL")
	ErrRelayRequest     = errors.New("relay request failed")
	ErrRelayResponse    = errors.New("invalid relay response")
)
