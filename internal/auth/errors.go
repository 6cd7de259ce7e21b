package auth

import "errors"

var (
	ErrMissingToken    = errors.New("Missing Bearer token")
	ErrInvalidToken    = errors.New("invalid_token")
	ErrMissingObjectID = errors.New("Missing user object id")
	ErrAdminRequired   = errors.New("Admin access required")
	ErrNoHomeAccess    = errors.New("No access to this care home")
)
