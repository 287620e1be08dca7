package service

import "errors"

// Business errors surfaced to the handler layer. Handlers map these to HTTP
// status codes in one place; everything else becomes ErrInternalServer.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomInactive         = errors.New("room is no longer active")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username or email already exists")
	ErrInvalidChange        = errors.New("invalid change payload")
	ErrInternalServer       = errors.New("internal server error")
)
