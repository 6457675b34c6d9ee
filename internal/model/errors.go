package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Validation errors
	ErrInvalidUsername = errors.New("username must be at least 3 characters")
	ErrInvalidPassword = errors.New("password must be at least 6 characters")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidResult   = errors.New("result must be exactly two characters")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Storage errors
	ErrTransientConflict = errors.New("storage write conflict")

	// Result errors
	ErrResultNotFound      = errors.New("no result has been published")
	ErrUpstreamUnavailable = errors.New("upstream feed unavailable")
)
