package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account.
// Balance is mutated only through the storage layer's atomic credit
// operation; IsAdmin is set once at creation time (first registered user).
type User struct {
	ID           UserID
	Username     string
	PasswordHash string // bcrypt hash, never serialized to clients
	Balance      float64
	IsAdmin      bool
	CreatedAt    time.Time
}
