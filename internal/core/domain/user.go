package domain

import "time"

// User models a registered account. Email is matched exactly as stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
