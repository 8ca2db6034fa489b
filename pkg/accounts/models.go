// Package accounts provides credential identities and authentication for userhub.
// An Account is the login identity; resource records owned by an account live
// in the records package.
package accounts

import "time"

// Account represents a credential identity. It is created on registration and
// immutable afterwards; email is the sole lookup key for authentication.
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // bcrypt hash, never returned in JSON
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Identity is the authenticated caller decoded from a bearer token
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
