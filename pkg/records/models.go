// Package records provides the owner-scoped "User" business records managed
// through the API. A record always belongs to exactly one account; the owner
// id is the sole authorization boundary.
package records

import (
	"time"

	"gorm.io/gorm"
)

const adultAge = 18

// Role represents the role stored on a record
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the Role is a valid role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User represents a managed business record. It shares its name with the
// account holder by historical accident; the owning credential identity is
// accounts.Account, referenced through OwnerID.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Age       int       `gorm:"not null" json:"age"`
	Role      Role      `gorm:"not null;default:'user'" json:"role"`
	Adult     bool      `gorm:"not null" json:"adult"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeSave recomputes the derived adult flag so it can never diverge from
// age, regardless of what a caller supplies.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Adult = u.Age >= adultAge
	return nil
}
