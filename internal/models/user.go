// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the access level of a platform account.
type UserRole string

const (
	// RoleTourist is the default role for self-registered accounts.
	RoleTourist UserRole = "tourist"
	// RoleOfficial marks government reviewers who decide permit applications.
	RoleOfficial UserRole = "official"
	// RoleAdmin marks platform administrators.
	RoleAdmin UserRole = "admin"
)

// User represents an account on the Highpass platform.
// Password is empty for accounts provisioned through Google sign-in.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `json:"-"`
	GoogleID  *string        `gorm:"uniqueIndex" json:"-"`
	Avatar    string         `json:"avatar"`
	Role      UserRole       `gorm:"type:varchar(20);not null;default:'tourist'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReviewer reports whether the user may decide permit applications.
func (u *User) IsReviewer() bool {
	return u.Role == RoleOfficial || u.Role == RoleAdmin
}
