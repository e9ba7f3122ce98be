package models

import "time"

type UserRole string

const (
	RoleSecretary UserRole = "secretary"
	RoleViewer    UserRole = "viewer"
)

// User is an API account (committee secretary or read-only viewer),
// distinct from Member, which is a playing member of the society.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
