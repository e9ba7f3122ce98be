package models

import "time"

// Invite lets a prospective member register themselves through a
// single-use tokenized link issued by the secretary.
type Invite struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Token     string    `json:"-" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
