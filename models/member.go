package models

import "time"

type Member struct {
	ID        int       `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Handicap  float64   `json:"handicap" db:"handicap"`
	AvatarKey *string   `json:"-" db:"avatar_key"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"-"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at"`

	// Populated by the service when requested, not mapped directly.
	History []HandicapHistory `json:"history,omitempty" db:"-"`
}

// HandicapHistory is an append-only audit entry for a member's handicap.
// Zero-delta entries are recorded on purpose so the history doubles as a
// complete play record.
type HandicapHistory struct {
	ID          int       `json:"id" db:"id"`
	MemberID    int       `json:"member_id" db:"member_id"`
	RecordedAt  time.Time `json:"recorded_at" db:"recorded_at"`
	OldHandicap float64   `json:"old_handicap" db:"old_handicap"`
	NewHandicap float64   `json:"new_handicap" db:"new_handicap"`
	Reason      string    `json:"reason" db:"reason"`
}
