package models

import "time"

// Score is one member's result for one tournament (unique per pair).
// When HoleScores is present, Gross and Points are derived from it by
// the scoring engine and are never editable on their own; a hole value
// of 0 means the hole was not played.
type Score struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	MemberID     int       `json:"member_id" db:"member_id"`
	Gross        *int      `json:"gross,omitempty" db:"gross"`
	Points       *int      `json:"points,omitempty" db:"points"`
	HoleScores   []int     `json:"hole_scores,omitempty" db:"hole_scores"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Member *Member `json:"member,omitempty" db:"-"`
}

// HasHoleScores reports whether a hole-by-hole sheet was entered (at
// least one non-zero value).
func (s *Score) HasHoleScores() bool {
	for _, v := range s.HoleScores {
		if v > 0 {
			return true
		}
	}
	return false
}
