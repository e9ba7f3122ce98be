package models

import "time"

// ScoringFormat matches the ENUM in the database.
type ScoringFormat string

const (
	FormatStableford ScoringFormat = "stableford"
	FormatStrokePlay ScoringFormat = "stroke_play"
)

func (f ScoringFormat) Valid() bool {
	return f == FormatStableford || f == FormatStrokePlay
}

// Tournament moves through exactly two states: scheduled
// (Completed=false, scores mutable) and finalized (Completed=true,
// scores frozen, handicaps revised). The transition is one-way.
type Tournament struct {
	ID        int           `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	CourseID  int           `json:"course_id" db:"course_id"`
	SeasonID  *int          `json:"season_id,omitempty" db:"season_id"`
	Format    ScoringFormat `json:"format" db:"format"`
	StartsOn  time.Time     `json:"starts_on" db:"starts_on"`
	EndsOn    *time.Time    `json:"ends_on,omitempty" db:"ends_on"`
	Rounds    int           `json:"rounds" db:"rounds"`
	Completed bool          `json:"completed" db:"completed"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`

	Course *Course  `json:"course,omitempty" db:"-"`
	Season *Season  `json:"season,omitempty" db:"-"`
	Roster []Member `json:"roster,omitempty" db:"-"`
	Scores []Score  `json:"scores,omitempty" db:"-"`
}
