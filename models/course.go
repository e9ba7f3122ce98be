package models

const HolesPerRound = 18

type Course struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Par      int     `json:"par" db:"par"`
	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`

	Holes []Hole `json:"holes,omitempty" db:"-"`
}

// Hole is static reference data for one hole of a course. StrokeIndex
// ranks the hole's difficulty (1 = hardest) and decides which holes
// receive extra strokes under a playing handicap.
type Hole struct {
	ID          int `json:"id" db:"id"`
	CourseID    int `json:"course_id" db:"course_id"`
	Number      int `json:"number" db:"number"`
	Par         int `json:"par" db:"par"`
	StrokeIndex int `json:"stroke_index" db:"stroke_index"`
}
