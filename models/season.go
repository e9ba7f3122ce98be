package models

import "time"

type Season struct {
	ID       int       `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	StartsOn time.Time `json:"starts_on" db:"starts_on"`
	EndsOn   time.Time `json:"ends_on" db:"ends_on"`
}
