package models

// StandingsEntry is one row of a league table. It is recomputed from
// members, finalized tournaments and their scores on every request and
// is never persisted.
type StandingsEntry struct {
	MemberID     int     `json:"member_id"`
	MemberName   string  `json:"member_name"`
	Handicap     float64 `json:"handicap"`
	Points       int     `json:"points"`
	EventsPlayed int     `json:"events_played"`
	Wins         int     `json:"wins"`
	Rank         int     `json:"rank"`
}

// TournamentResult is one row of a single tournament's finishing order.
type TournamentResult struct {
	Position     int      `json:"position"`
	MemberID     int      `json:"member_id"`
	MemberName   string   `json:"member_name"`
	Gross        *int     `json:"gross,omitempty"`
	Points       *int     `json:"points,omitempty"`
	Net          *float64 `json:"net,omitempty"`
	LeaguePoints int      `json:"league_points"`
}
