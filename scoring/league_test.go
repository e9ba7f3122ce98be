package scoring

import (
	"testing"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leagueMembers() []models.Member {
	return []models.Member{
		{ID: 1, FirstName: "Nora", LastName: "Quinn", Handicap: 10},
		{ID: 2, FirstName: "Ben", LastName: "Walsh", Handicap: 14},
		{ID: 3, FirstName: "Ciara", LastName: "Doyle", Handicap: 6},
	}
}

func finalized(id int, format models.ScoringFormat) models.Tournament {
	return models.Tournament{
		ID:        id,
		Name:      "Event",
		Format:    format,
		StartsOn:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Completed: true,
	}
}

func entryFor(t *testing.T, table []models.StandingsEntry, memberID int) models.StandingsEntry {
	t.Helper()
	for _, e := range table {
		if e.MemberID == memberID {
			return e
		}
	}
	t.Fatalf("member %d not in standings", memberID)
	return models.StandingsEntry{}
}

func TestComputeStandingsAccumulates(t *testing.T) {
	members := leagueMembers()
	tournaments := []models.Tournament{
		finalized(1, models.FormatStableford),
		finalized(2, models.FormatStableford),
	}
	scores := map[int][]models.Score{
		// Member 1 wins event 1, finishes second in event 2.
		1: {
			{ID: 1, TournamentID: 1, MemberID: 1, Points: intPtr(40)},
			{ID: 2, TournamentID: 1, MemberID: 2, Points: intPtr(35)},
		},
		2: {
			{ID: 3, TournamentID: 2, MemberID: 1, Points: intPtr(33)},
			{ID: 4, TournamentID: 2, MemberID: 2, Points: intPtr(38)},
		},
	}

	table := ComputeStandings(members, tournaments, scores)
	require.Len(t, table, 3)

	first := entryFor(t, table, 1)
	assert.Equal(t, 25+18, first.Points)
	assert.Equal(t, 2, first.EventsPlayed)
	assert.Equal(t, 1, first.Wins)

	second := entryFor(t, table, 2)
	assert.Equal(t, 18+25, second.Points)
	assert.Equal(t, 1, second.Wins)

	// Never played: present with zeroes.
	third := entryFor(t, table, 3)
	assert.Zero(t, third.Points)
	assert.Zero(t, third.EventsPlayed)
	assert.Equal(t, 3, third.Rank)
}

func TestComputeStandingsIdempotent(t *testing.T) {
	members := leagueMembers()
	tournaments := []models.Tournament{finalized(1, models.FormatStableford)}
	scores := map[int][]models.Score{
		1: {
			{ID: 1, TournamentID: 1, MemberID: 1, Points: intPtr(36)},
			{ID: 2, TournamentID: 1, MemberID: 2, Points: intPtr(31)},
		},
	}

	once := ComputeStandings(members, tournaments, scores)
	twice := ComputeStandings(members, tournaments, scores)
	assert.Equal(t, once, twice)
}

func TestComputeStandingsIgnoresScheduled(t *testing.T) {
	members := leagueMembers()
	scheduled := finalized(1, models.FormatStableford)
	scheduled.Completed = false
	scores := map[int][]models.Score{
		1: {{ID: 1, TournamentID: 1, MemberID: 1, Points: intPtr(40)}},
	}

	table := ComputeStandings(members, []models.Tournament{scheduled}, scores)
	assert.Zero(t, entryFor(t, table, 1).Points)
}

func TestComputeStandingsSkipsUnknownMembers(t *testing.T) {
	members := leagueMembers()
	tournaments := []models.Tournament{finalized(1, models.FormatStableford)}
	scores := map[int][]models.Score{
		1: {
			{ID: 1, TournamentID: 1, MemberID: 99, Points: intPtr(45)}, // dangling
			{ID: 2, TournamentID: 1, MemberID: 1, Points: intPtr(30)},
		},
	}

	table := ComputeStandings(members, tournaments, scores)
	// The dangling score neither appears nor shifts real placements.
	first := entryFor(t, table, 1)
	assert.Equal(t, 25, first.Points)
	assert.Equal(t, 1, first.Wins)
}

func TestComputeStandingsStrokePlayOrder(t *testing.T) {
	members := leagueMembers()
	tournaments := []models.Tournament{finalized(1, models.FormatStrokePlay)}
	scores := map[int][]models.Score{
		1: {
			{ID: 1, TournamentID: 1, MemberID: 1, Gross: intPtr(82)}, // net 72
			{ID: 2, TournamentID: 1, MemberID: 2, Gross: intPtr(84)}, // net 70, wins
			{ID: 3, TournamentID: 1, MemberID: 3, Gross: nil},        // no card, last
		},
	}

	table := ComputeStandings(members, tournaments, scores)
	assert.Equal(t, 25, entryFor(t, table, 2).Points)
	assert.Equal(t, 18, entryFor(t, table, 1).Points)
	noCard := entryFor(t, table, 3)
	assert.Equal(t, 15, noCard.Points)
	assert.Equal(t, 1, noCard.EventsPlayed)
	assert.Zero(t, noCard.Wins)
}

func TestComputeStandingsBeyondTenth(t *testing.T) {
	members := make([]models.Member, 0, 12)
	scores := make([]models.Score, 0, 12)
	for i := 1; i <= 12; i++ {
		members = append(members, models.Member{ID: i, FirstName: "P", LastName: "Q"})
		pts := 45 - i // strictly decreasing, member 1 first
		scores = append(scores, models.Score{ID: i, TournamentID: 1, MemberID: i, Points: intPtr(pts)})
	}
	tournaments := []models.Tournament{finalized(1, models.FormatStableford)}

	table := ComputeStandings(members, tournaments, map[int][]models.Score{1: scores})
	assert.Equal(t, 1, entryFor(t, table, 10).Points)
	assert.Zero(t, entryFor(t, table, 11).Points)
	assert.Zero(t, entryFor(t, table, 12).Points)
	assert.Equal(t, 1, entryFor(t, table, 11).EventsPlayed, "finishing outside the points still counts as playing")
}

func TestComputeStandingsTieBreak(t *testing.T) {
	members := []models.Member{
		{ID: 1, FirstName: "A", LastName: "A"},
		{ID: 2, FirstName: "B", LastName: "B"},
	}
	// Both members take one win and one second place: points, wins and
	// events all tie, leaving member id as the deciding key.
	tournaments := []models.Tournament{
		finalized(1, models.FormatStableford),
		finalized(2, models.FormatStableford),
	}
	scores := map[int][]models.Score{
		1: {
			{ID: 1, TournamentID: 1, MemberID: 1, Points: intPtr(40)},
			{ID: 2, TournamentID: 1, MemberID: 2, Points: intPtr(40)},
		},
		2: {
			{ID: 3, TournamentID: 2, MemberID: 2, Points: intPtr(40)},
			{ID: 4, TournamentID: 2, MemberID: 1, Points: intPtr(40)},
		},
	}

	table := ComputeStandings(members, tournaments, scores)
	require.Len(t, table, 2)
	assert.Equal(t, 1, table[0].MemberID)
	assert.Equal(t, 1, table[0].Rank)
	assert.Equal(t, 2, table[1].Rank)
}

func TestTournamentResults(t *testing.T) {
	members := leagueMembers()
	byID := map[int]*models.Member{}
	for i := range members {
		byID[members[i].ID] = &members[i]
	}
	tournament := finalized(1, models.FormatStrokePlay)
	scores := []models.Score{
		{ID: 1, TournamentID: 1, MemberID: 1, Gross: intPtr(82)},
		{ID: 2, TournamentID: 1, MemberID: 2, Gross: intPtr(83)}, // net 69, first
	}

	results := TournamentResults(&tournament, scores, byID)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].MemberID)
	assert.Equal(t, 1, results[0].Position)
	assert.Equal(t, 25, results[0].LeaguePoints)
	require.NotNil(t, results[0].Net)
	assert.InDelta(t, 69.0, *results[0].Net, 1e-9)
	assert.Equal(t, 18, results[1].LeaguePoints)
}
