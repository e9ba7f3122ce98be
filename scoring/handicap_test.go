package scoring

import (
	"testing"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRoundHandicap(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{8.84, 8.8},
		{8.85, 8.9},
		{-0.45, -0.5},
		{10.0, 10.0},
		{12.34999, 12.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundHandicap(tt.in), 1e-9)
	}
}

func TestRoundHandicapIdempotent(t *testing.T) {
	for _, v := range []float64{8.8371, -3.25, 0.049, 17.95, 28.444} {
		once := RoundHandicap(v)
		assert.InDelta(t, once, RoundHandicap(once), 1e-9)
	}
}

func revisionFixture(format models.ScoringFormat) (*models.Tournament, map[int]*models.Member) {
	t := &models.Tournament{
		ID:       1,
		Name:     "Spring Medal",
		Format:   format,
		StartsOn: time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	members := map[int]*models.Member{
		1: {ID: 1, FirstName: "Nora", LastName: "Quinn", Handicap: 10.0},
	}
	return t, members
}

func TestReviseHandicapsStableford(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   float64
	}{
		{"forty points cuts 1.2", 40, 8.8},
		{"thirty seven points cuts 0.3", 37, 9.7},
		{"buffer top is inclusive", 36, 10.0},
		{"buffer bottom is inclusive", 32, 10.0},
		{"twenty eight points adds 0.1", 28, 10.1},
		{"thirty one points adds 0.1", 31, 10.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tournament, members := revisionFixture(models.FormatStableford)
			scores := []models.Score{{TournamentID: 1, MemberID: 1, Points: intPtr(tt.points)}}

			revisions := ReviseHandicaps(tournament, 72, scores, members)
			require.Len(t, revisions, 1)
			assert.Equal(t, 10.0, revisions[0].OldHandicap)
			assert.InDelta(t, tt.want, revisions[0].NewHandicap, 1e-9)
			assert.Equal(t, "Spring Medal", revisions[0].Reason)
			assert.Equal(t, tournament.StartsOn, revisions[0].Date)
		})
	}
}

func TestReviseHandicapsStrokePlay(t *testing.T) {
	tests := []struct {
		name  string
		gross int
		want  float64
	}{
		{"net four under cuts 1.2", 78, 8.8}, // net 68 vs par 72
		{"net level par is buffer", 82, 10.0},
		{"net four over is still buffer", 86, 10.0},
		{"net five over adds 0.1", 87, 10.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tournament, members := revisionFixture(models.FormatStrokePlay)
			scores := []models.Score{{TournamentID: 1, MemberID: 1, Gross: intPtr(tt.gross)}}

			revisions := ReviseHandicaps(tournament, 72, scores, members)
			require.Len(t, revisions, 1)
			assert.InDelta(t, tt.want, revisions[0].NewHandicap, 1e-9)
		})
	}
}

func TestReviseHandicapsFallbackPar(t *testing.T) {
	tournament, members := revisionFixture(models.FormatStrokePlay)
	scores := []models.Score{{TournamentID: 1, MemberID: 1, Gross: intPtr(78)}}

	// Course par unknown: fall back to 72, so net 68 still cuts 1.2.
	revisions := ReviseHandicaps(tournament, 0, scores, members)
	require.Len(t, revisions, 1)
	assert.InDelta(t, 8.8, revisions[0].NewHandicap, 1e-9)
}

func TestReviseHandicapsBufferStillRecorded(t *testing.T) {
	tournament, members := revisionFixture(models.FormatStableford)
	scores := []models.Score{{TournamentID: 1, MemberID: 1, Points: intPtr(34)}}

	revisions := ReviseHandicaps(tournament, 72, scores, members)
	require.Len(t, revisions, 1, "zero-delta revisions keep the play record complete")
	assert.Equal(t, revisions[0].OldHandicap, revisions[0].NewHandicap)
}

func TestReviseHandicapsSkips(t *testing.T) {
	tournament, members := revisionFixture(models.FormatStableford)
	scores := []models.Score{
		{TournamentID: 1, MemberID: 99, Points: intPtr(40)}, // unknown member
		{TournamentID: 1, MemberID: 1, Points: intPtr(38)},
	}

	revisions := ReviseHandicaps(tournament, 72, scores, members)
	require.Len(t, revisions, 1)
	assert.Equal(t, 1, revisions[0].MemberID)

	// Stroke play without a gross total has nothing to revise against.
	tournament.Format = models.FormatStrokePlay
	revisions = ReviseHandicaps(tournament, 72, []models.Score{{TournamentID: 1, MemberID: 1}}, members)
	assert.Empty(t, revisions)
}

func TestReviseHandicapsNoScores(t *testing.T) {
	tournament, members := revisionFixture(models.FormatStableford)
	assert.Empty(t, ReviseHandicaps(tournament, 72, nil, members))
}

func TestReviseHandicapsRoundsResult(t *testing.T) {
	tournament, members := revisionFixture(models.FormatStableford)
	members[1].Handicap = 10.25
	scores := []models.Score{{TournamentID: 1, MemberID: 1, Points: intPtr(37)}}

	// 10.25 - 0.3 = 9.95, rounded half away from zero to 10.0.
	revisions := ReviseHandicaps(tournament, 72, scores, members)
	require.Len(t, revisions, 1)
	assert.InDelta(t, 10.0, revisions[0].NewHandicap, 1e-9)
}
