package services

import (
	"context"
	"testing"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentCreateSnapshotsRoster(t *testing.T) {
	members := []models.Member{
		{ID: 1, FirstName: "Ann", LastName: "Law", Handicap: 12.0},
		{ID: 2, FirstName: "Bob", LastName: "May", Handicap: 20.4},
	}

	var snapshotIDs []int
	stored := &models.Tournament{}

	tournamentRepo := &fakeTournamentRepo{
		CreateFunc: func(ctx context.Context, tournament *models.Tournament) error {
			tournament.ID = 5
			tournament.CreatedAt = time.Now()
			*stored = *tournament
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			copied := *stored
			return &copied, nil
		},
	}
	memberRepo := &fakeMemberRepo{
		ListFunc: func(ctx context.Context) ([]models.Member, error) { return members, nil },
	}
	rosterRepo := &fakeRosterRepo{
		SnapshotFunc: func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, memberIDs []int) error {
			snapshotIDs = memberIDs
			return nil
		},
		ListMembersFunc: func(ctx context.Context, tournamentID int) ([]models.Member, error) {
			return members, nil
		},
	}
	courseRepo := &fakeCourseRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Course, error) {
			return &models.Course{ID: id, Name: "Heath Park", Par: 72}, nil
		},
	}
	scoreRepo := &fakeScoreRepo{
		ListByTournamentFunc: func(ctx context.Context, tournamentID int) ([]models.Score, error) {
			return nil, nil
		},
	}

	svc := NewTournamentService(nil, tournamentRepo, rosterRepo, memberRepo, courseRepo, nil, scoreRepo, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateTournamentInput{
		Name:     "Spring Medal",
		CourseID: 1,
		Format:   models.FormatStableford,
		StartsOn: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		Rounds:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, []int{1, 2}, snapshotIDs)
	assert.Len(t, created.Roster, 2)
}

func TestTournamentCreateExplicitRoster(t *testing.T) {
	members := []models.Member{
		{ID: 1, FirstName: "Ann", LastName: "Law"},
		{ID: 2, FirstName: "Bob", LastName: "May"},
		{ID: 3, FirstName: "Cy", LastName: "Orr"},
	}

	var snapshotIDs []int
	stored := &models.Tournament{}

	tournamentRepo := &fakeTournamentRepo{
		CreateFunc: func(ctx context.Context, tournament *models.Tournament) error {
			tournament.ID = 5
			*stored = *tournament
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			copied := *stored
			return &copied, nil
		},
	}
	memberRepo := &fakeMemberRepo{
		ListFunc: func(ctx context.Context) ([]models.Member, error) { return members, nil },
	}
	rosterRepo := &fakeRosterRepo{
		SnapshotFunc: func(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, memberIDs []int) error {
			snapshotIDs = memberIDs
			return nil
		},
		ListMembersFunc: func(ctx context.Context, tournamentID int) ([]models.Member, error) {
			return []models.Member{members[2], members[0]}, nil
		},
	}
	courseRepo := &fakeCourseRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Course, error) {
			return &models.Course{ID: id, Name: "Heath Park", Par: 72}, nil
		},
	}
	scoreRepo := &fakeScoreRepo{
		ListByTournamentFunc: func(ctx context.Context, tournamentID int) ([]models.Score, error) {
			return nil, nil
		},
	}

	svc := NewTournamentService(nil, tournamentRepo, rosterRepo, memberRepo, courseRepo, nil, scoreRepo, nil, nil, nil)

	created, err := svc.Create(context.Background(), CreateTournamentInput{
		Name:      "Captain's Day",
		CourseID:  1,
		Format:    models.FormatStableford,
		StartsOn:  time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		Rounds:    1,
		MemberIDs: []int{3, 1, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
	assert.Equal(t, []int{3, 1}, snapshotIDs)
}

func TestTournamentCreateRejectsUnknownRosterMember(t *testing.T) {
	memberRepo := &fakeMemberRepo{
		ListFunc: func(ctx context.Context) ([]models.Member, error) {
			return []models.Member{{ID: 1}, {ID: 2}}, nil
		},
	}
	courseRepo := &fakeCourseRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Course, error) {
			return &models.Course{ID: id, Par: 72}, nil
		},
	}

	// Nil tournament repo: resolution must fail before anything is
	// created.
	svc := NewTournamentService(nil, nil, nil, memberRepo, courseRepo, nil, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateTournamentInput{
		Name:      "Captain's Day",
		CourseID:  1,
		Format:    models.FormatStableford,
		StartsOn:  time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		Rounds:    1,
		MemberIDs: []int{1, 99},
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestTournamentCreateValidation(t *testing.T) {
	svc := NewTournamentService(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	starts := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
	before := starts.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{"missing name", CreateTournamentInput{Format: models.FormatStableford, StartsOn: starts, Rounds: 1}, ErrTournamentNameRequired},
		{"bad format", CreateTournamentInput{Name: "X", Format: "match_play", StartsOn: starts, Rounds: 1}, ErrTournamentInvalidFormat},
		{"no start date", CreateTournamentInput{Name: "X", Format: models.FormatStableford, Rounds: 1}, ErrTournamentInvalidDates},
		{"end before start", CreateTournamentInput{Name: "X", Format: models.FormatStableford, StartsOn: starts, EndsOn: &before, Rounds: 1}, ErrTournamentInvalidDates},
		{"zero rounds", CreateTournamentInput{Name: "X", Format: models.FormatStableford, StartsOn: starts}, ErrTournamentInvalidRounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTournamentFinalizeStampsHistoryWithStartDate(t *testing.T) {
	startsOn := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
	stored := &models.Tournament{
		ID:       3,
		Name:     "Spring Medal",
		CourseID: 1,
		Format:   models.FormatStableford,
		StartsOn: startsOn,
	}
	roster := []models.Member{{ID: 7, FirstName: "Pat", LastName: "Reed", Handicap: 18.0}}
	// 30 points is below the buffer zone, handicap goes up 0.1.
	scores := []models.Score{{ID: 1, TournamentID: 3, MemberID: 7, Points: intPtr(30)}}

	tournamentRepo := &fakeTournamentRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			copied := *stored
			return &copied, nil
		},
		MarkCompletedFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int) error {
			stored.Completed = true
			return nil
		},
	}
	var updatedTo float64
	var appended *models.HandicapHistory
	memberRepo := &fakeMemberRepo{
		UpdateHandicapFunc: func(ctx context.Context, exec repositories.SQLExecutor, id int, handicap float64) error {
			updatedTo = handicap
			return nil
		},
		AppendHistoryFunc: func(ctx context.Context, exec repositories.SQLExecutor, entry *models.HandicapHistory) error {
			appended = entry
			return nil
		},
	}
	courseRepo := &fakeCourseRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Course, error) {
			return &models.Course{ID: id, Name: "Heath Park", Par: 72}, nil
		},
	}
	rosterRepo := &fakeRosterRepo{
		ListMembersFunc: func(ctx context.Context, tournamentID int) ([]models.Member, error) { return roster, nil },
	}
	scoreRepo := &fakeScoreRepo{
		ListByTournamentFunc: func(ctx context.Context, tournamentID int) ([]models.Score, error) { return scores, nil },
	}

	svc := NewTournamentService(stubDB(t), tournamentRepo, rosterRepo, memberRepo, courseRepo, nil, scoreRepo, nil, nil, nil)

	finalized, err := svc.Finalize(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, finalized.Completed)

	require.NotNil(t, appended)
	assert.Equal(t, startsOn, appended.RecordedAt)
	assert.Equal(t, "Spring Medal", appended.Reason)
	assert.Equal(t, 18.0, appended.OldHandicap)
	assert.Equal(t, 18.1, appended.NewHandicap)
	assert.Equal(t, 18.1, updatedTo)
}

func TestTournamentFinalizeRejectsSecondCall(t *testing.T) {
	tournamentRepo := &fakeTournamentRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			return &models.Tournament{ID: id, Completed: true}, nil
		},
	}
	svc := NewTournamentService(nil, tournamentRepo, nil, nil, nil, nil, nil, nil, nil, nil)

	_, err := svc.Finalize(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTournamentAlreadyFinalized)
}

func TestTournamentUpdateRejectsFinalized(t *testing.T) {
	tournamentRepo := &fakeTournamentRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			return &models.Tournament{ID: id, Completed: true}, nil
		},
	}
	svc := NewTournamentService(nil, tournamentRepo, nil, nil, nil, nil, nil, nil, nil, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), 1, UpdateTournamentInput{Name: &name})
	assert.ErrorIs(t, err, ErrTournamentFinalized)
}

func TestTournamentResultsOrderAndLeaguePoints(t *testing.T) {
	tournament := &models.Tournament{ID: 3, Format: models.FormatStableford, StartsOn: time.Now()}
	roster := []models.Member{
		{ID: 1, FirstName: "Ann", LastName: "Law"},
		{ID: 2, FirstName: "Bob", LastName: "May"},
		{ID: 3, FirstName: "Cy", LastName: "Orr"},
	}
	scores := []models.Score{
		{ID: 10, TournamentID: 3, MemberID: 1, Points: intPtr(31)},
		{ID: 11, TournamentID: 3, MemberID: 2, Points: intPtr(38)},
		{ID: 12, TournamentID: 3, MemberID: 3, Points: intPtr(34)},
	}

	tournamentRepo := &fakeTournamentRepo{
		GetByIDFunc: func(ctx context.Context, id int) (*models.Tournament, error) { return tournament, nil },
	}
	rosterRepo := &fakeRosterRepo{
		ListMembersFunc: func(ctx context.Context, tournamentID int) ([]models.Member, error) { return roster, nil },
	}
	scoreRepo := &fakeScoreRepo{
		ListByTournamentFunc: func(ctx context.Context, tournamentID int) ([]models.Score, error) { return scores, nil },
	}
	svc := NewTournamentService(nil, tournamentRepo, rosterRepo, nil, nil, nil, scoreRepo, nil, nil, nil)

	results, err := svc.Results(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Bob May", results[0].MemberName)
	assert.Equal(t, 25, results[0].LeaguePoints)
	assert.Equal(t, "Cy Orr", results[1].MemberName)
	assert.Equal(t, 18, results[1].LeaguePoints)
	assert.Equal(t, "Ann Law", results[2].MemberName)
	assert.Equal(t, 15, results[2].LeaguePoints)
}
