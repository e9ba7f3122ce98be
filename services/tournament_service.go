package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/scoring"
)

// ResultsMailer sends the final results of a tournament to the
// membership. Nil disables mailing.
type ResultsMailer interface {
	SendResults(ctx context.Context, tournament *models.Tournament, results []models.TournamentResult, recipients []string) error
}

type CreateTournamentInput struct {
	Name     string               `json:"name"`
	CourseID int                  `json:"course_id"`
	SeasonID *int                 `json:"season_id"`
	Format   models.ScoringFormat `json:"format"`
	StartsOn time.Time            `json:"starts_on"`
	EndsOn   *time.Time           `json:"ends_on"`
	Rounds   int                  `json:"rounds"`
	// MemberIDs restricts the roster to the listed members. Empty means
	// every current member plays.
	MemberIDs []int `json:"member_ids"`
}

type UpdateTournamentInput struct {
	Name     *string               `json:"name"`
	CourseID *int                  `json:"course_id"`
	SeasonID *int                  `json:"season_id"`
	Format   *models.ScoringFormat `json:"format"`
	StartsOn *time.Time            `json:"starts_on"`
	EndsOn   *time.Time            `json:"ends_on"`
	Rounds   *int                  `json:"rounds"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error
	Finalize(ctx context.Context, id int) (*models.Tournament, error)
	Results(ctx context.Context, id int) ([]models.TournamentResult, error)
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	rosterRepo     repositories.RosterRepository
	memberRepo     repositories.MemberRepository
	courseRepo     repositories.CourseRepository
	seasonRepo     repositories.SeasonRepository
	scoreRepo      repositories.ScoreRepository
	notifier       LeaderboardNotifier
	mailer         ResultsMailer
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	rosterRepo repositories.RosterRepository,
	memberRepo repositories.MemberRepository,
	courseRepo repositories.CourseRepository,
	seasonRepo repositories.SeasonRepository,
	scoreRepo repositories.ScoreRepository,
	notifier LeaderboardNotifier,
	mailer ResultsMailer,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		memberRepo:     memberRepo,
		courseRepo:     courseRepo,
		seasonRepo:     seasonRepo,
		scoreRepo:      scoreRepo,
		notifier:       notifier,
		mailer:         mailer,
		logger:         logger,
	}
}

// Create schedules a tournament and snapshots its roster: the listed
// members when the input names any, otherwise every current member.
// Members joining the society later do not join events that were
// already scheduled.
func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input.Name, input.Format, input.StartsOn, input.EndsOn, input.Rounds); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, input.CourseID); err != nil {
		return nil, mapCourseRepoError(err)
	}
	if input.SeasonID != nil {
		if _, err := s.seasonRepo.GetByID(ctx, *input.SeasonID); err != nil {
			return nil, mapSeasonRepoError(err)
		}
	}

	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	memberIDs, err := resolveRosterIDs(input.MemberIDs, members)
	if err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:     input.Name,
		CourseID: input.CourseID,
		SeasonID: input.SeasonID,
		Format:   input.Format,
		StartsOn: input.StartsOn,
		EndsOn:   input.EndsOn,
		Rounds:   input.Rounds,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}

	if err := s.rosterRepo.Snapshot(ctx, nil, tournament.ID, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to snapshot roster for tournament %d: %w", tournament.ID, err)
	}

	return s.GetByID(ctx, tournament.ID)
}

// resolveRosterIDs turns a requested roster into member ids. Unknown
// members are rejected, duplicates collapse, and an empty request means
// the whole membership.
func resolveRosterIDs(requested []int, members []models.Member) ([]int, error) {
	if len(requested) == 0 {
		ids := make([]int, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
		return ids, nil
	}

	known := make(map[int]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	seen := make(map[int]bool, len(requested))
	ids := make([]int, 0, len(requested))
	for _, id := range requested {
		if !known[id] {
			return nil, ErrMemberNotFound
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}

	if course, courseErr := s.courseRepo.GetByID(ctx, tournament.CourseID); courseErr == nil {
		tournament.Course = course
	}
	if tournament.SeasonID != nil {
		if season, seasonErr := s.seasonRepo.GetByID(ctx, *tournament.SeasonID); seasonErr == nil {
			tournament.Season = season
		}
	}
	roster, err := s.rosterRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	tournament.Roster = roster

	scores, err := s.scoreRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	tournament.Scores = scores

	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if tournament.Completed {
		return nil, ErrTournamentFinalized
	}

	if input.Name != nil {
		tournament.Name = *input.Name
	}
	if input.CourseID != nil {
		tournament.CourseID = *input.CourseID
	}
	if input.SeasonID != nil {
		tournament.SeasonID = input.SeasonID
	}
	if input.Format != nil {
		tournament.Format = *input.Format
	}
	if input.StartsOn != nil {
		tournament.StartsOn = *input.StartsOn
	}
	if input.EndsOn != nil {
		tournament.EndsOn = input.EndsOn
	}
	if input.Rounds != nil {
		tournament.Rounds = *input.Rounds
	}

	if err := validateTournamentInput(tournament.Name, tournament.Format, tournament.StartsOn, tournament.EndsOn, tournament.Rounds); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return s.GetByID(ctx, id)
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	return mapTournamentRepoError(s.tournamentRepo.Delete(ctx, id))
}

// Finalize moves a tournament to its terminal state. In one
// transaction it flips the completed flag (the repository guard keeps
// the flip one-way), revises the handicap of every member who returned
// a score, and appends an audit entry per revision. After commit the
// final results go out to the live feed and, in the background, by
// email.
func (s *tournamentService) Finalize(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if tournament.Completed {
		return nil, ErrTournamentAlreadyFinalized
	}

	course, err := s.courseRepo.GetByID(ctx, tournament.CourseID)
	if err != nil {
		return nil, mapCourseRepoError(err)
	}
	roster, err := s.rosterRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	byID := memberIndex(roster)
	revisions := scoring.ReviseHandicaps(tournament, course.Par, scores, byID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin finalize transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.MarkCompleted(ctx, tx, id); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	for _, rev := range revisions {
		if err := s.memberRepo.UpdateHandicap(ctx, tx, rev.MemberID, rev.NewHandicap); err != nil {
			return nil, mapMemberRepoError(err)
		}
		entry := &models.HandicapHistory{
			MemberID:    rev.MemberID,
			RecordedAt:  rev.Date,
			OldHandicap: rev.OldHandicap,
			NewHandicap: rev.NewHandicap,
			Reason:      rev.Reason,
		}
		if err := s.memberRepo.AppendHistory(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to record handicap history for member %d: %w", rev.MemberID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit finalize transaction: %w", err)
	}

	tournament.Completed = true

	// Results use the handicaps the members played off, so the
	// pre-revision roster is passed on purpose.
	results := scoring.TournamentResults(tournament, scores, byID)
	if s.notifier != nil {
		s.notifier.PublishResults(id, results)
	}
	s.mailResults(tournament, results, roster)

	return s.GetByID(ctx, id)
}

func (s *tournamentService) Results(ctx context.Context, id int) ([]models.TournamentResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	roster, err := s.rosterRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return scoring.TournamentResults(tournament, scores, memberIndex(roster)), nil
}

func (s *tournamentService) mailResults(tournament *models.Tournament, results []models.TournamentResult, roster []models.Member) {
	if s.mailer == nil {
		return
	}
	recipients := make([]string, 0, len(roster))
	for _, m := range roster {
		if m.Email != "" {
			recipients = append(recipients, m.Email)
		}
	}
	if len(recipients) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendResults(ctx, tournament, results, recipients); err != nil && s.logger != nil {
			s.logger.Error("failed to email tournament results",
				slog.Int("tournament_id", tournament.ID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func validateTournamentInput(name string, format models.ScoringFormat, startsOn time.Time, endsOn *time.Time, rounds int) error {
	if name == "" {
		return ErrTournamentNameRequired
	}
	if !format.Valid() {
		return ErrTournamentInvalidFormat
	}
	if startsOn.IsZero() {
		return ErrTournamentInvalidDates
	}
	if endsOn != nil && endsOn.Before(startsOn) {
		return ErrTournamentInvalidDates
	}
	if rounds <= 0 {
		return ErrTournamentInvalidRounds
	}
	return nil
}
