package services

import (
	"context"
	"errors"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/scoring"
)

// LeaderboardNotifier pushes live results to connected viewers. A nil
// notifier is valid; score entry then simply has no live feed.
type LeaderboardNotifier interface {
	PublishResults(tournamentID int, results []models.TournamentResult)
}

type ScoreInput struct {
	Gross      *int  `json:"gross"`
	Points     *int  `json:"points"`
	HoleScores []int `json:"hole_scores"`
}

type ScoreService interface {
	Upsert(ctx context.Context, tournamentID, memberID int, input ScoreInput) (*models.Score, error)
	Get(ctx context.Context, tournamentID, memberID int) (*models.Score, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error)
	Delete(ctx context.Context, tournamentID, memberID int) error
}

type scoreService struct {
	scoreRepo      repositories.ScoreRepository
	tournamentRepo repositories.TournamentRepository
	rosterRepo     repositories.RosterRepository
	courseRepo     repositories.CourseRepository
	notifier       LeaderboardNotifier
}

func NewScoreService(
	scoreRepo repositories.ScoreRepository,
	tournamentRepo repositories.TournamentRepository,
	rosterRepo repositories.RosterRepository,
	courseRepo repositories.CourseRepository,
	notifier LeaderboardNotifier,
) ScoreService {
	return &scoreService{
		scoreRepo:      scoreRepo,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		courseRepo:     courseRepo,
		notifier:       notifier,
	}
}

// Upsert records or replaces a member's score for a tournament. A
// hole-by-hole card overrides any submitted totals: gross and points
// are recomputed from the card against the course data and the
// member's current handicap. Finalized tournaments are frozen.
func (s *scoreService) Upsert(ctx context.Context, tournamentID, memberID int, input ScoreInput) (*models.Score, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if tournament.Completed {
		return nil, ErrTournamentFinalized
	}

	roster, err := s.rosterRepo.ListMembers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	var member *models.Member
	for i := range roster {
		if roster[i].ID == memberID {
			member = &roster[i]
			break
		}
	}
	if member == nil {
		return nil, ErrScoreNotInRoster
	}

	if err := validateScoreInput(input); err != nil {
		return nil, err
	}

	score := &models.Score{
		TournamentID: tournamentID,
		MemberID:     memberID,
		Gross:        input.Gross,
		Points:       input.Points,
		HoleScores:   input.HoleScores,
	}

	if score.HasHoleScores() {
		holes, holesErr := s.courseRepo.ListHoles(ctx, tournament.CourseID)
		if holesErr != nil {
			return nil, holesErr
		}
		computed := scoring.ComputeStableford(score.HoleScores, member.Handicap, holes)
		score.Gross = &computed.TotalGross
		score.Points = &computed.TotalPoints
	}

	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, mapScoreRepoError(err)
	}

	s.publish(ctx, tournament)
	return score, nil
}

func (s *scoreService) Get(ctx context.Context, tournamentID, memberID int) (*models.Score, error) {
	score, err := s.scoreRepo.GetByTournamentAndMember(ctx, tournamentID, memberID)
	if err != nil {
		return nil, mapScoreRepoError(err)
	}
	return score, nil
}

func (s *scoreService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return s.scoreRepo.ListByTournament(ctx, tournamentID)
}

func (s *scoreService) Delete(ctx context.Context, tournamentID, memberID int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return mapTournamentRepoError(err)
	}
	if tournament.Completed {
		return ErrTournamentFinalized
	}
	if err := s.scoreRepo.Delete(ctx, tournamentID, memberID); err != nil {
		return mapScoreRepoError(err)
	}
	s.publish(ctx, tournament)
	return nil
}

// publish recomputes the live finishing order and hands it to the
// notifier. Failures here never fail the write that triggered it.
func (s *scoreService) publish(ctx context.Context, tournament *models.Tournament) {
	if s.notifier == nil {
		return
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return
	}
	roster, err := s.rosterRepo.ListMembers(ctx, tournament.ID)
	if err != nil {
		return
	}
	s.notifier.PublishResults(tournament.ID, scoring.TournamentResults(tournament, scores, memberIndex(roster)))
}

func validateScoreInput(input ScoreInput) error {
	if len(input.HoleScores) > models.HolesPerRound {
		return ErrScoreInvalidHoleCount
	}
	for _, v := range input.HoleScores {
		if v < 0 {
			return ErrScoreNegative
		}
	}
	if input.Gross != nil && *input.Gross < 0 {
		return ErrScoreNegative
	}
	if input.Points != nil && *input.Points < 0 {
		return ErrScoreNegative
	}

	hasCard := false
	for _, v := range input.HoleScores {
		if v > 0 {
			hasCard = true
			break
		}
	}
	if !hasCard && input.Gross == nil && input.Points == nil {
		return ErrScoreEmpty
	}
	return nil
}

func mapScoreRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrScoreNotFound):
		return ErrScoreNotFound
	case errors.Is(err, repositories.ErrScoreInvalidTournament):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrScoreInvalidMember):
		return ErrMemberNotFound
	}
	return err
}
