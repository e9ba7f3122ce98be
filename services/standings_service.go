package services

import (
	"context"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"github.com/garry1963/golf-society-manager-sub000/scoring"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	// Standings builds the league table across every finalized
	// tournament, optionally scoped to one season.
	Standings(ctx context.Context, seasonID *int) ([]models.StandingsEntry, error)
}

type standingsService struct {
	memberRepo     repositories.MemberRepository
	tournamentRepo repositories.TournamentRepository
	scoreRepo      repositories.ScoreRepository
	seasonRepo     repositories.SeasonRepository
}

func NewStandingsService(
	memberRepo repositories.MemberRepository,
	tournamentRepo repositories.TournamentRepository,
	scoreRepo repositories.ScoreRepository,
	seasonRepo repositories.SeasonRepository,
) StandingsService {
	return &standingsService{
		memberRepo:     memberRepo,
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
		seasonRepo:     seasonRepo,
	}
}

func (s *standingsService) Standings(ctx context.Context, seasonID *int) ([]models.StandingsEntry, error) {
	if seasonID != nil {
		if _, err := s.seasonRepo.GetByID(ctx, *seasonID); err != nil {
			return nil, mapSeasonRepoError(err)
		}
	}

	var (
		members     []models.Member
		tournaments []models.Tournament
	)
	completed := true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.memberRepo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gctx, repositories.ListTournamentsFilter{
			SeasonID:  seasonID,
			Completed: &completed,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tournamentIDs := make([]int, len(tournaments))
	for i, t := range tournaments {
		tournamentIDs[i] = t.ID
	}
	scoresByTournament, err := s.scoreRepo.ListByTournaments(ctx, tournamentIDs)
	if err != nil {
		return nil, err
	}

	return scoring.ComputeStandings(members, tournaments, scoresByTournament), nil
}
