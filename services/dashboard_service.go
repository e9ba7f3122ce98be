package services

import (
	"context"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	memberRepo     repositories.MemberRepository
	courseRepo     repositories.CourseRepository
	tournamentRepo repositories.TournamentRepository
	scoreRepo      repositories.ScoreRepository
}

func NewDashboardService(
	memberRepo repositories.MemberRepository,
	courseRepo repositories.CourseRepository,
	tournamentRepo repositories.TournamentRepository,
	scoreRepo repositories.ScoreRepository,
) DashboardService {
	return &dashboardService{
		memberRepo:     memberRepo,
		courseRepo:     courseRepo,
		tournamentRepo: tournamentRepo,
		scoreRepo:      scoreRepo,
	}
}

// Stats runs the count queries concurrently; the dashboard is a single
// page load and should not serialize five round trips.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	completed := true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.MembersTotal, err = s.memberRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CoursesTotal, err = s.courseRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TournamentsTotal, err = s.tournamentRepo.Count(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TournamentsCompleted, err = s.tournamentRepo.Count(gctx, &completed)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ScoresRecorded, err = s.scoreRepo.CountAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
