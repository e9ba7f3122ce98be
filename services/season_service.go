package services

import (
	"context"
	"time"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/garry1963/golf-society-manager-sub000/repositories"
)

type SeasonInput struct {
	Name     string    `json:"name"`
	StartsOn time.Time `json:"starts_on"`
	EndsOn   time.Time `json:"ends_on"`
}

type SeasonService interface {
	Create(ctx context.Context, input SeasonInput) (*models.Season, error)
	GetByID(ctx context.Context, id int) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	Update(ctx context.Context, id int, input SeasonInput) (*models.Season, error)
	Delete(ctx context.Context, id int) error
}

type seasonService struct {
	seasonRepo repositories.SeasonRepository
}

func NewSeasonService(seasonRepo repositories.SeasonRepository) SeasonService {
	return &seasonService{seasonRepo: seasonRepo}
}

func (s *seasonService) Create(ctx context.Context, input SeasonInput) (*models.Season, error) {
	if input.Name == "" {
		return nil, ErrSeasonNameRequired
	}
	if err := validateSeasonDates(input.StartsOn, input.EndsOn); err != nil {
		return nil, err
	}

	season := &models.Season{Name: input.Name, StartsOn: input.StartsOn, EndsOn: input.EndsOn}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, mapSeasonRepoError(err)
	}
	return season, nil
}

func (s *seasonService) GetByID(ctx context.Context, id int) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapSeasonRepoError(err)
	}
	return season, nil
}

func (s *seasonService) List(ctx context.Context) ([]models.Season, error) {
	return s.seasonRepo.List(ctx)
}

func (s *seasonService) Update(ctx context.Context, id int, input SeasonInput) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapSeasonRepoError(err)
	}

	if input.Name == "" {
		return nil, ErrSeasonNameRequired
	}
	if err := validateSeasonDates(input.StartsOn, input.EndsOn); err != nil {
		return nil, err
	}

	season.Name = input.Name
	season.StartsOn = input.StartsOn
	season.EndsOn = input.EndsOn

	if err := s.seasonRepo.Update(ctx, season); err != nil {
		return nil, mapSeasonRepoError(err)
	}
	return season, nil
}

func (s *seasonService) Delete(ctx context.Context, id int) error {
	return mapSeasonRepoError(s.seasonRepo.Delete(ctx, id))
}
