package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrSeasonNotFound     = errors.New("season not found")
	ErrSeasonNameConflict = errors.New("season name conflict")
)

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	List(ctx context.Context) ([]models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	Delete(ctx context.Context, id int) error
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO seasons (name, starts_on, ends_on)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, s.Name, s.StartsOn, s.EndsOn).Scan(&s.ID)
	return handleSeasonError(err)
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `SELECT id, name, starts_on, ends_on FROM seasons WHERE id = $1`

	s := &models.Season{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.StartsOn, &s.EndsOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresSeasonRepository) List(ctx context.Context) ([]models.Season, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, starts_on, ends_on FROM seasons ORDER BY starts_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var s models.Season
		if scanErr := rows.Scan(&s.ID, &s.Name, &s.StartsOn, &s.EndsOn); scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *postgresSeasonRepository) Update(ctx context.Context, s *models.Season) error {
	query := `UPDATE seasons SET name = $1, starts_on = $2, ends_on = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, s.Name, s.StartsOn, s.EndsOn, s.ID)
	if err != nil {
		return handleSeasonError(err)
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func (r *postgresSeasonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSeasonNotFound)
}

func handleSeasonError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "seasons_name_key" {
			return ErrSeasonNameConflict
		}
	}
	return err
}
