package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrTournamentNameConflict     = errors.New("tournament name conflict")
	ErrTournamentInvalidCourse    = errors.New("invalid course reference")
	ErrTournamentInvalidSeason    = errors.New("invalid season reference")
	ErrTournamentAlreadyCompleted = errors.New("tournament already completed")
)

type ListTournamentsFilter struct {
	SeasonID  *int
	CourseID  *int
	Completed *bool
	Limit     int
	Offset    int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	MarkCompleted(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context, completed *bool) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `id, name, course_id, season_id, format, starts_on, ends_on, rounds, completed, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, course_id, season_id, format, starts_on, ends_on, rounds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, completed, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.CourseID, t.SeasonID, t.Format, t.StartsOn, t.EndsOn, t.Rounds,
	).Scan(&t.ID, &t.Completed, &t.CreatedAt)

	return handleTournamentError(err)
}

func scanTournament(row interface{ Scan(...interface{}) error }, t *models.Tournament) error {
	return row.Scan(
		&t.ID, &t.Name, &t.CourseID, &t.SeasonID, &t.Format,
		&t.StartsOn, &t.EndsOn, &t.Rounds, &t.Completed, &t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	if err := scanTournament(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.SeasonID != nil {
		query += fmt.Sprintf(" AND season_id = $%d", argID)
		args = append(args, *filter.SeasonID)
		argID++
	}
	if filter.CourseID != nil {
		query += fmt.Sprintf(" AND course_id = $%d", argID)
		args = append(args, *filter.CourseID)
		argID++
	}
	if filter.Completed != nil {
		query += fmt.Sprintf(" AND completed = $%d", argID)
		args = append(args, *filter.Completed)
		argID++
	}

	query += " ORDER BY starts_on DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			course_id = $2,
			season_id = $3,
			format = $4,
			starts_on = $5,
			ends_on = $6,
			rounds = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.CourseID, t.SeasonID, t.Format, t.StartsOn, t.EndsOn, t.Rounds, t.ID,
	)
	if err != nil {
		return handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// MarkCompleted flips completed exactly once. The WHERE clause is the
// finalize guard at the storage level: a second call affects no rows
// and reports ErrTournamentAlreadyCompleted.
func (r *postgresTournamentRepository) MarkCompleted(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET completed = TRUE WHERE id = $1 AND completed = FALSE`
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		var exists bool
		if scanErr := executor.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tournaments WHERE id = $1)`, id).Scan(&exists); scanErr != nil {
			return scanErr
		}
		if !exists {
			return ErrTournamentNotFound
		}
		return ErrTournamentAlreadyCompleted
	}
	return nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Count(ctx context.Context, completed *bool) (int, error) {
	query := `SELECT COUNT(*) FROM tournaments`
	args := []interface{}{}
	if completed != nil {
		query += ` WHERE completed = $1`
		args = append(args, *completed)
	}
	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "tournaments_course_id_fkey":
				return ErrTournamentInvalidCourse
			case "tournaments_season_id_fkey":
				return ErrTournamentInvalidSeason
			}
		}
	}
	return err
}
