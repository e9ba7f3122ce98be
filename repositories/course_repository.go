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
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNameConflict = errors.New("course name conflict")
	ErrCourseInUse        = errors.New("course is referenced by tournaments")
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	ReplaceHoles(ctx context.Context, courseID int, holes []models.Hole) error
	ListHoles(ctx context.Context, courseID int) ([]models.Hole, error)
}

type postgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(db *sql.DB) CourseRepository {
	return &postgresCourseRepository{db: db}
}

func (r *postgresCourseRepository) Create(ctx context.Context, c *models.Course) error {
	query := `
		INSERT INTO courses (name, par, photo_key)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Par, c.PhotoKey).Scan(&c.ID)
	return handleCourseError(err)
}

func (r *postgresCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `SELECT id, name, par, photo_key FROM courses WHERE id = $1`

	c := &models.Course{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Par, &c.PhotoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, par, photo_key FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if scanErr := rows.Scan(&c.ID, &c.Name, &c.Par, &c.PhotoKey); scanErr != nil {
			return nil, scanErr
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *postgresCourseRepository) Update(ctx context.Context, c *models.Course) error {
	query := `UPDATE courses SET name = $1, par = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Par, c.ID)
	if err != nil {
		return handleCourseError(err)
	}
	return checkAffectedRows(result, ErrCourseNotFound)
}

func (r *postgresCourseRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE courses SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCourseNotFound)
}

func (r *postgresCourseRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return handleCourseError(err)
	}
	return checkAffectedRows(result, ErrCourseNotFound)
}

func (r *postgresCourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}

// ReplaceHoles swaps the full hole table of a course in one
// transaction. Partial hole data is allowed; the scoring engine
// defaults whatever is missing.
func (r *postgresCourseRepository) ReplaceHoles(ctx context.Context, courseID int, holes []models.Hole) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin holes transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holes WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("failed to clear holes for course %d: %w", courseID, err)
	}

	query := `INSERT INTO holes (course_id, number, par, stroke_index) VALUES ($1, $2, $3, $4)`
	for _, h := range holes {
		if _, err := tx.ExecContext(ctx, query, courseID, h.Number, h.Par, h.StrokeIndex); err != nil {
			return fmt.Errorf("failed to insert hole %d for course %d: %w", h.Number, courseID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresCourseRepository) ListHoles(ctx context.Context, courseID int) ([]models.Hole, error) {
	query := `
		SELECT id, course_id, number, par, stroke_index
		FROM holes
		WHERE course_id = $1
		ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holes := make([]models.Hole, 0, models.HolesPerRound)
	for rows.Next() {
		var h models.Hole
		if scanErr := rows.Scan(&h.ID, &h.CourseID, &h.Number, &h.Par, &h.StrokeIndex); scanErr != nil {
			return nil, scanErr
		}
		holes = append(holes, h)
	}
	return holes, rows.Err()
}

func handleCourseError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "courses_name_key" {
				return ErrCourseNameConflict
			}
		case "23503":
			return ErrCourseInUse
		}
	}
	return err
}
