package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberEmailConflict = errors.New("member email conflict")
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id int) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	UpdateHandicap(ctx context.Context, exec SQLExecutor, id int, handicap float64) error
	UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	AppendHistory(ctx context.Context, exec SQLExecutor, entry *models.HandicapHistory) error
	ListHistory(ctx context.Context, memberID int) ([]models.HandicapHistory, error)
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMemberRepository) Create(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (first_name, last_name, email, handicap, avatar_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, joined_at`

	err := r.db.QueryRowContext(ctx, query,
		m.FirstName, m.LastName, m.Email, m.Handicap, m.AvatarKey,
	).Scan(&m.ID, &m.JoinedAt)

	return handleMemberError(err)
}

func (r *postgresMemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, handicap, avatar_key, joined_at
		FROM members
		WHERE id = $1`

	m := &models.Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Handicap, &m.AvatarKey, &m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMemberRepository) List(ctx context.Context) ([]models.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, handicap, avatar_key, joined_at
		FROM members
		ORDER BY last_name, first_name, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.Member, 0)
	for rows.Next() {
		var m models.Member
		if scanErr := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Handicap, &m.AvatarKey, &m.JoinedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresMemberRepository) Update(ctx context.Context, m *models.Member) error {
	query := `
		UPDATE members SET
			first_name = $1,
			last_name = $2,
			email = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, m.FirstName, m.LastName, m.Email, m.ID)
	if err != nil {
		return handleMemberError(err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) UpdateHandicap(ctx context.Context, exec SQLExecutor, id int, handicap float64) error {
	executor := r.getExecutor(exec)
	query := `UPDATE members SET handicap = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, handicap, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	query := `UPDATE members SET avatar_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, avatarKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	return count, err
}

func (r *postgresMemberRepository) AppendHistory(ctx context.Context, exec SQLExecutor, entry *models.HandicapHistory) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO handicap_history (member_id, recorded_at, old_handicap, new_handicap, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return executor.QueryRowContext(ctx, query,
		entry.MemberID, entry.RecordedAt, entry.OldHandicap, entry.NewHandicap, entry.Reason,
	).Scan(&entry.ID)
}

func (r *postgresMemberRepository) ListHistory(ctx context.Context, memberID int) ([]models.HandicapHistory, error) {
	query := `
		SELECT id, member_id, recorded_at, old_handicap, new_handicap, reason
		FROM handicap_history
		WHERE member_id = $1
		ORDER BY recorded_at, id`

	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.HandicapHistory, 0)
	for rows.Next() {
		var e models.HandicapHistory
		if scanErr := rows.Scan(
			&e.ID, &e.MemberID, &e.RecordedAt, &e.OldHandicap, &e.NewHandicap, &e.Reason,
		); scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func handleMemberError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "members_email_key" {
			return ErrMemberEmailConflict
		}
	}
	return err
}
