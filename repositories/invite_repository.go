package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garry1963/golf-society-manager-sub000/models"
)

var ErrInviteNotFound = errors.New("invite not found")

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	Delete(ctx context.Context, id int) error
}

type postgresInviteRepository struct {
	db *sql.DB
}

func NewPostgresInviteRepository(db *sql.DB) InviteRepository {
	return &postgresInviteRepository{db: db}
}

func (r *postgresInviteRepository) Create(ctx context.Context, inv *models.Invite) error {
	query := `
		INSERT INTO invites (email, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query, inv.Email, inv.Token, inv.ExpiresAt).Scan(&inv.ID, &inv.CreatedAt)
}

func (r *postgresInviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `SELECT id, email, token, expires_at, created_at FROM invites WHERE token = $1`

	inv := &models.Invite{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&inv.ID, &inv.Email, &inv.Token, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *postgresInviteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrInviteNotFound)
}
