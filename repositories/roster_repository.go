package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garry1963/golf-society-manager-sub000/models"
)

// RosterRepository stores the membership snapshot taken when a
// tournament is created. The snapshot is immutable history: later
// changes to the member list never alter who belonged to a past event.
type RosterRepository interface {
	Snapshot(ctx context.Context, exec SQLExecutor, tournamentID int, memberIDs []int) error
	ListMembers(ctx context.Context, tournamentID int) ([]models.Member, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRosterRepository) Snapshot(ctx context.Context, exec SQLExecutor, tournamentID int, memberIDs []int) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_roster (tournament_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	for _, memberID := range memberIDs {
		if _, err := executor.ExecContext(ctx, query, tournamentID, memberID); err != nil {
			return fmt.Errorf("failed to snapshot member %d for tournament %d: %w", memberID, tournamentID, err)
		}
	}
	return nil
}

func (r *postgresRosterRepository) ListMembers(ctx context.Context, tournamentID int) ([]models.Member, error) {
	query := `
		SELECT m.id, m.first_name, m.last_name, m.email, m.handicap, m.avatar_key, m.joined_at
		FROM tournament_roster tr
		JOIN members m ON m.id = tr.member_id
		WHERE tr.tournament_id = $1
		ORDER BY m.last_name, m.first_name, m.id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
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
