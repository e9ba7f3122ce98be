package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrScoreNotFound          = errors.New("score not found")
	ErrScoreInvalidTournament = errors.New("score tournament reference invalid")
	ErrScoreInvalidMember     = errors.New("score member reference invalid")
)

type ScoreRepository interface {
	Upsert(ctx context.Context, score *models.Score) error
	GetByTournamentAndMember(ctx context.Context, tournamentID, memberID int) (*models.Score, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error)
	ListByTournaments(ctx context.Context, tournamentIDs []int) (map[int][]models.Score, error)
	Delete(ctx context.Context, tournamentID, memberID int) error
	CountAll(ctx context.Context) (int, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func holeScoresArray(holeScores []int) interface{} {
	if holeScores == nil {
		return nil
	}
	arr := make(pq.Int64Array, len(holeScores))
	for i, v := range holeScores {
		arr[i] = int64(v)
	}
	return arr
}

func holeScoresSlice(arr pq.Int64Array) []int {
	if arr == nil {
		return nil
	}
	scores := make([]int, len(arr))
	for i, v := range arr {
		scores[i] = int(v)
	}
	return scores
}

// Upsert inserts or replaces the single score a member holds for a
// tournament, keyed by the (tournament, member) pair.
func (r *postgresScoreRepository) Upsert(ctx context.Context, s *models.Score) error {
	query := `
		INSERT INTO scores (tournament_id, member_id, gross, points, hole_scores, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT ON CONSTRAINT scores_tournament_member_key DO UPDATE SET
			gross = EXCLUDED.gross,
			points = EXCLUDED.points,
			hole_scores = EXCLUDED.hole_scores,
			updated_at = now()
		RETURNING id, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		s.TournamentID, s.MemberID, s.Gross, s.Points, holeScoresArray(s.HoleScores),
	).Scan(&s.ID, &s.UpdatedAt)

	return handleScoreError(err)
}

func (r *postgresScoreRepository) GetByTournamentAndMember(ctx context.Context, tournamentID, memberID int) (*models.Score, error) {
	query := `
		SELECT id, tournament_id, member_id, gross, points, hole_scores, updated_at
		FROM scores
		WHERE tournament_id = $1 AND member_id = $2`

	s := &models.Score{}
	var holes pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, tournamentID, memberID).Scan(
		&s.ID, &s.TournamentID, &s.MemberID, &s.Gross, &s.Points, &holes, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	s.HoleScores = holeScoresSlice(holes)
	return s, nil
}

// ListByTournament returns scores in id (creation) order. Placement
// sorts downstream are stable, so this order is what breaks ties.
func (r *postgresScoreRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error) {
	query := `
		SELECT id, tournament_id, member_id, gross, points, hole_scores, updated_at
		FROM scores
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScores(rows)
}

func (r *postgresScoreRepository) ListByTournaments(ctx context.Context, tournamentIDs []int) (map[int][]models.Score, error) {
	grouped := make(map[int][]models.Score, len(tournamentIDs))
	if len(tournamentIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, tournament_id, member_id, gross, points, hole_scores, updated_at
		FROM scores
		WHERE tournament_id = ANY($1)
		ORDER BY id`

	ids := make(pq.Int64Array, len(tournamentIDs))
	for i, id := range tournamentIDs {
		ids[i] = int64(id)
	}

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores, err := collectScores(rows)
	if err != nil {
		return nil, err
	}
	for _, s := range scores {
		grouped[s.TournamentID] = append(grouped[s.TournamentID], s)
	}
	return grouped, nil
}

func (r *postgresScoreRepository) Delete(ctx context.Context, tournamentID, memberID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scores WHERE tournament_id = $1 AND member_id = $2`, tournamentID, memberID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

func (r *postgresScoreRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&count)
	return count, err
}

func collectScores(rows *sql.Rows) ([]models.Score, error) {
	scores := make([]models.Score, 0)
	for rows.Next() {
		var s models.Score
		var holes pq.Int64Array
		if scanErr := rows.Scan(
			&s.ID, &s.TournamentID, &s.MemberID, &s.Gross, &s.Points, &holes, &s.UpdatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		s.HoleScores = holeScoresSlice(holes)
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func handleScoreError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "scores_tournament_id_fkey":
			return ErrScoreInvalidTournament
		case "scores_member_id_fkey":
			return ErrScoreInvalidMember
		}
	}
	return err
}
