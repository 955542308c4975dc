package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
	ErrMatchSamePlayer    = errors.New("match requires two different players")
	ErrMatchRepeated      = errors.New("these players have already met")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// ListPairs returns the (winner, loser) ids of every recorded match,
	// draws included.
	ListPairs(ctx context.Context, exec SQLExecutor) ([]models.MatchPair, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (winner_id, loser_id, draw)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, match.WinnerID, match.LoserID, match.Draw).
		Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) ListPairs(ctx context.Context, exec SQLExecutor) ([]models.MatchPair, error) {
	rows, err := executor(r.db, exec).QueryContext(ctx, `SELECT winner_id, loser_id FROM matches ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	pairs := make([]models.MatchPair, 0)
	for rows.Next() {
		var p models.MatchPair
		if scanErr := rows.Scan(&p.A, &p.B); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		pairs = append(pairs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return pairs, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch {
		case pqErr.Code == pqForeignKeyViolation:
			return ErrMatchPlayerInvalid
		case pqErr.Constraint == "matches_distinct_players":
			return ErrMatchSamePlayer
		case pqErr.Constraint == "matches_pair_key", pqErr.Code == pqUniqueViolation:
			return ErrMatchRepeated
		}
	}
	return fmt.Errorf("failed to insert match: %w", err)
}
