package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerNameInvalid   = errors.New("player name is invalid")
	ErrPlayerByeAlreadySet = errors.New("player has already received a bye")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	// MarkBye sets the bye flag. It fails with ErrPlayerByeAlreadySet if the
	// flag is already set, so a bye is never granted twice.
	MarkBye(ctx context.Context, exec SQLExecutor, id int) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `INSERT INTO players (name) VALUES ($1) RETURNING id, bye, created_at`
	err := executor(r.db, exec).QueryRowContext(ctx, query, player.Name).
		Scan(&player.ID, &player.Bye, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := asPQError(err); ok && pqErr.Code == pqCheckViolation {
			return ErrPlayerNameInvalid
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := `SELECT id, name, bye, created_at FROM players WHERE id = $1`
	player := &models.Player{}
	err := executor(r.db, exec).QueryRowContext(ctx, query, id).
		Scan(&player.ID, &player.Name, &player.Bye, &player.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player by id %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var count int
	if err := executor(r.db, exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *postgresPlayerRepository) MarkBye(ctx context.Context, exec SQLExecutor, id int) error {
	ex := executor(r.db, exec)
	result, err := ex.ExecContext(ctx, `UPDATE players SET bye = TRUE WHERE id = $1 AND NOT bye`, id)
	if err != nil {
		return fmt.Errorf("failed to set bye for player %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrPlayerByeAlreadySet); err != nil {
		if !errors.Is(err, ErrPlayerByeAlreadySet) {
			return err
		}
		// Ничего не обновлено: либо игрока нет, либо bye уже был.
		if _, getErr := r.GetByID(ctx, ex, id); getErr != nil {
			return getErr
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	return nil
}
