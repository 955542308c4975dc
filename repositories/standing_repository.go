package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Dosada05/swiss-tournament/models"
)

type StandingRepository interface {
	List(ctx context.Context, exec SQLExecutor, view models.StandingsView) ([]models.StandingsRow, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

// scoreExpr mirrors models.SeedScore.
var scoreExpr = fmt.Sprintf("(%d * s.wins + %d * s.byes + %d * s.draws)",
	models.WinPoints, models.ByePoints, models.DrawPoints)

func (r *postgresStandingRepository) List(ctx context.Context, exec SQLExecutor, view models.StandingsView) ([]models.StandingsRow, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT s.id, s.name, s.wins, s.losses, s.draws, s.byes,
		       s.wins + s.losses + s.draws + s.byes AS matches,
		       `)
	queryBuilder.WriteString(scoreExpr)
	queryBuilder.WriteString(` AS score
		FROM standings s`)

	switch view {
	case models.ViewDefault, models.ViewFull:
		queryBuilder.WriteString(" ORDER BY s.wins DESC, s.byes DESC, s.draws DESC, s.id ASC")
	case models.ViewSeeding:
		queryBuilder.WriteString(" ORDER BY score DESC, s.id ASC")
	case models.ViewNoBye:
		queryBuilder.WriteString(" WHERE NOT s.bye ORDER BY score DESC, s.id ASC")
	default:
		return nil, fmt.Errorf("unsupported standings view %q", view)
	}

	rows, err := executor(r.db, exec).QueryContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s standings: %w", view, err)
	}
	defer rows.Close()

	standings := make([]models.StandingsRow, 0)
	for rows.Next() {
		var s models.StandingsRow
		if scanErr := rows.Scan(&s.ID, &s.Name, &s.Wins, &s.Losses, &s.Draws, &s.Byes, &s.Matches, &s.Score); scanErr != nil {
			return nil, fmt.Errorf("failed to scan standings row: %w", scanErr)
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standings rows iteration: %w", err)
	}
	return standings, nil
}
