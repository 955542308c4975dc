package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/realtime"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/utils"
)

const minPlayersForRound = 2

type TournamentService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	Standings(ctx context.Context, view models.StandingsView) ([]models.StandingsRow, error)
	// SwissPairings computes the next round. It writes nothing: the caller
	// reports the bye (if any) and the results through MatchService.
	SwissPairings(ctx context.Context) (*models.Round, error)
	// DeletePlayers removes every player and match, clearing all byes.
	DeletePlayers(ctx context.Context) error
}

type tournamentService struct {
	db           *sql.DB
	playerRepo   repositories.PlayerRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
	generator    brackets.RoundGenerator
	publisher    RoundPublisher
	broadcaster  EventBroadcaster
	logger       *slog.Logger
}

// NewTournamentService wires the pairing flow. db may be nil, in which case
// reads are not wrapped in a snapshot transaction. publisher and broadcaster
// are optional.
func NewTournamentService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	generator brackets.RoundGenerator,
	publisher RoundPublisher,
	broadcaster EventBroadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:           db,
		playerRepo:   playerRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		generator:    generator,
		publisher:    publisher,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name = utils.NormalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, mapRepositoryError("register player", err)
	}

	s.logger.Info("player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	s.broadcast(realtime.EventPlayerJoined, player)
	return player, nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.playerRepo.Count(ctx, nil)
	if err != nil {
		return 0, mapRepositoryError("count players", err)
	}
	return count, nil
}

func (s *tournamentService) Standings(ctx context.Context, view models.StandingsView) ([]models.StandingsRow, error) {
	if !view.Valid() {
		return nil, fmt.Errorf("%w: unknown standings view %q", ErrInvalidInput, view)
	}
	rows, err := s.standingRepo.List(ctx, nil, view)
	if err != nil {
		return nil, mapRepositoryError(fmt.Sprintf("list %s standings", view), err)
	}
	return rows, nil
}

func (s *tournamentService) SwissPairings(ctx context.Context) (*models.Round, error) {
	var (
		count   int
		noBye   []models.StandingsRow
		seeding []models.StandingsRow
		pairs   []models.MatchPair
	)

	err := runInTx(ctx, s.db, snapshotTx, func(exec repositories.SQLExecutor) error {
		var err error
		if count, err = s.playerRepo.Count(ctx, exec); err != nil {
			return mapRepositoryError("count players", err)
		}
		if count < minPlayersForRound {
			return fmt.Errorf("%w: at least %d players are required to pair a round, found %d",
				ErrInvalidInput, minPlayersForRound, count)
		}
		if count%2 != 0 {
			if noBye, err = s.standingRepo.List(ctx, exec, models.ViewNoBye); err != nil {
				return mapRepositoryError("list bye candidates", err)
			}
		}
		if pairs, err = s.matchRepo.ListPairs(ctx, exec); err != nil {
			return mapRepositoryError("list match history", err)
		}
		if seeding, err = s.standingRepo.List(ctx, exec, models.ViewSeeding); err != nil {
			return mapRepositoryError("list seeding", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	byeRow, err := brackets.SelectBye(count, noBye)
	if err != nil {
		s.logger.Error("no player can take the bye", slog.Int("players", count))
		return nil, err
	}

	round := &models.Round{Number: nextRoundNumber(seeding)}
	params := brackets.PairingParams{
		Seeding: seeding,
		History: brackets.NewHistory(pairs),
	}
	if byeRow != nil {
		params.Excluded = &byeRow.ID
		round.Pairings = append(round.Pairings, models.Pairing{Player1: byeRow.Ref()})
	}

	pairings, err := s.generator.GenerateRound(ctx, params)
	if err != nil {
		if errors.Is(err, brackets.ErrUnsatisfiableRound) {
			s.logger.Error("round cannot be paired",
				slog.Int("round", round.Number),
				slog.Int("history_size", params.History.Len()),
				slog.Any("error", err),
			)
		}
		return nil, fmt.Errorf("pair round %d: %w", round.Number, err)
	}
	round.Pairings = append(round.Pairings, pairings...)

	attrs := []any{slog.Int("round", round.Number), slog.Int("pairings", len(round.Pairings))}
	if byeRow != nil {
		attrs = append(attrs, slog.Int("bye_player_id", byeRow.ID))
	}
	s.logger.Info("round paired", attrs...)

	if s.publisher != nil {
		if pubErr := s.publisher.Publish(ctx, round); pubErr != nil {
			s.logger.Warn("failed to publish round", slog.Int("round", round.Number), slog.Any("error", pubErr))
		}
	}
	return round, nil
}

func (s *tournamentService) DeletePlayers(ctx context.Context) error {
	err := runInTx(ctx, s.db, nil, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return mapRepositoryError("delete matches", err)
		}
		if err := s.playerRepo.DeleteAll(ctx, exec); err != nil {
			return mapRepositoryError("delete players", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Warn("all players and matches deleted")
	s.broadcast(realtime.EventTournamentReset, map[string]string{"scope": "players"})
	return nil
}

func (s *tournamentService) broadcast(eventType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(eventType, payload); err != nil {
		s.logger.Warn("failed to broadcast event", slog.String("type", eventType), slog.Any("error", err))
	}
}

// nextRoundNumber is one past the most games anyone has played (byes count).
func nextRoundNumber(rows []models.StandingsRow) int {
	played := 0
	for _, r := range rows {
		if r.Matches > played {
			played = r.Matches
		}
	}
	return played + 1
}
