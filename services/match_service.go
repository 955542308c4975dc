package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/realtime"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// MatchService records round results. Every operation validates its input
// before touching storage, so a rejected call leaves no trace.
type MatchService interface {
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	// ReportDraw records a drawn game; the order of the two ids is irrelevant.
	ReportDraw(ctx context.Context, playerA, playerB int) (*models.Match, error)
	ReportBye(ctx context.Context, playerID int) error
	ListHistory(ctx context.Context) ([]models.MatchPair, error)
	DeleteMatches(ctx context.Context) error
}

type matchService struct {
	playerRepo  repositories.PlayerRepository
	matchRepo   repositories.MatchRepository
	broadcaster EventBroadcaster
	logger      *slog.Logger
}

func NewMatchService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	broadcaster EventBroadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *matchService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	return s.record(ctx, winnerID, loserID, false)
}

func (s *matchService) ReportDraw(ctx context.Context, playerA, playerB int) (*models.Match, error) {
	return s.record(ctx, playerA, playerB, true)
}

func (s *matchService) record(ctx context.Context, firstID, secondID int, draw bool) (*models.Match, error) {
	if err := validateMatchPlayers(firstID, secondID); err != nil {
		return nil, err
	}

	match := &models.Match{WinnerID: firstID, LoserID: secondID, Draw: draw}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, mapRepositoryError(fmt.Sprintf("report match %d vs %d", firstID, secondID), err)
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", match.WinnerID),
		slog.Int("loser_id", match.LoserID),
		slog.Bool("draw", match.Draw),
	)
	s.broadcast(realtime.EventMatchReported, match)
	return match, nil
}

func (s *matchService) ReportBye(ctx context.Context, playerID int) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: player id must be positive, got %d", ErrInvalidInput, playerID)
	}
	if err := s.playerRepo.MarkBye(ctx, nil, playerID); err != nil {
		return mapRepositoryError(fmt.Sprintf("report bye for player %d", playerID), err)
	}

	s.logger.Info("bye reported", slog.Int("player_id", playerID))
	s.broadcast(realtime.EventMatchReported, map[string]interface{}{"player_id": playerID, "bye": true})
	return nil
}

func (s *matchService) ListHistory(ctx context.Context) ([]models.MatchPair, error) {
	pairs, err := s.matchRepo.ListPairs(ctx, nil)
	if err != nil {
		return nil, mapRepositoryError("list match history", err)
	}
	return pairs, nil
}

func (s *matchService) DeleteMatches(ctx context.Context) error {
	if err := s.matchRepo.DeleteAll(ctx, nil); err != nil {
		return mapRepositoryError("delete matches", err)
	}
	s.logger.Warn("all matches deleted")
	s.broadcast(realtime.EventTournamentReset, map[string]string{"scope": "matches"})
	return nil
}

func (s *matchService) broadcast(eventType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(eventType, payload); err != nil {
		s.logger.Warn("failed to broadcast event", slog.String("type", eventType), slog.Any("error", err))
	}
}

func validateMatchPlayers(a, b int) error {
	if a <= 0 || b <= 0 {
		return fmt.Errorf("%w: player ids must be positive, got %d and %d", ErrInvalidInput, a, b)
	}
	if a == b {
		return fmt.Errorf("%w: a player cannot play against themselves (id %d)", ErrInvalidInput, a)
	}
	return nil
}
