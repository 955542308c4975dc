package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации: fewer than two players, bad ids, empty names.
	ErrInvalidInput = errors.New("invalid input")

	ErrPlayerNotFound = errors.New("player not found")

	// Конфликты с уже записанной историей турнира.
	ErrRematch            = errors.New("players have already met in this tournament")
	ErrByeAlreadyAssigned = errors.New("player has already received a bye")

	ErrInvalidCredentials = errors.New("invalid organizer password")
)

// mapRepositoryError translates storage sentinels into service errors and
// wraps everything else with the operation name.
func mapRepositoryError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound),
		errors.Is(err, repositories.ErrMatchPlayerInvalid):
		return fmt.Errorf("%s: %w", op, ErrPlayerNotFound)
	case errors.Is(err, repositories.ErrMatchRepeated):
		return fmt.Errorf("%s: %w", op, ErrRematch)
	case errors.Is(err, repositories.ErrPlayerByeAlreadySet):
		return fmt.Errorf("%s: %w", op, ErrByeAlreadyAssigned)
	case errors.Is(err, repositories.ErrMatchSamePlayer),
		errors.Is(err, repositories.ErrPlayerNameInvalid):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
