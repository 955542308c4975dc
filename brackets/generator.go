package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrUnsatisfiableRound  = errors.New("round cannot be paired without a repeat match")
	ErrNoByeEligiblePlayer = errors.New("odd player count but every player already had a bye")
)

type PairingParams struct {
	// Seeding is ordered best first and must not contain this round's bye.
	Seeding []models.StandingsRow
	History *History
	// Excluded, when set, is dropped from Seeding before pairing.
	Excluded *int
}

type RoundGenerator interface {
	GenerateRound(ctx context.Context, params PairingParams) ([]models.Pairing, error)

	GetName() string
}
