package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type SwissGenerator struct{}

func NewSwissGenerator() RoundGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// GenerateRound pairs rank-adjacent players from best to worst. When the next
// best opponent has already been played, that opponent is held back and the
// following one is tried instead. Held players return to the front of the
// pool, in rank order, once the pairing is committed.
//
// The search is local: if the best remaining player has met everyone left in
// the pool the round fails with ErrUnsatisfiableRound and nothing is returned.
func (g *SwissGenerator) GenerateRound(ctx context.Context, params PairingParams) ([]models.Pairing, error) {
	pool := make([]models.StandingsRow, 0, len(params.Seeding))
	for _, row := range params.Seeding {
		if params.Excluded != nil && row.ID == *params.Excluded {
			continue
		}
		pool = append(pool, row)
	}

	if len(pool)%2 != 0 {
		return nil, fmt.Errorf("%w: %d players left to pair, need an even count", ErrUnsatisfiableRound, len(pool))
	}

	pairings := make([]models.Pairing, 0, len(pool)/2)
	next := make([]models.StandingsRow, 0, len(pool))

	for len(pool) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top := pool[0]
		// pool[1:idx] is the holding area once a candidate is found.
		idx := 1
		for idx < len(pool) && (pool[idx].ID == top.ID || params.History.HasPlayed(top.ID, pool[idx].ID)) {
			idx++
		}
		if idx == len(pool) {
			return nil, fmt.Errorf("%w: player %d (%s) has already played every remaining opponent",
				ErrUnsatisfiableRound, top.ID, top.Name)
		}

		opponent := pool[idx].Ref()
		pairings = append(pairings, models.Pairing{
			Player1: top.Ref(),
			Player2: &opponent,
		})

		next = next[:0]
		next = append(next, pool[1:idx]...)
		next = append(next, pool[idx+1:]...)
		pool, next = next, pool
	}

	return pairings, nil
}
