package brackets

import (
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

// SelectBye picks the player who sits out this round. For an even playerCount
// it returns nil. Otherwise it returns the lowest ranked row of noBye (ordered
// best first) that has not had a bye yet, so byes never favour the leaders.
func SelectBye(playerCount int, noBye []models.StandingsRow) (*models.StandingsRow, error) {
	if playerCount%2 == 0 {
		return nil, nil
	}
	for i := len(noBye) - 1; i >= 0; i-- {
		if noBye[i].Byes == 0 {
			row := noBye[i]
			return &row, nil
		}
	}
	return nil, fmt.Errorf("%w (%d players registered)", ErrNoByeEligiblePlayer, playerCount)
}
