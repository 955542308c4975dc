package models

import "encoding/json"

// Pairing matches two players for a round. Player2 is nil for a bye.
type Pairing struct {
	Player1 PlayerRef  `json:"player1"`
	Player2 *PlayerRef `json:"player2"`
}

func (p Pairing) IsBye() bool {
	return p.Player2 == nil
}

// Has reports whether the player takes part in this pairing.
func (p Pairing) Has(playerID int) bool {
	if p.Player1.ID == playerID {
		return true
	}
	return p.Player2 != nil && p.Player2.ID == playerID
}

func (p Pairing) MarshalJSON() ([]byte, error) {
	type alias Pairing
	return json.Marshal(struct {
		alias
		Bye bool `json:"bye"`
	}{alias: alias(p), Bye: p.IsBye()})
}

// Round is the full set of pairings for one round of the tournament.
type Round struct {
	Number   int       `json:"number"`
	Pairings []Pairing `json:"pairings"`
}

// Bye returns the bye pairing of the round, if any.
func (r *Round) Bye() (Pairing, bool) {
	for _, p := range r.Pairings {
		if p.IsBye() {
			return p, true
		}
	}
	return Pairing{}, false
}
