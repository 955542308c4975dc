package models

import "time"

// Match is an append-only record of a completed game. When Draw is true the
// winner/loser labels carry no meaning beyond "the two participants".
type Match struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner_id" db:"winner_id"`
	LoserID   int       `json:"loser_id" db:"loser_id"`
	Draw      bool      `json:"draw" db:"draw"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchPair is the (winner, loser) projection of a Match used as pairing history.
type MatchPair struct {
	A int `json:"player1_id"`
	B int `json:"player2_id"`
}
