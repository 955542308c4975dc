package models

import "time"

// Player представляет зарегистрированного участника турнира.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bye       bool      `json:"bye" db:"bye"` // true once the player has sat out a round
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerRef is the slim projection of a player used inside pairings.
type PlayerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (p *Player) Ref() PlayerRef {
	return PlayerRef{ID: p.ID, Name: p.Name}
}
