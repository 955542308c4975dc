package models

import "fmt"

// Веса для рейтинга посева.
const (
	WinPoints  = 3
	ByePoints  = 2
	DrawPoints = 1
)

// StandingsView is the closed set of orderings a standings provider supports.
type StandingsView string

const (
	// ViewDefault orders by wins, then byes, then draws.
	ViewDefault StandingsView = "default"
	// ViewFull uses the default order; callers render every counter.
	ViewFull StandingsView = "full"
	// ViewSeeding orders by weighted seed score.
	ViewSeeding StandingsView = "seeding"
	// ViewNoBye is ViewSeeding restricted to players without a bye.
	ViewNoBye StandingsView = "nobyes"
)

func (v StandingsView) Valid() bool {
	switch v {
	case ViewDefault, ViewFull, ViewSeeding, ViewNoBye:
		return true
	}
	return false
}

// ParseStandingsView validates a view name coming from outside the process.
// An empty string selects ViewDefault.
func ParseStandingsView(s string) (StandingsView, error) {
	if s == "" {
		return ViewDefault, nil
	}
	v := StandingsView(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown standings view %q", s)
	}
	return v, nil
}

// StandingsRow is a read-only per-player projection recomputed from match history.
type StandingsRow struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Wins    int    `json:"wins" db:"wins"`
	Losses  int    `json:"losses" db:"losses"`
	Draws   int    `json:"draws" db:"draws"`
	Byes    int    `json:"byes" db:"byes"`
	Matches int    `json:"matches" db:"matches"`
	Score   int    `json:"score" db:"score"`
}

func (r *StandingsRow) Ref() PlayerRef {
	return PlayerRef{ID: r.ID, Name: r.Name}
}

// SeedScore returns the weighted score used for seeding:
// 3 per win, 2 per bye, 1 per draw.
func SeedScore(wins, byes, draws int) int {
	return WinPoints*wins + ByePoints*byes + DrawPoints*draws
}
