package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// memStore is an in-memory stand-in for the three Postgres repositories with
// the same constraint behaviour. Setting failWith makes every call fail.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	players  []*models.Player
	matches  []models.Match
	failWith error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

type memPlayers struct{ *memStore }
type memMatches struct{ *memStore }
type memStandings struct{ *memStore }

func (s *memStore) repos() (repositories.PlayerRepository, repositories.MatchRepository, repositories.StandingRepository) {
	return memPlayers{s}, memMatches{s}, memStandings{s}
}

func (s *memStore) find(id int) *models.Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r memPlayers) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if player.Name == "" {
		return repositories.ErrPlayerNameInvalid
	}
	player.ID = r.nextID
	r.nextID++
	cp := *player
	r.players = append(r.players, &cp)
	return nil
}

func (r memPlayers) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	p := r.find(id)
	if p == nil {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPlayers) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	return len(r.players), nil
}

func (r memPlayers) MarkBye(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	p := r.find(id)
	if p == nil {
		return repositories.ErrPlayerNotFound
	}
	if p.Bye {
		return repositories.ErrPlayerByeAlreadySet
	}
	p.Bye = true
	return nil
}

func (r memPlayers) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.players = nil
	r.matches = nil
	return nil
}

func (r memMatches) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if match.WinnerID == match.LoserID {
		return repositories.ErrMatchSamePlayer
	}
	if r.find(match.WinnerID) == nil || r.find(match.LoserID) == nil {
		return repositories.ErrMatchPlayerInvalid
	}
	for _, m := range r.matches {
		if (m.WinnerID == match.WinnerID && m.LoserID == match.LoserID) ||
			(m.WinnerID == match.LoserID && m.LoserID == match.WinnerID) {
			return repositories.ErrMatchRepeated
		}
	}
	match.ID = len(r.matches) + 1
	r.matches = append(r.matches, *match)
	return nil
}

func (r memMatches) ListPairs(ctx context.Context, exec repositories.SQLExecutor) ([]models.MatchPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	pairs := make([]models.MatchPair, 0, len(r.matches))
	for _, m := range r.matches {
		pairs = append(pairs, models.MatchPair{A: m.WinnerID, B: m.LoserID})
	}
	return pairs, nil
}

func (r memMatches) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.matches = nil
	return nil
}

func (r memStandings) List(ctx context.Context, exec repositories.SQLExecutor, view models.StandingsView) ([]models.StandingsRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}

	rows := make([]models.StandingsRow, 0, len(r.players))
	for _, p := range r.players {
		if view == models.ViewNoBye && p.Bye {
			continue
		}
		row := models.StandingsRow{ID: p.ID, Name: p.Name}
		if p.Bye {
			row.Byes = 1
		}
		for _, m := range r.matches {
			switch {
			case m.Draw && (m.WinnerID == p.ID || m.LoserID == p.ID):
				row.Draws++
			case m.WinnerID == p.ID:
				row.Wins++
			case m.LoserID == p.ID:
				row.Losses++
			}
		}
		row.Matches = row.Wins + row.Losses + row.Draws + row.Byes
		row.Score = models.SeedScore(row.Wins, row.Byes, row.Draws)
		rows = append(rows, row)
	}

	switch view {
	case models.ViewDefault, models.ViewFull:
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.Byes != b.Byes {
				return a.Byes > b.Byes
			}
			if a.Draws != b.Draws {
				return a.Draws > b.Draws
			}
			return a.ID < b.ID
		})
	case models.ViewSeeding, models.ViewNoBye:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Score != rows[j].Score {
				return rows[i].Score > rows[j].Score
			}
			return rows[i].ID < rows[j].ID
		})
	default:
		return nil, errors.New("unsupported view")
	}
	return rows, nil
}

// recordingBroadcaster captures events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (b *recordingBroadcaster) Broadcast(eventType string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
	return b.err
}

func (b *recordingBroadcaster) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}
