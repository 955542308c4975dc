package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store       *memStore
	broadcaster *recordingBroadcaster
	tournament  TournamentService
	matches     MatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	players, matches, standings := store.repos()
	b := &recordingBroadcaster{}
	logger := slog.Default()
	return &testEnv{
		store:       store,
		broadcaster: b,
		tournament: NewTournamentService(nil, players, matches, standings,
			brackets.NewSwissGenerator(), NewRoundPublisher(nil, b, logger), b, logger),
		matches: NewMatchService(players, matches, b, logger),
	}
}

func (e *testEnv) register(t *testing.T, names ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(names))
	for _, n := range names {
		p, err := e.tournament.RegisterPlayer(context.Background(), n)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func roundIDs(round *models.Round) [][2]int {
	out := make([][2]int, 0, len(round.Pairings))
	for _, p := range round.Pairings {
		second := 0
		if p.Player2 != nil {
			second = p.Player2.ID
		}
		out = append(out, [2]int{p.Player1.ID, second})
	}
	return out
}

func TestRegisterPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.tournament.RegisterPlayer(ctx, "  Emil   Jannings ")
	require.NoError(t, err)
	assert.Equal(t, "Emil Jannings", p.Name)
	assert.Positive(t, p.ID)

	_, err = env.tournament.RegisterPlayer(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	count, err := env.tournament.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{realtime.EventPlayerJoined}, env.broadcaster.Events())
}

func TestSwissPairings_Scenarios(t *testing.T) {
	ctx := context.Background()

	// Scores 9, 6, 3, 0 for players 1..4. Wins are recorded against ids that
	// were never registered, so they count for the winner only.
	seed := func(t *testing.T, env *testEnv) {
		env.register(t, "P1", "P2", "P3", "P4")
		ghost := 1000
		for id, wins := range map[int]int{1: 3, 2: 2, 3: 1} {
			for i := 0; i < wins; i++ {
				env.store.matches = append(env.store.matches, models.Match{WinnerID: id, LoserID: ghost})
				ghost++
			}
		}
	}

	t.Run("no history", func(t *testing.T) {
		env := newTestEnv(t)
		seed(t, env)
		round, err := env.tournament.SwissPairings(ctx)
		require.NoError(t, err)
		assert.Equal(t, [][2]int{{1, 2}, {3, 4}}, roundIDs(round))
	})

	t.Run("rematch avoided", func(t *testing.T) {
		env := newTestEnv(t)
		seed(t, env)
		env.store.matches = append(env.store.matches, models.Match{WinnerID: 2, LoserID: 1, Draw: true})
		round, err := env.tournament.SwissPairings(ctx)
		require.NoError(t, err)
		assert.Equal(t, [][2]int{{1, 3}, {2, 4}}, roundIDs(round))
	})
}

func TestSwissPairings_OddCountGivesByeToLowest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "P1", "P2", "P3", "P4", "P5")

	// P1 beats P2, P3 beats P4; P5 had last round's bye already.
	_, err := env.matches.ReportMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	_, err = env.matches.ReportMatch(ctx, ids[2], ids[3])
	require.NoError(t, err)
	require.NoError(t, env.matches.ReportBye(ctx, ids[4]))

	round, err := env.tournament.SwissPairings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, round.Number)

	bye, ok := round.Bye()
	require.True(t, ok)
	// Seeding: P1 3, P3 3, P5 2, P2 0, P4 0. P5 is excluded, P4 is last.
	assert.Equal(t, ids[3], bye.Player1.ID)
	assert.True(t, round.Pairings[0].IsBye(), "bye pairing comes first")
	assert.Equal(t, [][2]int{{ids[3], 0}, {ids[0], ids[2]}, {ids[4], ids[1]}}, roundIDs(round))
}

func TestSwissPairings_FivePlayersFreshTournament(t *testing.T) {
	env := newTestEnv(t)
	ids := env.register(t, "P1", "P2", "P3", "P4", "P5")

	round, err := env.tournament.SwissPairings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, [][2]int{{ids[4], 0}, {ids[0], ids[1]}, {ids[2], ids[3]}}, roundIDs(round))
	assert.Contains(t, env.broadcaster.Events(), realtime.EventRoundPaired)
}

func TestSwissPairings_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("fewer than two players", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "Solo")
		_, err := env.tournament.SwissPairings(ctx)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("every player already had a bye", func(t *testing.T) {
		env := newTestEnv(t)
		ids := env.register(t, "A", "B", "C")
		for _, id := range ids {
			require.NoError(t, env.matches.ReportBye(ctx, id))
		}
		_, err := env.tournament.SwissPairings(ctx)
		assert.ErrorIs(t, err, brackets.ErrNoByeEligiblePlayer)
	})

	t.Run("everyone has met", func(t *testing.T) {
		env := newTestEnv(t)
		ids := env.register(t, "A", "B")
		_, err := env.matches.ReportDraw(ctx, ids[1], ids[0])
		require.NoError(t, err)
		round, err := env.tournament.SwissPairings(ctx)
		assert.ErrorIs(t, err, brackets.ErrUnsatisfiableRound)
		assert.Nil(t, round)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		env := newTestEnv(t)
		env.register(t, "A", "B")
		boom := errors.New("connection reset")
		env.store.failWith = boom
		_, err := env.tournament.SwissPairings(ctx)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSwissPairings_PublishFailureDoesNotFailRound(t *testing.T) {
	env := newTestEnv(t)
	env.broadcaster.err = errors.New("hub gone")
	env.register(t, "A", "B")

	round, err := env.tournament.SwissPairings(context.Background())
	require.NoError(t, err)
	assert.Len(t, round.Pairings, 1)
}

func TestStandings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C")

	_, err := env.matches.ReportDraw(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.NoError(t, env.matches.ReportBye(ctx, ids[2]))

	rows, err := env.tournament.Standings(ctx, models.ViewSeeding)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ids[2], rows[0].ID)
	assert.Equal(t, 2, rows[0].Score)

	noBye, err := env.tournament.Standings(ctx, models.ViewNoBye)
	require.NoError(t, err)
	assert.Len(t, noBye, 2)

	_, err = env.tournament.Standings(ctx, models.StandingsView("wins"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreIndependentOfRecordingOrder(t *testing.T) {
	ctx := context.Background()
	type op func(env *testEnv, ids []int) error

	win := func(opp int) op {
		return func(env *testEnv, ids []int) error {
			_, err := env.matches.ReportMatch(ctx, ids[0], ids[opp])
			return err
		}
	}
	draw := func(opp int) op {
		return func(env *testEnv, ids []int) error {
			_, err := env.matches.ReportDraw(ctx, ids[opp], ids[0])
			return err
		}
	}
	bye := func(env *testEnv, ids []int) error { return env.matches.ReportBye(ctx, ids[0]) }

	orders := [][]op{
		{win(1), win(2), draw(3), bye},
		{bye, draw(3), win(2), win(1)},
		{draw(3), bye, win(1), win(2)},
	}

	for i, ops := range orders {
		t.Run(fmt.Sprintf("order %d", i), func(t *testing.T) {
			env := newTestEnv(t)
			ids := env.register(t, "Hero", "B", "C", "D")
			for _, o := range ops {
				require.NoError(t, o(env, ids))
			}
			rows, err := env.tournament.Standings(ctx, models.ViewSeeding)
			require.NoError(t, err)
			assert.Equal(t, ids[0], rows[0].ID)
			assert.Equal(t, 3*2+2*1+1*1, rows[0].Score)
			assert.Equal(t, 4, rows[0].Matches)
		})
	}
}

func TestDeletePlayersClearsByes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := env.register(t, "A", "B", "C")
	require.NoError(t, env.matches.ReportBye(ctx, ids[0]))

	require.NoError(t, env.tournament.DeletePlayers(ctx))
	count, err := env.tournament.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	ids = env.register(t, "A", "B", "C")
	round, err := env.tournament.SwissPairings(ctx)
	require.NoError(t, err)
	bye, ok := round.Bye()
	require.True(t, ok)
	assert.Equal(t, ids[2], bye.Player1.ID)
	assert.Contains(t, env.broadcaster.Events(), realtime.EventTournamentReset)
}

func TestSwissPairings_FifteenPlayerSimulation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	names := make([]string, 15)
	for i := range names {
		names[i] = fmt.Sprintf("Player %02d", i+1)
	}
	ids := env.register(t, names...)

	met := map[[2]int]bool{}
	hadBye := map[int]bool{}

	for r := 1; r <= 4; r++ {
		round, err := env.tournament.SwissPairings(ctx)
		require.NoError(t, err, "round %d", r)
		assert.Equal(t, r, round.Number)

		seen := map[int]int{}
		byes := 0
		for _, p := range round.Pairings {
			seen[p.Player1.ID]++
			if p.IsBye() {
				byes++
				assert.False(t, hadBye[p.Player1.ID], "player %d got a second bye", p.Player1.ID)
				continue
			}
			seen[p.Player2.ID]++
			key := [2]int{min(p.Player1.ID, p.Player2.ID), max(p.Player1.ID, p.Player2.ID)}
			assert.False(t, met[key], "rematch %v in round %d", key, r)
		}
		assert.Equal(t, 1, byes, "round %d", r)
		require.Len(t, seen, len(ids))
		for _, id := range ids {
			assert.Equal(t, 1, seen[id], "player %d in round %d", id, r)
		}

		k := 0
		for _, p := range round.Pairings {
			if p.IsBye() {
				require.NoError(t, env.matches.ReportBye(ctx, p.Player1.ID))
				hadBye[p.Player1.ID] = true
				continue
			}
			if k%3 == 2 {
				_, err = env.matches.ReportDraw(ctx, p.Player2.ID, p.Player1.ID)
			} else {
				_, err = env.matches.ReportMatch(ctx, p.Player1.ID, p.Player2.ID)
			}
			require.NoError(t, err)
			met[[2]int{min(p.Player1.ID, p.Player2.ID), max(p.Player1.ID, p.Player2.ID)}] = true
			k++
		}
	}
	assert.Len(t, hadBye, 4)
}
