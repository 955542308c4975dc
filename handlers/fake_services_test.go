package handlers

import (
	"context"

	"github.com/Dosada05/swiss-tournament/models"
)

type fakeTournamentService struct {
	player    *models.Player
	count     int
	standings []models.StandingsRow
	round     *models.Round
	err       error

	gotName string
	gotView models.StandingsView
}

func (f *fakeTournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	f.gotName = name
	return f.player, f.err
}

func (f *fakeTournamentService) CountPlayers(ctx context.Context) (int, error) {
	return f.count, f.err
}

func (f *fakeTournamentService) Standings(ctx context.Context, view models.StandingsView) ([]models.StandingsRow, error) {
	f.gotView = view
	return f.standings, f.err
}

func (f *fakeTournamentService) SwissPairings(ctx context.Context) (*models.Round, error) {
	return f.round, f.err
}

func (f *fakeTournamentService) DeletePlayers(ctx context.Context) error {
	return f.err
}

type fakeMatchService struct {
	match *models.Match
	pairs []models.MatchPair
	err   error

	gotIDs []int
}

func (f *fakeMatchService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	f.gotIDs = []int{winnerID, loserID}
	return f.match, f.err
}

func (f *fakeMatchService) ReportDraw(ctx context.Context, playerA, playerB int) (*models.Match, error) {
	f.gotIDs = []int{playerA, playerB}
	return f.match, f.err
}

func (f *fakeMatchService) ReportBye(ctx context.Context, playerID int) error {
	f.gotIDs = []int{playerID}
	return f.err
}

func (f *fakeMatchService) ListHistory(ctx context.Context) ([]models.MatchPair, error) {
	return f.pairs, f.err
}

func (f *fakeMatchService) DeleteMatches(ctx context.Context) error {
	return f.err
}

type fakeAuthService struct {
	password string
	err      error
}

func (f *fakeAuthService) VerifyOrganizer(ctx context.Context, password string) error {
	if password != f.password {
		return f.err
	}
	return nil
}
