package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// RegisterPlayerHandler обрабатывает POST /players
func (h *TournamentHandler) RegisterPlayerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.tournamentService.RegisterPlayer(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CountPlayersHandler обрабатывает GET /players/count
func (h *TournamentHandler) CountPlayersHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.tournamentService.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeletePlayersHandler обрабатывает DELETE /players
func (h *TournamentHandler) DeletePlayersHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.DeletePlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StandingsHandler обрабатывает GET /standings?view=
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := models.ParseStandingsView(r.URL.Query().Get("view"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.tournamentService.Standings(r.Context(), view)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.StandingsRow{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"view": view, "standings": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateRoundHandler обрабатывает POST /rounds
func (h *TournamentHandler) GenerateRoundHandler(w http.ResponseWriter, r *http.Request) {
	round, err := h.tournamentService.SwissPairings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
