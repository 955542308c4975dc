package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

type reportDrawInput struct {
	Player1ID int `json:"player1_id"`
	Player2ID int `json:"player2_id"`
}

// ReportMatchHandler обрабатывает POST /matches
func (h *MatchHandler) ReportMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ReportMatch(r.Context(), input.WinnerID, input.LoserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReportDrawHandler обрабатывает POST /matches/draw
func (h *MatchHandler) ReportDrawHandler(w http.ResponseWriter, r *http.Request) {
	var input reportDrawInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ReportDraw(r.Context(), input.Player1ID, input.Player2ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReportByeHandler обрабатывает POST /players/{playerID}/bye
func (h *MatchHandler) ReportByeHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.ReportBye(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMatchesHandler обрабатывает GET /matches
func (h *MatchHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.matchService.ListHistory(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if pairs == nil {
		pairs = []models.MatchPair{}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": pairs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatchesHandler обрабатывает DELETE /matches
func (h *MatchHandler) DeleteMatchesHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.matchService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
