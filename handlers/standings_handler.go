package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/garry1963/golf-society-manager-sub000/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// StandingsHandler handles GET /standings?season_id=N
func (h *StandingsHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	var seasonID *int
	if v := r.URL.Query().Get("season_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errors.New("invalid season_id query parameter"))
			return
		}
		seasonID = &id
	}

	standings, err := h.standingsService.Standings(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
