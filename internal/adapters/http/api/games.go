// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/hoopsight/hoopsight/internal/app"
	"github.com/hoopsight/hoopsight/internal/domain/scoring"
)

// GamesHandler handles recommendation requests.
type GamesHandler struct {
	deps    Dependencies
	maxDays int
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps Dependencies) *GamesHandler {
	return &GamesHandler{deps: deps, maxDays: 30}
}

// teamView mirrors the response schema for one side of a game.
type teamView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// gameView mirrors the response schema for a scored game.
type gameView struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	HomeTeam  teamView       `json:"home_team"`
	AwayTeam  teamView       `json:"away_team"`
	Total     float64        `json:"total"`
	Breakdown []scoring.Line `json:"breakdown"`
}

type gamesView struct {
	Days  int        `json:"days"`
	Count int        `json:"count"`
	Games []gameView `json:"games"`
}

func toGameView(sg service.ScoredGame) gameView {
	return gameView{
		ID:   sg.Game.ID,
		Date: formatDate(sg.Game.Date),
		HomeTeam: teamView{
			Code:  sg.Game.HomeTeam.Code,
			Name:  sg.Game.HomeTeam.Name,
			Score: sg.Game.HomeTeam.Score,
		},
		AwayTeam: teamView{
			Code:  sg.Game.AwayTeam.Code,
			Name:  sg.Game.AwayTeam.Name,
			Score: sg.Game.AwayTeam.Score,
		},
		Total:     sg.Score.Total,
		Breakdown: sg.Score.Breakdown,
	}
}

// HandleBestGame handles GET /api/best-game requests.
func (h *GamesHandler) HandleBestGame(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, h.maxDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	best, err := h.deps.BestGame(r.Context(), days, queryTeam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameView(best))
}

// HandleGames handles GET /api/games requests. An empty window returns an
// empty list, not a 404; only best-game treats emptiness as not found.
func (h *GamesHandler) HandleGames(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r, h.maxDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	ranked, err := h.deps.RankedGames(r.Context(), days, queryTeam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]gameView, 0, len(ranked))
	for _, sg := range ranked {
		views = append(views, toGameView(sg))
	}
	writeJSON(w, http.StatusOK, gamesView{Days: days, Count: len(views), Games: views})
}
