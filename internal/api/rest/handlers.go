package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mhower/cu-basketball-analytics/internal/service"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	corpus           *service.Corpus
	gameService      *service.GameService
	playerService    *service.PlayerService
	analyticsService *service.AnalyticsService
}

// NewHandler creates a new handler
func NewHandler(corpus *service.Corpus, analyticsSvc *service.AnalyticsService) *Handler {
	return &Handler{
		corpus:           corpus,
		gameService:      service.NewGameService(corpus),
		playerService:    service.NewPlayerService(corpus),
		analyticsService: analyticsSvc,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	overview := h.analyticsService.GetOverview()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"service":      "cuhoops",
		"version":      "1.0.0",
		"games_loaded": overview.GamesLoaded,
		"players":      overview.Players,
	})
}

// ListGames returns summaries of every ingested game
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": h.gameService.ListGames(),
	})
}

// GetGame returns one game's full canonical entity
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	game, err := h.gameService.GetGame(fileID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGameLineups returns the reconstructed lineups for one game
func (h *Handler) GetGameLineups(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	lineups, err := h.gameService.GetLineups(fileID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"lineups": lineups})
}

// GetGameRuns returns the detected scoring runs for one game
func (h *Handler) GetGameRuns(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	runs, err := h.gameService.GetRuns(fileID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// GetGameSwings returns the detected momentum swings for one game
func (h *Handler) GetGameSwings(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileID"]

	swings, err := h.gameService.GetSwings(fileID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"swings": swings})
}

// ListPlayers returns summaries of every tracked player
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": h.playerService.ListPlayers(),
	})
}

// GetPlayer returns one full player profile by canonical name
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	profile, err := h.playerService.GetPlayer(name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// GetAdvanced returns the season-level advanced metrics
func (h *Handler) GetAdvanced(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.analyticsService.GetAdvanced(r.Context()))
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
