package agent

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// MoveRequest asks an agent server for a move on Board.
type MoveRequest struct {
	Board game.Snapshot `json:"board"`
}

type MoveResponse struct {
	Action       game.Action           `json:"action"`
	Position     game.Position         `json:"position"`
	Distribution searcher.Distribution `json:"distribution"`
}

// ObserveRequest reports a move played by the other side.
type ObserveRequest struct {
	Action game.Action `json:"action"`
}

// NewHandler serves a over HTTP:
//
//	POST /move     MoveRequest -> MoveResponse
//	POST /observe  ObserveRequest
//	POST /reset
//
// Requests are handled one at a time since an agent carries game state.
func NewHandler(a Agent) http.Handler {
	var mu sync.Mutex
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/move", func(w http.ResponseWriter, r *http.Request) {
		var payload MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		board, err := game.FromSnapshot(payload.Board)
		if err != nil {
			http.Error(w, "bad board: "+err.Error(), http.StatusBadRequest)
			return
		}

		mu.Lock()
		action, dist, err := a.FindMove(r.Context(), board)
		mu.Unlock()
		if err != nil {
			log.Error().Err(err).Str("request", middleware.GetReqID(r.Context())).Msg("move search failed")
			http.Error(w, "search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		resp := MoveResponse{Action: action, Position: game.Position{Row: -1, Col: -1}, Distribution: dist}
		if action != game.NoAction {
			resp.Position = board.PositionOf(action)
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/observe", func(w http.ResponseWriter, r *http.Request) {
		var payload ObserveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		a.Observe(payload.Action)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/reset", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		a.Reset()
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
