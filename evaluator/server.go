package evaluator

import (
	"encoding/json"
	"net/http"

	"github.com/DaiCC-Aurora/SigmaGo/game"
	"github.com/DaiCC-Aurora/SigmaGo/searcher"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// NewHandler serves ev over HTTP at POST /evaluate, the endpoint Remote
// talks to.
func NewHandler(ev searcher.Evaluator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/evaluate", func(w http.ResponseWriter, r *http.Request) {
		var payload Request
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		board, err := game.FromSnapshot(payload.Board)
		if err != nil {
			http.Error(w, "bad board: "+err.Error(), http.StatusBadRequest)
			return
		}

		e, err := ev.Evaluate(r.Context(), board)
		if err != nil {
			log.Error().Err(err).Str("request", middleware.GetReqID(r.Context())).Msg("evaluation failed")
			http.Error(w, "evaluation failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, e)
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
