package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Get("/{deckID}", s.handleGetDeck)
			r.Delete("/{deckID}", s.handleDeleteDeck)
			r.Get("/{deckID}/stats", s.handleDeckStats)
			r.Get("/{deckID}/cards", s.handleListCards)
			r.Post("/{deckID}/cards", s.handleCreateCard)
			r.Post("/{deckID}/study", s.handleStartStudy)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/{cardID}", s.handleGetCard)
			r.Delete("/{cardID}", s.handleDeleteCard)
			r.Get("/{cardID}/history", s.handleCardHistory)
		})

		r.Route("/study/{sessionID}", func(r chi.Router) {
			r.Get("/current", s.handleCurrentCard)
			r.Post("/review", s.handleSubmitReview)
			r.Post("/complete", s.handleCompleteSession)
			r.Delete("/", s.handleAbandonSession)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
