package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/services"
)

type startStudyRequest struct {
	SessionType string `json:"session_type" validate:"omitempty,oneof=review cram"`
	Limit       int    `json:"limit" validate:"min=0,max=500"`
}

// reviewRequest carries one review. The two rating shapes are mutually
// exclusive; the service rejects bodies that set both or neither.
type reviewRequest struct {
	CardID         int64 `json:"card_id" validate:"min=0"`
	Quality        *int  `json:"quality" validate:"omitempty,min=0,max=5"`
	WasCorrect     *bool `json:"was_correct"`
	PawRating      *int  `json:"paw_rating" validate:"omitempty,min=1,max=4"`
	ResponseTimeMs int64 `json:"response_time_ms" validate:"min=0"`
}

func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := startStudyRequest{}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}
	}
	if req.Limit == 0 {
		req.Limit = s.DueLimit
	}

	view, err := s.StudyService.StartSession(r.Context(), deckID, req.SessionType, req.Limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("study session started: id=%s deck=%d cards=%d", view.Session.ID, deckID, view.Remaining)
	respondJSON(w, http.StatusCreated, toSessionViewResponse(view))
}

func (s *Server) handleCurrentCard(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := s.StudyService.CurrentCard(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionViewResponse(view))
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sub := services.ReviewSubmission{
		CardID:       req.CardID,
		Quality:      req.Quality,
		WasCorrect:   req.WasCorrect,
		PawRating:    req.PawRating,
		ResponseTime: time.Duration(req.ResponseTimeMs) * time.Millisecond,
	}

	result, err := s.StudyService.SubmitReview(r.Context(), sessionID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toReviewResultResponse(result))
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	session, err := s.StudyService.CompleteSession(r.Context(), sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("study session completed: id=%s studied=%d correct=%d",
		session.ID, session.CardsStudied, session.CardsCorrect)
	respondJSON(w, http.StatusOK, toSessionResponse(*session))
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.StudyService.AbandonSession(r.Context(), sessionID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
