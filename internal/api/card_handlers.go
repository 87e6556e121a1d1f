package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

type createCardRequest struct {
	Front string `json:"front" validate:"required,max=4000"`
	Back  string `json:"back" validate:"required,max=4000"`
}

func cardIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "cardID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid card ID")
	}
	return id, nil
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.CardFilter{DeckID: deckID}
	if stage := r.URL.Query().Get("stage"); stage != "" {
		filter.Stage = models.Stage(stage)
		if !filter.Stage.Valid() {
			handleError(w, r, errors.NewBadRequestError("invalid stage filter"))
			return
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
		filter.Limit = limit
	}

	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(cards)})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	deckID, err := deckIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), deckID, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card created via API: id=%d deck=%d", card.ID, deckID)
	respondJSON(w, http.StatusCreated, toCardResponse(*card))
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := cardIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCardResponse(*card))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := cardIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleCardHistory(w http.ResponseWriter, r *http.Request) {
	id, err := cardIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			handleError(w, r, errors.NewBadRequestError("invalid limit"))
			return
		}
	}

	records, err := s.CardService.CardHistory(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reviews": toReviewRecordResponses(records)})
}
