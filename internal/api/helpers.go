package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/services"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes and validates a request body into dst. Validation tags
// on the destination struct are the request schema; anything that fails
// them never reaches a service.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.NewValidationError(verrs[0].Field(), "failed '"+verrs[0].Tag()+"' constraint")
		}
		return errors.NewBadRequestError("invalid request body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response: %v", err)
		}
	}
}

// cardResponse adds the day-denominated interval to the card payload;
// internally intervals are durations.
type cardResponse struct {
	models.Card
	IntervalDays float64 `json:"interval_days"`
}

func toCardResponse(c models.Card) cardResponse {
	return cardResponse{Card: c, IntervalDays: c.IntervalDays()}
}

func toCardResponses(cards []models.Card) []cardResponse {
	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = toCardResponse(c)
	}
	return out
}

type sessionResponse struct {
	models.StudySession
	TotalTimeMs int64 `json:"total_time_ms"`
}

func toSessionResponse(s models.StudySession) sessionResponse {
	return sessionResponse{StudySession: s, TotalTimeMs: s.TotalTime.Milliseconds()}
}

type sessionViewResponse struct {
	Session   sessionResponse `json:"session"`
	Current   *cardResponse   `json:"current,omitempty"`
	Remaining int             `json:"remaining"`
	Done      bool            `json:"done"`
}

func toSessionViewResponse(v *services.SessionView) sessionViewResponse {
	out := sessionViewResponse{
		Session:   toSessionResponse(v.Session),
		Remaining: v.Remaining,
		Done:      v.Done,
	}
	if v.Current != nil {
		card := toCardResponse(*v.Current)
		out.Current = &card
	}
	return out
}

type reviewResultResponse struct {
	Card      cardResponse `json:"card"`
	Removed   bool         `json:"removed"`
	Done      bool         `json:"done"`
	Synced    bool         `json:"synced"`
	Remaining int          `json:"remaining"`
}

func toReviewResultResponse(res *services.ReviewResult) reviewResultResponse {
	return reviewResultResponse{
		Card:      toCardResponse(res.Card),
		Removed:   res.Removed,
		Done:      res.Done,
		Synced:    res.Synced,
		Remaining: res.Remaining,
	}
}

type reviewRecordResponse struct {
	models.ReviewRecord
	ResponseTimeMs     int64   `json:"response_time_ms"`
	IntervalBeforeDays float64 `json:"interval_before_days"`
	IntervalAfterDays  float64 `json:"interval_after_days"`
}

func toReviewRecordResponses(records []models.ReviewRecord) []reviewRecordResponse {
	out := make([]reviewRecordResponse, len(records))
	for i, rec := range records {
		out[i] = reviewRecordResponse{
			ReviewRecord:       rec,
			ResponseTimeMs:     rec.ResponseTime.Milliseconds(),
			IntervalBeforeDays: models.InDays(rec.IntervalBefore),
			IntervalAfterDays:  models.InDays(rec.IntervalAfter),
		}
	}
	return out
}
