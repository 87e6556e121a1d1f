package services

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benrueckert/koda-flashcard-app/internal/errors"
	"github.com/benrueckert/koda-flashcard-app/internal/jobs"
	"github.com/benrueckert/koda-flashcard-app/internal/logger"
	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/repository"
	"github.com/benrueckert/koda-flashcard-app/internal/scheduler"
)

// ReviewSubmission is the boundary shape of one review. Exactly one of
// Quality (canonical 0-5 scale, with WasCorrect) or PawRating (1-4 UI
// scale) must be set.
type ReviewSubmission struct {
	CardID       int64
	Quality      *int
	WasCorrect   *bool
	PawRating    *int
	ResponseTime time.Duration
}

// ReviewResult reports what happened to the reviewed card.
type ReviewResult struct {
	Card      models.Card `json:"card"`
	Removed   bool        `json:"removed"`
	Done      bool        `json:"done"`
	Synced    bool        `json:"synced"`
	Remaining int         `json:"remaining"`
}

// SessionView is a snapshot of an active session for presentation.
type SessionView struct {
	Session   models.StudySession `json:"session"`
	Current   *models.Card        `json:"current,omitempty"`
	Remaining int                 `json:"remaining"`
	Done      bool                `json:"done"`
}

// StudyService drives active study sessions: due-set selection at start,
// review application and persistence mid-session, aggregate finalization at
// the end.
type StudyService interface {
	StartSession(ctx context.Context, deckID int64, sessionType string, limit int) (*SessionView, error)
	CurrentCard(ctx context.Context, sessionID string) (*SessionView, error)
	SubmitReview(ctx context.Context, sessionID string, sub ReviewSubmission) (*ReviewResult, error)
	CompleteSession(ctx context.Context, sessionID string) (*models.StudySession, error)
	AbandonSession(ctx context.Context, sessionID string) error
	ExpireIdleSessions(ctx context.Context, olderThan time.Duration) int
}

// activeSession is the in-memory working state of one study attempt. It is
// destroyed when the session completes, is abandoned, or expires.
type activeSession struct {
	mu           sync.Mutex
	session      models.StudySession
	queue        *scheduler.SessionQueue
	cardsStudied int
	cardsCorrect int
	lastActivity time.Time
}

type studyService struct {
	cards    repository.CardRepository
	sessions repository.SessionRepository
	history  repository.ReviewHistoryRepository
	sync     jobs.JobQueue
	now      Clock

	mu     sync.RWMutex
	active map[string]*activeSession
}

// NewStudyService creates a new StudyService
func NewStudyService(
	cards repository.CardRepository,
	sessions repository.SessionRepository,
	history repository.ReviewHistoryRepository,
	syncQueue jobs.JobQueue,
	now Clock,
) StudyService {
	return &studyService{
		cards:    cards,
		sessions: sessions,
		history:  history,
		sync:     syncQueue,
		now:      orSystemClock(now),
		active:   make(map[string]*activeSession),
	}
}

func (s *studyService) StartSession(ctx context.Context, deckID int64, sessionType string, limit int) (*SessionView, error) {
	log := logger.FromContext(ctx)

	switch sessionType {
	case "":
		sessionType = models.SessionTypeReview
	case models.SessionTypeReview, models.SessionTypeCram:
	default:
		return nil, errors.NewValidationError("session_type", "must be review or cram")
	}

	all, err := s.cards.List(ctx, models.CardFilter{DeckID: deckID})
	if err != nil {
		return nil, errors.NewStoreUnavailableError(err)
	}
	if len(all) == 0 {
		return nil, errors.NewNotFoundError("cards for deck", deckID)
	}

	now := s.now()
	var snapshot []models.Card
	if sessionType == models.SessionTypeCram {
		// Cram ignores dueness; the whole deck is fair game.
		snapshot = scheduler.SelectDue(all, limit, now.Add(models.Days(365*10)))
	} else {
		snapshot = scheduler.SelectDue(all, limit, now)
	}
	if len(snapshot) == 0 {
		return nil, errors.NewBadRequestError("no cards due for study")
	}

	session := models.StudySession{
		ID:          uuid.NewString(),
		DeckID:      deckID,
		SessionType: sessionType,
		StartedAt:   now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		log.Error("failed to create session: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}

	sess := &activeSession{
		session:      session,
		queue:        scheduler.NewSessionQueue(snapshot),
		lastActivity: now,
	}
	s.mu.Lock()
	s.active[session.ID] = sess
	s.mu.Unlock()

	log.Info("study session started: id=%s, deck_id=%d, cards=%d", session.ID, deckID, len(snapshot))
	return s.view(sess), nil
}

func (s *studyService) CurrentCard(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess), nil
}

func (s *studyService) SubmitReview(ctx context.Context, sessionID string, sub ReviewSubmission) (*ReviewResult, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := buildOutcome(sub)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	now := s.now()
	res, err := sess.queue.SubmitReview(outcome, now)
	if err != nil {
		switch {
		case stderrors.Is(err, scheduler.ErrQueueEmpty):
			return nil, errors.NewBadRequestError("session already complete")
		case stderrors.Is(err, scheduler.ErrCardMismatch):
			return nil, errors.NewInvalidOutcomeError("card is not the current card", err)
		case stderrors.Is(err, scheduler.ErrInvalidQuality):
			return nil, errors.NewInvalidOutcomeError("quality out of range", err)
		default:
			return nil, errors.NewInternalError(err)
		}
	}

	sess.cardsStudied++
	if outcome.WasCorrect {
		sess.cardsCorrect++
	}
	sess.lastActivity = now

	record := models.ReviewRecord{
		CardID:         res.Entry.Card.ID,
		SessionID:      sessionID,
		Quality:        outcome.Quality,
		ResponseTime:   outcome.ResponseTime,
		WasCorrect:     outcome.WasCorrect,
		IntervalBefore: res.Before.Interval,
		IntervalAfter:  res.Entry.Card.Interval,
		ReviewedAt:     now,
	}

	// Persist the new card state. A store failure never rolls back the
	// local transition or stalls the queue: the entry is flagged unsynced
	// and handed to the background sync queue for reconciliation.
	if err := s.cards.Update(ctx, res.Entry.Card); err != nil {
		log.Warn("card update failed, continuing in degraded mode: card_id=%d, err=%v", res.Entry.Card.ID, err)
		res.Entry.Synced = false
		if qerr := s.sync.EnqueueReviewSync(res.Entry.Card, record, s.markSynced(sessionID)); qerr != nil {
			log.Error("failed to enqueue review sync: %v", qerr)
		}
	} else if _, err := s.history.Append(ctx, record); err != nil {
		// Best-effort audit trail; the card update already succeeded.
		log.Warn("failed to append review record: %v", err)
	}

	return &ReviewResult{
		Card:      res.Entry.Card,
		Removed:   res.Removed,
		Done:      res.Done,
		Synced:    res.Entry.Synced,
		Remaining: sess.queue.Len(),
	}, nil
}

func (s *studyService) CompleteSession(ctx context.Context, sessionID string) (*models.StudySession, error) {
	log := logger.FromContext(ctx)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	now := s.now()
	result := models.SessionResult{
		CardsStudied: sess.cardsStudied,
		CardsCorrect: sess.cardsCorrect,
		TotalTime:    now.Sub(sess.session.StartedAt),
	}
	if err := s.sessions.Complete(ctx, sessionID, result, now); err != nil {
		// The session stays active so completion can be retried.
		log.Error("failed to complete session: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}

	s.mu.Lock()
	delete(s.active, sessionID)
	s.mu.Unlock()

	completed := sess.session
	completed.CardsStudied = result.CardsStudied
	completed.CardsCorrect = result.CardsCorrect
	completed.TotalTime = result.TotalTime
	completed.CompletedAt = &now

	log.Info("study session completed: id=%s, studied=%d, correct=%d", sessionID, result.CardsStudied, result.CardsCorrect)
	return &completed, nil
}

func (s *studyService) AbandonSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	_, ok := s.active[sessionID]
	delete(s.active, sessionID)
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("study session", sessionID)
	}
	log.Info("study session abandoned: id=%s", sessionID)
	return nil
}

func (s *studyService) ExpireIdleSessions(ctx context.Context, olderThan time.Duration) int {
	log := logger.FromContext(ctx)
	cutoff := s.now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, sess := range s.active {
		sess.mu.Lock()
		idle := sess.lastActivity.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.active, id)
			expired++
			log.Info("study session expired: id=%s", id)
		}
	}
	return expired
}

func (s *studyService) lookup(sessionID string) (*activeSession, error) {
	s.mu.RLock()
	sess, ok := s.active[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewNotFoundError("study session", sessionID)
	}
	return sess, nil
}

// markSynced returns the callback the sync job uses to clear an entry's
// unsynced flag once its state is durably stored.
func (s *studyService) markSynced(sessionID string) func(cardID int64) {
	return func(cardID int64) {
		s.mu.RLock()
		sess, ok := s.active[sessionID]
		s.mu.RUnlock()
		if !ok {
			return
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		for _, e := range sess.queue.Entries() {
			if e.Card.ID == cardID {
				e.Synced = true
			}
		}
	}
}

func (s *studyService) view(sess *activeSession) *SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(sess)
}

func (s *studyService) viewLocked(sess *activeSession) *SessionView {
	view := &SessionView{
		Session:   sess.session,
		Remaining: sess.queue.Len(),
		Done:      sess.queue.Done(),
	}
	if entry := sess.queue.Current(); entry != nil {
		card := entry.Card
		view.Current = &card
	}
	return view
}

// buildOutcome converts a boundary submission into a canonical outcome,
// rejecting ambiguous or incomplete shapes outright.
func buildOutcome(sub ReviewSubmission) (scheduler.Outcome, error) {
	switch {
	case sub.PawRating != nil && sub.Quality != nil:
		return scheduler.Outcome{}, errors.NewInvalidOutcomeError("provide either quality or paw_rating, not both", nil)
	case sub.PawRating != nil:
		outcome, err := scheduler.PawRating(*sub.PawRating).Outcome(sub.CardID, sub.ResponseTime)
		if err != nil {
			return scheduler.Outcome{}, errors.NewInvalidOutcomeError("paw rating out of range", err)
		}
		return outcome, nil
	case sub.Quality != nil:
		if sub.WasCorrect == nil {
			return scheduler.Outcome{}, errors.NewInvalidOutcomeError("was_correct is required with quality", nil)
		}
		outcome := scheduler.Outcome{
			CardID:       sub.CardID,
			Quality:      *sub.Quality,
			ResponseTime: sub.ResponseTime,
			WasCorrect:   *sub.WasCorrect,
		}
		if err := outcome.Validate(); err != nil {
			return scheduler.Outcome{}, errors.NewInvalidOutcomeError("quality out of range", err)
		}
		return outcome, nil
	default:
		return scheduler.Outcome{}, errors.NewInvalidOutcomeError("quality or paw_rating is required", nil)
	}
}
