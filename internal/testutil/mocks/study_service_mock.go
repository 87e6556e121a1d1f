package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
	"github.com/benrueckert/koda-flashcard-app/internal/services"
)

// MockStudyService is a mock implementation of services.StudyService
type MockStudyService struct {
	mock.Mock
}

func (m *MockStudyService) StartSession(ctx context.Context, deckID int64, sessionType string, limit int) (*services.SessionView, error) {
	args := m.Called(ctx, deckID, sessionType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockStudyService) CurrentCard(ctx context.Context, sessionID string) (*services.SessionView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockStudyService) SubmitReview(ctx context.Context, sessionID string, sub services.ReviewSubmission) (*services.ReviewResult, error) {
	args := m.Called(ctx, sessionID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResult), args.Error(1)
}

func (m *MockStudyService) CompleteSession(ctx context.Context, sessionID string) (*models.StudySession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockStudyService) AbandonSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockStudyService) ExpireIdleSessions(ctx context.Context, olderThan time.Duration) int {
	args := m.Called(ctx, olderThan)
	return args.Int(0)
}
