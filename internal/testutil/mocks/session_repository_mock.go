package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session models.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*models.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) Complete(ctx context.Context, id string, result models.SessionResult, completedAt time.Time) error {
	args := m.Called(ctx, id, result, completedAt)
	return args.Error(0)
}
