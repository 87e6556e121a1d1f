package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// MockReviewHistoryRepository is a mock implementation of repository.ReviewHistoryRepository
type MockReviewHistoryRepository struct {
	mock.Mock
}

func (m *MockReviewHistoryRepository) Append(ctx context.Context, record models.ReviewRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewHistoryRepository) ListForCard(ctx context.Context, cardID int64, limit int) ([]models.ReviewRecord, error) {
	args := m.Called(ctx, cardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewRecord), args.Error(1)
}
