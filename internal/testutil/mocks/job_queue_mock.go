package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/benrueckert/koda-flashcard-app/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReviewSync(card models.Card, record models.ReviewRecord, onSynced func(cardID int64)) error {
	args := m.Called(card, record, onSynced)
	return args.Error(0)
}
