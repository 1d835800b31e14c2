package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/sync"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, userID string, kind sync.Kind) (Document, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).(Document), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, doc Document) (Document, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(Document), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID string, kind sync.Kind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func TestService_Put(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	payload := json.RawMessage(`{"current_day":3}`)
	stored := Document{UserID: "user-1", Kind: sync.KindProgress, Payload: payload}

	mockRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(doc Document) bool {
		return doc.UserID == "user-1" && doc.Kind == sync.KindProgress
	})).Return(stored, nil)

	doc, err := service.Put(context.Background(), "user-1", sync.KindProgress, payload)
	assert.NoError(t, err)
	assert.Equal(t, stored, doc)

	mockRepo.AssertExpectations(t)
}

func TestService_Put_InvalidPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Put(context.Background(), "user-1", sync.KindProgress, json.RawMessage(`{broken`))
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestService_Put_InvalidKind(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Put(context.Background(), "user-1", sync.Kind("bogus"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Get", mock.Anything, "user-1", sync.KindSettings).Return(Document{}, ErrNotFound)

	_, err := service.Get(context.Background(), "user-1", sync.KindSettings)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Get_EmptyUserID(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	_, err := service.Get(context.Background(), "", sync.KindProgress)
	assert.ErrorIs(t, err, ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "Get")
}

func TestService_Delete_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, slog.Default())

	mockRepo.On("Delete", mock.Anything, "user-1", sync.KindUser).Return(errors.New("database error"))

	err := service.Delete(context.Background(), "user-1", sync.KindUser)
	assert.Error(t, err)
}
