package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"lifesprint/internal/app/server/api/http/middleware/identity"
	"lifesprint/internal/domain/store"
	"lifesprint/internal/domain/sync"
)

// MockService is a mock implementation of the store.Servicer interface for testing
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, userID string, kind sync.Kind) (store.Document, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).(store.Document), args.Error(1)
}

func (m *MockService) Put(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) (store.Document, error) {
	args := m.Called(ctx, userID, kind, payload)
	return args.Get(0).(store.Document), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, userID string, kind sync.Kind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func authCtx() context.Context {
	return identity.WithUserID(context.Background(), "user-1")
}

func TestHandler_Get(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	payload := json.RawMessage(`{"current_day":5}`)
	mockService.On("Get", mock.Anything, "user-1", sync.KindProgress).
		Return(store.Document{UserID: "user-1", Kind: sync.KindProgress, Payload: payload}, nil)

	output, err := handler.get(authCtx(), &getInput{Kind: "progress"})

	assert.NoError(t, err)
	assert.Equal(t, "progress", output.Body.Kind)
	assert.JSONEq(t, `{"current_day":5}`, string(output.Body.Payload))
	mockService.AssertExpectations(t)
}

func TestHandler_Get_NotFound(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	mockService.On("Get", mock.Anything, "user-1", sync.KindSettings).
		Return(store.Document{}, store.ErrNotFound)

	_, err := handler.get(authCtx(), &getInput{Kind: "settings"})

	assert.Error(t, err)
	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.GetStatus())
}

func TestHandler_Get_Unauthorized(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	_, err := handler.get(context.Background(), &getInput{Kind: "progress"})

	assert.Error(t, err)
	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.GetStatus())
	mockService.AssertNotCalled(t, "Get")
}

func TestHandler_Put(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	payload := json.RawMessage(`{"theme":"dark"}`)
	mockService.On("Put", mock.Anything, "user-1", sync.KindSettings, payload).
		Return(store.Document{UserID: "user-1", Kind: sync.KindSettings, Payload: payload}, nil)

	output, err := handler.put(authCtx(), &putInput{
		Kind: "settings",
		Body: putRequest{Payload: payload},
	})

	assert.NoError(t, err)
	assert.Equal(t, "settings", output.Body.Kind)
	mockService.AssertExpectations(t)
}

func TestHandler_Put_InvalidKind(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	payload := json.RawMessage(`{}`)
	mockService.On("Put", mock.Anything, "user-1", sync.Kind("bogus"), payload).
		Return(store.Document{}, store.ErrInvalidInput)

	_, err := handler.put(authCtx(), &putInput{
		Kind: "bogus",
		Body: putRequest{Payload: payload},
	})

	assert.Error(t, err)
	var statusErr huma.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 422, statusErr.GetStatus())
}

func TestHandler_Delete(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService, slog.Default(), huma.Middlewares{})

	mockService.On("Delete", mock.Anything, "user-1", sync.KindUser).Return(nil)

	output, err := handler.delete(authCtx(), &deleteInput{Kind: "user"})

	assert.NoError(t, err)
	assert.Equal(t, "Ok", output.Body.Status)
	mockService.AssertExpectations(t)
}
