package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifesprint/internal/domain/sync"
)

func TestStatusTracker_GetReturnsZeroState(t *testing.T) {
	tracker := NewStatusTracker(NewMemoryStorage(), testLogger())

	status, err := tracker.Get("user-1")
	require.NoError(t, err)

	assert.True(t, status.LastSyncAt.IsZero())
	assert.False(t, status.InProgress)
	assert.Empty(t, status.LastError)
	assert.Zero(t, status.PendingCount)
}

func TestStatusTracker_UpdateAppliesOnlyPatchedFields(t *testing.T) {
	tracker := NewStatusTracker(NewMemoryStorage(), testLogger())

	now := time.Now().Truncate(time.Second)
	inProgress := true
	_, err := tracker.Update("user-1", sync.StatusPatch{
		LastSyncAt: &now,
		InProgress: &inProgress,
	})
	require.NoError(t, err)

	lastErr := "remote unavailable"
	status, err := tracker.Update("user-1", sync.StatusPatch{LastError: &lastErr})
	require.NoError(t, err)

	assert.True(t, status.LastSyncAt.Equal(now))
	assert.True(t, status.InProgress)
	assert.Equal(t, "remote unavailable", status.LastError)
}

func TestStatusTracker_UpdateClearsError(t *testing.T) {
	tracker := NewStatusTracker(NewMemoryStorage(), testLogger())

	lastErr := "timeout"
	_, err := tracker.Update("user-1", sync.StatusPatch{LastError: &lastErr})
	require.NoError(t, err)

	empty := ""
	status, err := tracker.Update("user-1", sync.StatusPatch{LastError: &empty})
	require.NoError(t, err)
	assert.Empty(t, status.LastError)
}

func TestStatusTracker_UpdateSurvivesReopen(t *testing.T) {
	storage := NewMemoryStorage()
	tracker := NewStatusTracker(storage, testLogger())

	inProgress := true
	_, err := tracker.Update("user-1", sync.StatusPatch{InProgress: &inProgress})
	require.NoError(t, err)

	// Новый трекер над тем же хранилищем читает сохранённый статус
	fresh := NewStatusTracker(storage, testLogger())
	status, err := fresh.Get("user-1")
	require.NoError(t, err)
	assert.True(t, status.InProgress)
}

func TestStatusTracker_Reset(t *testing.T) {
	tracker := NewStatusTracker(NewMemoryStorage(), testLogger())

	count := 5
	_, err := tracker.Update("user-1", sync.StatusPatch{PendingCount: &count})
	require.NoError(t, err)

	require.NoError(t, tracker.Reset("user-1"))

	status, err := tracker.Get("user-1")
	require.NoError(t, err)
	assert.Zero(t, status.PendingCount)
}

func TestStatusTracker_UsersAreIsolated(t *testing.T) {
	tracker := NewStatusTracker(NewMemoryStorage(), testLogger())

	count := 3
	_, err := tracker.Update("user-1", sync.StatusPatch{PendingCount: &count})
	require.NoError(t, err)

	status, err := tracker.Get("user-2")
	require.NoError(t, err)
	assert.Zero(t, status.PendingCount)
}
