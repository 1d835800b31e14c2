package client

import (
	gosync "sync"

	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/sync"
)

// StatusTracker хранит наблюдаемый статус синхронизации пользователя.
// Тонкая обёртка над репозиторием: единственный побочный эффект —
// запись в локальное хранилище, никаких сетевых вызовов.
type StatusTracker struct {
	repo StatusRepository
	log  *slog.Logger

	mu    gosync.Mutex
	cache map[string]sync.Status
}

func NewStatusTracker(repo StatusRepository, log *slog.Logger) *StatusTracker {
	return &StatusTracker{
		repo:  repo,
		log:   log.With("component", "status_tracker"),
		cache: make(map[string]sync.Status),
	}
}

// Get возвращает последний сохранённый статус либо нулевое состояние,
// если для пользователя статус ещё не создавался
func (t *StatusTracker) Get(userID string) (sync.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.loadLocked(userID)
}

// Update накладывает частичное обновление на текущий статус, сохраняет
// результат и возвращает новый статус. При ошибке записи статус в памяти
// не меняется.
func (t *StatusTracker) Update(userID string, patch sync.StatusPatch) (sync.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	status, err := t.loadLocked(userID)
	if err != nil {
		return sync.Status{}, err
	}

	if patch.LastSyncAt != nil {
		status.LastSyncAt = *patch.LastSyncAt
	}
	if patch.InProgress != nil {
		status.InProgress = *patch.InProgress
	}
	if patch.LastError != nil {
		status.LastError = *patch.LastError
	}
	if patch.PendingCount != nil {
		status.PendingCount = *patch.PendingCount
	}

	if err := t.repo.SaveStatus(userID, status); err != nil {
		return sync.Status{}, sync.NewPersistenceError("save status", err)
	}

	t.cache[userID] = status
	return status, nil
}

// SetPendingCount синхронизирует счётчик ожидающих операций с длиной очереди
func (t *StatusTracker) SetPendingCount(userID string, n int) error {
	_, err := t.Update(userID, sync.StatusPatch{PendingCount: &n})
	return err
}

// Reset сбрасывает статус в нулевое состояние (логаут, удаление аккаунта)
func (t *StatusTracker) Reset(userID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.repo.DeleteStatus(userID); err != nil {
		return sync.NewPersistenceError("delete status", err)
	}

	delete(t.cache, userID)
	return nil
}

func (t *StatusTracker) loadLocked(userID string) (sync.Status, error) {
	if status, ok := t.cache[userID]; ok {
		return status, nil
	}

	stored, err := t.repo.LoadStatus(userID)
	if err != nil {
		return sync.Status{}, sync.NewPersistenceError("load status", err)
	}

	if stored == nil {
		// Статус создаётся лениво при первом обращении
		status := sync.Status{}
		t.cache[userID] = status
		return status, nil
	}

	t.cache[userID] = *stored
	return *stored, nil
}
