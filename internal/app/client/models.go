package client

import (
	"encoding/json"
	gosync "sync"

	"lifesprint/internal/domain/sync"
)

// MemoryStorage - резервное in-memory хранилище. Используется в тестах и
// как запасной вариант, если SQLite недоступен; долговечность при
// перезапуске процесса оно, разумеется, не обеспечивает.
type MemoryStorage struct {
	mu       gosync.RWMutex
	queues   map[string][]sync.Operation
	statuses map[string]sync.Status
	records  map[string]map[sync.Kind]json.RawMessage
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		queues:   make(map[string][]sync.Operation),
		statuses: make(map[string]sync.Status),
		records:  make(map[string]map[sync.Kind]json.RawMessage),
	}
}

func (m *MemoryStorage) LoadQueue(userID string) ([]sync.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]sync.Operation(nil), m.queues[userID]...), nil
}

func (m *MemoryStorage) SaveQueue(userID string, ops []sync.Operation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queues[userID] = append([]sync.Operation(nil), ops...)
	return nil
}

func (m *MemoryStorage) LoadStatus(userID string) (*sync.Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, ok := m.statuses[userID]
	if !ok {
		return nil, nil
	}
	return &status, nil
}

func (m *MemoryStorage) SaveStatus(userID string, status sync.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses[userID] = status
	return nil
}

func (m *MemoryStorage) DeleteStatus(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.statuses, userID)
	return nil
}

func (m *MemoryStorage) LoadRecord(userID string, kind sync.Kind) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.records[userID][kind]
	if !ok {
		return nil, sync.ErrRecordNotFound
	}
	return append(json.RawMessage(nil), payload...), nil
}

func (m *MemoryStorage) SaveRecord(userID string, kind sync.Kind, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.records[userID] == nil {
		m.records[userID] = make(map[sync.Kind]json.RawMessage)
	}
	m.records[userID][kind] = append(json.RawMessage(nil), payload...)
	return nil
}

func (m *MemoryStorage) DeleteRecord(userID string, kind sync.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records[userID], kind)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
