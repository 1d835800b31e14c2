package client

import (
	"encoding/json"

	"lifesprint/internal/domain/sync"
)

// Репозитории локального хранилища. Явные интерфейсы, параметризованные
// идентификатором пользователя и типом записи, внедряются в очередь,
// трекер статуса и движок синхронизации.

// QueueRepository долговременное хранилище очереди операций
type QueueRepository interface {
	LoadQueue(userID string) ([]sync.Operation, error)
	SaveQueue(userID string, ops []sync.Operation) error
}

// StatusRepository хранилище статуса синхронизации.
// LoadStatus возвращает nil без ошибки, если статус ещё не создавался.
type StatusRepository interface {
	LoadStatus(userID string) (*sync.Status, error)
	SaveStatus(userID string, status sync.Status) error
	DeleteStatus(userID string) error
}

// RecordRepository локальный кеш записей по типу (прогресс, профиль, настройки)
type RecordRepository interface {
	LoadRecord(userID string, kind sync.Kind) (json.RawMessage, error)
	SaveRecord(userID string, kind sync.Kind, payload json.RawMessage) error
	DeleteRecord(userID string, kind sync.Kind) error
}

// Storage объединяет локальные репозитории клиента
type Storage interface {
	QueueRepository
	StatusRepository
	RecordRepository
	Close() error
}
