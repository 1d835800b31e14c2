package sync

import (
	"encoding/json"
	"time"
)

// Kind тип записи, к которой относится операция
type Kind string

const (
	KindProgress Kind = "progress"
	KindUser     Kind = "user"
	KindSettings Kind = "settings"
)

// Action действие операции синхронизации
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// MaxRetries фиксированный потолок попыток: операция, трижды подряд
// завершившаяся ошибкой, удаляется из очереди и отражается в Status.LastError
const MaxRetries = 3

// Operation отложенная мутация в локальной очереди синхронизации.
// Очередь владеет операцией до подтверждения или исчерпания попыток.
type Operation struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Action     Action          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	RetryCount int             `json:"retry_count"`
}

// OperationInput входные данные для постановки операции в очередь
type OperationInput struct {
	Kind    Kind            `json:"kind"`
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Status наблюдаемое состояние синхронизации пользователя.
// Нулевой LastSyncAt означает «ещё не синхронизировались»,
// пустой LastError — отсутствие ошибки.
type Status struct {
	LastSyncAt   time.Time `json:"last_sync_at"`
	InProgress   bool      `json:"in_progress"`
	LastError    string    `json:"last_error"`
	PendingCount int       `json:"pending_count"`
}

// StatusPatch частичное обновление статуса: nil-поля не трогаются
type StatusPatch struct {
	LastSyncAt   *time.Time
	InProgress   *bool
	LastError    *string
	PendingCount *int
}

// Valid проверяет входные данные операции
func (in OperationInput) Valid() error {
	if !in.Kind.Valid() {
		return ErrInvalidKind
	}
	if !in.Action.Valid() {
		return ErrInvalidAction
	}
	return nil
}

// Valid проверяет допустимость типа записи
func (k Kind) Valid() bool {
	switch k {
	case KindProgress, KindUser, KindSettings:
		return true
	}
	return false
}

// Valid проверяет допустимость действия
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
