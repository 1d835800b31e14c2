package client

import (
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/sync"
)

// DurableQueue — упорядоченная очередь отложенных операций с записью на диск.
// Каждая мутация сначала сохраняется через репозиторий и только потом попадает
// в память: после сбоя процесса очередь восстанавливается без потерь.
type DurableQueue struct {
	repo    QueueRepository
	tracker *StatusTracker
	log     *slog.Logger

	mu    gosync.Mutex
	cache map[string][]sync.Operation
}

func NewDurableQueue(repo QueueRepository, tracker *StatusTracker, log *slog.Logger) *DurableQueue {
	return &DurableQueue{
		repo:    repo,
		tracker: tracker,
		log:     log.With("component", "durable_queue"),
		cache:   make(map[string][]sync.Operation),
	}
}

// Enqueue добавляет операцию в хвост очереди и возвращает её с присвоенным
// идентификатором. При ошибке записи очередь не меняется.
func (q *DurableQueue) Enqueue(userID string, input sync.OperationInput) (sync.Operation, error) {
	if err := input.Valid(); err != nil {
		return sync.Operation{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadLocked(userID)
	if err != nil {
		return sync.Operation{}, err
	}

	op := sync.Operation{
		ID:         uuid.NewString(),
		Kind:       input.Kind,
		Action:     input.Action,
		Payload:    input.Payload,
		EnqueuedAt: time.Now(),
	}

	next := make([]sync.Operation, len(ops), len(ops)+1)
	copy(next, ops)
	next = append(next, op)

	if err := q.replaceLocked(userID, next); err != nil {
		return sync.Operation{}, err
	}

	q.log.Debug("operation enqueued",
		slog.String("user_id", userID),
		slog.String("op_id", op.ID),
		slog.String("kind", string(op.Kind)),
		slog.String("action", string(op.Action)),
	)

	return op, nil
}

// List возвращает копию очереди в порядке добавления
func (q *DurableQueue) List(userID string) ([]sync.Operation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadLocked(userID)
	if err != nil {
		return nil, err
	}

	out := make([]sync.Operation, len(ops))
	copy(out, ops)
	return out, nil
}

// Len возвращает текущую длину очереди
func (q *DurableQueue) Len(userID string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadLocked(userID)
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

// Remove удаляет операции с перечисленными идентификаторами, сохраняя
// относительный порядок остальных. Неизвестные идентификаторы игнорируются.
func (q *DurableQueue) Remove(userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadLocked(userID)
	if err != nil {
		return err
	}

	next := make([]sync.Operation, 0, len(ops))
	for _, op := range ops {
		if _, ok := drop[op.ID]; ok {
			continue
		}
		next = append(next, op)
	}

	if len(next) == len(ops) {
		return nil
	}

	return q.replaceLocked(userID, next)
}

// Replace атомарно заменяет содержимое очереди. Используется движком
// синхронизации для фиксации результата прохода: успешные операции
// исчезают, неуспешные остаются с увеличенным счётчиком попыток.
func (q *DurableQueue) Replace(userID string, ops []sync.Operation) error {
	next := make([]sync.Operation, len(ops))
	copy(next, ops)

	q.mu.Lock()
	defer q.mu.Unlock()

	return q.replaceLocked(userID, next)
}

func (q *DurableQueue) replaceLocked(userID string, ops []sync.Operation) error {
	if err := q.repo.SaveQueue(userID, ops); err != nil {
		return sync.NewPersistenceError("save queue", err)
	}

	q.cache[userID] = ops

	// Счётчик ожидающих операций всегда равен длине очереди
	if err := q.tracker.SetPendingCount(userID, len(ops)); err != nil {
		q.log.Warn("failed to update pending count",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

func (q *DurableQueue) loadLocked(userID string) ([]sync.Operation, error) {
	if ops, ok := q.cache[userID]; ok {
		return ops, nil
	}

	ops, err := q.repo.LoadQueue(userID)
	if err != nil {
		return nil, sync.NewPersistenceError("load queue", err)
	}

	if ops == nil {
		ops = []sync.Operation{}
	}
	q.cache[userID] = ops
	return ops, nil
}
