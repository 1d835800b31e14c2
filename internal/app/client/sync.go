package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"lifesprint/internal/domain/progress"
	"lifesprint/internal/domain/sync"
)

// RemoteStore — удалённое хранилище документов пользователя.
// Единственная точка контакта движка с сетью.
type RemoteStore interface {
	Fetch(ctx context.Context, userID string, kind sync.Kind) (json.RawMessage, error)
	Store(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) error
	Delete(ctx context.Context, userID string, kind sync.Kind) error
	Ping(ctx context.Context) error
}

const (
	directWriteAttempts = 3
	directWriteBackoff  = 1000 * time.Millisecond
)

// SyncEngine связывает очередь, трекер статуса и удалённое хранилище.
// Проходов синхронизации для одного пользователя одновременно не бывает
// больше одного: конкурирующий вызов Drain отбрасывается, а не ставится
// в очередь. Взаимное исключение держится в памяти процесса; флаг
// InProgress в статусе только отражает его для наблюдателей, поэтому
// флаг, оставшийся от упавшего посреди прохода процесса, не блокирует
// синхронизацию после перезапуска.
type SyncEngine struct {
	queue   *DurableQueue
	tracker *StatusTracker
	records RecordRepository
	remote  RemoteStore
	log     *slog.Logger

	backoff time.Duration

	mu       gosync.Mutex
	inFlight map[string]bool
}

func NewSyncEngine(
	queue *DurableQueue,
	tracker *StatusTracker,
	records RecordRepository,
	remote RemoteStore,
	log *slog.Logger,
) *SyncEngine {
	return &SyncEngine{
		queue:    queue,
		tracker:  tracker,
		records:  records,
		remote:   remote,
		log:      log.With("component", "sync_engine"),
		backoff:  directWriteBackoff,
		inFlight: make(map[string]bool),
	}
}

// EnqueueAndSync ставит операцию в очередь и запускает проход синхронизации
// в фоне. Вызывающий не ждёт завершения сетевых запросов: возврат без ошибки
// означает только то, что операция надёжно сохранена.
func (e *SyncEngine) EnqueueAndSync(ctx context.Context, userID string, input sync.OperationInput) error {
	if _, err := e.queue.Enqueue(userID, input); err != nil {
		return err
	}

	go func() {
		if err := e.Drain(context.WithoutCancel(ctx), userID); err != nil {
			e.log.Warn("background drain failed",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}()

	return nil
}

// UpdateRemoteProgress сохраняет прогресс локально и пытается записать его
// на сервер напрямую с экспоненциальной задержкой между попытками.
// Если все попытки исчерпаны, операция ставится в очередь и изменение
// доедет до сервера при следующем проходе.
func (e *SyncEngine) UpdateRemoteProgress(ctx context.Context, userID string, record progress.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if err := e.records.SaveRecord(userID, sync.KindProgress, payload); err != nil {
		return sync.NewPersistenceError("save record", err)
	}

	var lastErr error
	for attempt := 1; attempt <= directWriteAttempts; attempt++ {
		if attempt > 1 {
			delay := e.backoff << (attempt - 2)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = e.pushProgress(ctx, userID, payload)
		if lastErr == nil {
			return nil
		}

		e.log.Debug("direct write failed",
			slog.String("user_id", userID),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
	}

	e.log.Info("direct write exhausted, deferring to queue",
		slog.String("user_id", userID),
	)

	_, err = e.queue.Enqueue(userID, sync.OperationInput{
		Kind:    sync.KindProgress,
		Action:  sync.ActionUpdate,
		Payload: payload,
	})
	return err
}

// Drain выполняет один проход по очереди: каждая операция получает одну
// попытку применения, успешные убираются, исчерпавшие лимит попыток
// отбрасываются навсегда с пометкой в статусе. Если сервер недоступен или
// проход для пользователя уже идёт, вызов молча завершается успехом.
func (e *SyncEngine) Drain(ctx context.Context, userID string) error {
	if err := e.remote.Ping(ctx); err != nil {
		e.log.Debug("server unreachable, drain skipped",
			slog.String("user_id", userID),
		)
		return nil
	}

	acquired, err := e.acquire(userID)
	if err != nil {
		return err
	}
	if !acquired {
		e.log.Debug("drain already in flight, request dropped",
			slog.String("user_id", userID),
		)
		return nil
	}

	passErr := e.drainPass(ctx, userID)

	done := false
	finish := sync.StatusPatch{InProgress: &done}
	if passErr == nil {
		now := time.Now()
		finish.LastSyncAt = &now
	}
	if _, err := e.tracker.Update(userID, finish); err != nil {
		e.log.Error("failed to clear in-progress flag",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	e.release(userID)

	return passErr
}

// acquire помечает пользователя как синхронизируемого. Возврат false
// означает, что проход для этого пользователя уже идёт в этом процессе.
func (e *SyncEngine) acquire(userID string) (bool, error) {
	e.mu.Lock()
	if e.inFlight[userID] {
		e.mu.Unlock()
		return false, nil
	}
	e.inFlight[userID] = true
	e.mu.Unlock()

	running := true
	if _, err := e.tracker.Update(userID, sync.StatusPatch{InProgress: &running}); err != nil {
		e.release(userID)
		return false, err
	}
	return true, nil
}

func (e *SyncEngine) release(userID string) {
	e.mu.Lock()
	delete(e.inFlight, userID)
	e.mu.Unlock()
}

func (e *SyncEngine) drainPass(ctx context.Context, userID string) error {
	ops, err := e.queue.List(userID)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		e.clearLastError(userID)
		return nil
	}

	var remaining []sync.Operation
	var dropped int
	var dropErr error

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			remaining = append(remaining, op)
			continue
		}

		applyErr := e.apply(ctx, userID, op)
		if applyErr == nil {
			continue
		}

		op.RetryCount++
		if op.RetryCount >= sync.MaxRetries {
			dropped++
			dropErr = applyErr
			e.log.Error("operation dropped permanently",
				slog.String("user_id", userID),
				slog.String("op_id", op.ID),
				slog.String("kind", string(op.Kind)),
				slog.String("error", applyErr.Error()),
			)
			continue
		}

		e.log.Warn("operation failed, will retry on next pass",
			slog.String("user_id", userID),
			slog.String("op_id", op.ID),
			slog.Int("retry_count", op.RetryCount),
			slog.String("error", applyErr.Error()),
		)
		remaining = append(remaining, op)
	}

	if err := e.queue.Replace(userID, remaining); err != nil {
		return err
	}

	if dropped > 0 {
		note := fmt.Sprintf("permanently failed to sync %d operation(s): %v", dropped, dropErr)
		if _, err := e.tracker.Update(userID, sync.StatusPatch{LastError: &note}); err != nil {
			return err
		}
	} else if len(remaining) == 0 {
		e.clearLastError(userID)
	}

	return nil
}

func (e *SyncEngine) apply(ctx context.Context, userID string, op sync.Operation) error {
	if op.Action == sync.ActionDelete {
		if err := e.remote.Delete(ctx, userID, op.Kind); err != nil && !errors.Is(err, sync.ErrRecordNotFound) {
			return err
		}
		return nil
	}

	switch op.Kind {
	case sync.KindProgress:
		return e.pushProgress(ctx, userID, op.Payload)
	default:
		return e.pushDocument(ctx, userID, op.Kind, op.Payload)
	}
}

// pushProgress отправляет прогресс на сервер, предварительно слив его
// с удалённой версией. Результат слияния становится новой локальной копией.
func (e *SyncEngine) pushProgress(ctx context.Context, userID string, payload json.RawMessage) error {
	var local progress.Record
	if err := json.Unmarshal(payload, &local); err != nil {
		return fmt.Errorf("decode progress payload: %w", err)
	}

	remoteRaw, err := e.remote.Fetch(ctx, userID, sync.KindProgress)
	switch {
	case errors.Is(err, sync.ErrRecordNotFound):
		return e.remote.Store(ctx, userID, sync.KindProgress, payload)
	case err != nil:
		return err
	}

	var remote progress.Record
	if err := json.Unmarshal(remoteRaw, &remote); err != nil {
		return fmt.Errorf("decode remote progress: %w", err)
	}

	merged, dropped := progress.Merge(remote, local)
	for _, d := range dropped {
		e.log.Info("conflict resolved, alternate value dropped",
			slog.String("user_id", userID),
			slog.String("field", d.Field),
			slog.Int("index", d.Index),
			slog.String("kept", d.Kept),
			slog.String("dropped", d.Dropped),
		)
	}

	mergedRaw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal merged progress: %w", err)
	}

	if err := e.remote.Store(ctx, userID, sync.KindProgress, mergedRaw); err != nil {
		return err
	}

	if err := e.records.SaveRecord(userID, sync.KindProgress, mergedRaw); err != nil {
		return sync.NewPersistenceError("save merged record", err)
	}
	return nil
}

// pushDocument сливает плоские JSON-документы (профиль, настройки):
// локальные ключи перекрывают удалённые
func (e *SyncEngine) pushDocument(ctx context.Context, userID string, kind sync.Kind, payload json.RawMessage) error {
	remoteRaw, err := e.remote.Fetch(ctx, userID, kind)
	switch {
	case errors.Is(err, sync.ErrRecordNotFound):
		return e.remote.Store(ctx, userID, kind, payload)
	case err != nil:
		return err
	}

	merged, err := overlayDocuments(remoteRaw, payload)
	if err != nil {
		return err
	}

	if err := e.remote.Store(ctx, userID, kind, merged); err != nil {
		return err
	}

	if err := e.records.SaveRecord(userID, kind, merged); err != nil {
		return sync.NewPersistenceError("save merged record", err)
	}
	return nil
}

func overlayDocuments(base, overlay json.RawMessage) (json.RawMessage, error) {
	var baseDoc, overlayDoc map[string]json.RawMessage
	if err := json.Unmarshal(base, &baseDoc); err != nil {
		return nil, fmt.Errorf("decode remote document: %w", err)
	}
	if err := json.Unmarshal(overlay, &overlayDoc); err != nil {
		return nil, fmt.Errorf("decode local document: %w", err)
	}

	for k, v := range overlayDoc {
		baseDoc[k] = v
	}

	merged, err := json.Marshal(baseDoc)
	if err != nil {
		return nil, fmt.Errorf("marshal merged document: %w", err)
	}
	return merged, nil
}

func (e *SyncEngine) clearLastError(userID string) {
	empty := ""
	if _, err := e.tracker.Update(userID, sync.StatusPatch{LastError: &empty}); err != nil {
		e.log.Warn("failed to clear last error",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
