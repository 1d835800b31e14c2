package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lifesprint/internal/domain/sync"
)

// SQLiteStorage локальное долговременное хранилище клиента: очередь
// операций, статус синхронизации и кеш записей в одной базе SQLite
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sync_queue (
			user_id     TEXT NOT NULL,
			position    INTEGER NOT NULL,
			id          TEXT NOT NULL,
			kind        TEXT NOT NULL,
			action      TEXT NOT NULL,
			payload     BLOB NOT NULL,
			enqueued_at TEXT NOT NULL,
			retry_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, position)
		);

		CREATE TABLE IF NOT EXISTS sync_status (
			user_id       TEXT PRIMARY KEY,
			last_sync_at  TEXT NOT NULL,
			in_progress   BOOLEAN NOT NULL DEFAULT 0,
			last_error    TEXT NOT NULL DEFAULT '',
			pending_count INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS local_records (
			user_id    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			payload    BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (user_id, kind)
		);

		CREATE INDEX IF NOT EXISTS idx_sync_queue_user ON sync_queue(user_id);
	`)

	return err
}

// LoadQueue возвращает очередь пользователя в порядке постановки
func (s *SQLiteStorage) LoadQueue(userID string) ([]sync.Operation, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, action, payload, enqueued_at, retry_count
		FROM sync_queue
		WHERE user_id = ?
		ORDER BY position ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения очереди: %w", err)
	}
	defer rows.Close()

	var ops []sync.Operation
	for rows.Next() {
		var op sync.Operation
		var enqueuedAt string

		if err := rows.Scan(&op.ID, &op.Kind, &op.Action, (*[]byte)(&op.Payload),
			&enqueuedAt, &op.RetryCount); err != nil {
			return nil, fmt.Errorf("ошибка сканирования операции: %w", err)
		}

		op.EnqueuedAt, _ = time.Parse(time.RFC3339Nano, enqueuedAt)
		ops = append(ops, op)
	}

	return ops, rows.Err()
}

// SaveQueue атомарно заменяет очередь пользователя: либо сохраняется вся
// новая очередь, либо на диске остаётся прежняя
func (s *SQLiteStorage) SaveQueue(userID string, ops []sync.Operation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sync_queue WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("ошибка очистки очереди: %w", err)
	}

	for i, op := range ops {
		_, err := tx.Exec(`
			INSERT INTO sync_queue (user_id, position, id, kind, action, payload, enqueued_at, retry_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, userID, i, op.ID, op.Kind, op.Action, []byte(op.Payload),
			op.EnqueuedAt.Format(time.RFC3339Nano), op.RetryCount)
		if err != nil {
			return fmt.Errorf("ошибка записи операции %s: %w", op.ID, err)
		}
	}

	return tx.Commit()
}

// LoadStatus возвращает nil, если статус для пользователя ещё не создавался
func (s *SQLiteStorage) LoadStatus(userID string) (*sync.Status, error) {
	var status sync.Status
	var lastSyncAt string

	err := s.db.QueryRow(`
		SELECT last_sync_at, in_progress, last_error, pending_count
		FROM sync_status
		WHERE user_id = ?
	`, userID).Scan(&lastSyncAt, &status.InProgress, &status.LastError, &status.PendingCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения статуса: %w", err)
	}

	status.LastSyncAt, _ = time.Parse(time.RFC3339Nano, lastSyncAt)
	return &status, nil
}

func (s *SQLiteStorage) SaveStatus(userID string, status sync.Status) error {
	_, err := s.db.Exec(`
		INSERT INTO sync_status (user_id, last_sync_at, in_progress, last_error, pending_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			last_sync_at = excluded.last_sync_at,
			in_progress = excluded.in_progress,
			last_error = excluded.last_error,
			pending_count = excluded.pending_count
	`, userID, status.LastSyncAt.Format(time.RFC3339Nano),
		status.InProgress, status.LastError, status.PendingCount)

	if err != nil {
		return fmt.Errorf("ошибка сохранения статуса: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) DeleteStatus(userID string) error {
	if _, err := s.db.Exec("DELETE FROM sync_status WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("ошибка удаления статуса: %w", err)
	}
	return nil
}

// LoadRecord возвращает sync.ErrRecordNotFound, если записи нет в кеше
func (s *SQLiteStorage) LoadRecord(userID string, kind sync.Kind) (json.RawMessage, error) {
	var payload []byte

	err := s.db.QueryRow(`
		SELECT payload FROM local_records WHERE user_id = ? AND kind = ?
	`, userID, kind).Scan(&payload)

	if err == sql.ErrNoRows {
		return nil, sync.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения записи: %w", err)
	}

	return payload, nil
}

func (s *SQLiteStorage) SaveRecord(userID string, kind sync.Kind, payload json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO local_records (user_id, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, kind) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, userID, kind, []byte(payload), time.Now().UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("ошибка сохранения записи: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) DeleteRecord(userID string, kind sync.Kind) error {
	if _, err := s.db.Exec(
		"DELETE FROM local_records WHERE user_id = ? AND kind = ?", userID, kind); err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
