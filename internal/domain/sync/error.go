package sync

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrOffline        = errors.New("no connectivity")
	ErrInvalidKind    = errors.New("invalid record kind")
	ErrInvalidAction  = errors.New("invalid operation action")
)

// PersistenceError ошибка локального хранилища. Единственная категория,
// которая пробрасывается вызывающему синхронно: если локальная запись не
// удалась, гарантия долговечности очереди нарушена.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError оборачивает ошибку локального хранилища
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
