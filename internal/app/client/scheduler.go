package client

import (
	"context"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"
)

// Scheduler запускает периодические проходы синхронизации. Время жизни
// привязано к сессии: Start вызывается после входа, Stop при выходе,
// фоновая работа не переживает смену пользователя.
type Scheduler struct {
	engine   *SyncEngine
	interval time.Duration
	log      *slog.Logger

	mu     gosync.Mutex
	cancel context.CancelFunc
	wg     gosync.WaitGroup
}

func NewScheduler(engine *SyncEngine, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		interval: interval,
		log:      log.With("component", "scheduler"),
	}
}

// Start запускает таймер для пользователя. Повторный вызов без Stop
// перезапускает цикл с новым пользователем.
func (s *Scheduler) Start(ctx context.Context, userID string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx, userID)

	s.log.Debug("scheduler started",
		slog.String("user_id", userID),
		slog.Duration("interval", s.interval),
	)
}

// Stop останавливает таймер и дожидается завершения текущего прохода
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()

	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, userID string) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.engine.Drain(ctx, userID); err != nil {
				s.log.Warn("scheduled drain failed",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
