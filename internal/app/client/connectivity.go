package client

import (
	"context"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"
)

// ConnectivityMonitor периодически опрашивает сервер и сообщает подписчикам
// о смене состояния сети. Переход offline -> online служит триггером для
// внеочередного прохода синхронизации.
type ConnectivityMonitor struct {
	remote   RemoteStore
	interval time.Duration
	log      *slog.Logger

	mu       gosync.Mutex
	online   bool
	known    bool
	onChange []func(online bool)
	cancel   context.CancelFunc
	wg       gosync.WaitGroup
}

func NewConnectivityMonitor(remote RemoteStore, interval time.Duration, log *slog.Logger) *ConnectivityMonitor {
	return &ConnectivityMonitor{
		remote:   remote,
		interval: interval,
		log:      log.With("component", "connectivity"),
	}
}

// Subscribe регистрирует обработчик смены состояния. Обработчики вызываются
// последовательно из фонового цикла, только на переходах.
func (m *ConnectivityMonitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Online возвращает последнее известное состояние сети
func (m *ConnectivityMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *ConnectivityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go m.run(ctx)
}

func (m *ConnectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	m.wg.Wait()
}

func (m *ConnectivityMonitor) run(ctx context.Context) {
	defer m.wg.Done()

	// Первый опрос сразу, дальше по таймеру
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *ConnectivityMonitor) probe(ctx context.Context) {
	online := m.remote.Ping(ctx) == nil

	m.mu.Lock()
	changed := !m.known || online != m.online
	m.known = true
	m.online = online
	handlers := make([]func(bool), len(m.onChange))
	copy(handlers, m.onChange)
	m.mu.Unlock()

	if !changed {
		return
	}

	if online {
		m.log.Info("connectivity restored")
	} else {
		m.log.Info("connectivity lost")
	}

	for _, fn := range handlers {
		fn(online)
	}
}
