package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"lifesprint/internal/app/client/config"
	"lifesprint/internal/domain/progress"
	"lifesprint/internal/domain/sync"
)

type App struct {
	config    *config.Config
	log       *slog.Logger
	remote    *httpRemote
	storage   Storage
	tracker   *StatusTracker
	queue     *DurableQueue
	engine    *SyncEngine
	scheduler *Scheduler
	monitor   *ConnectivityMonitor
	state     *AppState
	mu        gosync.RWMutex
}

// AppState хранит состояние приложения между запусками
type AppState struct {
	Initialized bool      `json:"initialized"`
	UserID      string    `json:"user_id"`
	SprintStart time.Time `json:"sprint_start"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	state, err := loadAppState(cfg)
	if err != nil {
		log.Warn("Не удалось загрузить состояние приложения", "error", err)
		state = &AppState{}
	}

	remote, err := NewHTTPRemote(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	// Инициализируем локальное хранилище (используем SQLite)
	var storage Storage
	sqliteStorage, err := NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	tracker := NewStatusTracker(storage, log)
	queue := NewDurableQueue(storage, tracker, log)
	engine := NewSyncEngine(queue, tracker, storage, remote, log)

	app := &App{
		config:    cfg,
		log:       log,
		remote:    remote,
		storage:   storage,
		tracker:   tracker,
		queue:     queue,
		engine:    engine,
		scheduler: NewScheduler(engine, time.Duration(cfg.SyncInterval)*time.Second, log),
		monitor:   NewConnectivityMonitor(remote, 30*time.Second, log),
		state:     state,
	}

	if state.UserID != "" {
		remote.SetUserID(state.UserID)
	}

	return app, nil
}

func loadAppState(cfg *config.Config) (*AppState, error) {
	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		return &AppState{}, nil
	}

	data, err := os.ReadFile(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(a.config.StatePath, data, 0600)
}

// Start поднимает фоновую синхронизацию текущей сессии: периодический
// таймер и монитор сети, который запускает внеочередной проход при
// восстановлении связи.
func (a *App) Start(ctx context.Context) error {
	userID := a.CurrentUser()
	if userID == "" {
		return fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	a.monitor.Subscribe(func(online bool) {
		if online {
			if err := a.engine.Drain(ctx, userID); err != nil {
				a.log.Warn("Ошибка синхронизации при восстановлении связи", "error", err)
			}
			return
		}

		note := "no connectivity"
		if _, err := a.tracker.Update(userID, sync.StatusPatch{LastError: &note}); err != nil {
			a.log.Warn("Не удалось обновить статус", "error", err)
		}
	})

	a.monitor.Start(ctx)
	a.scheduler.Start(ctx, userID)

	a.log.Info("Клиент запущен",
		"server", a.config.ServerAddress,
		"env", a.config.Env,
	)

	return nil
}

// Shutdown останавливает фоновую работу и закрывает хранилище
func (a *App) Shutdown() {
	a.log.Info("Завершение работы клиента...")

	a.scheduler.Stop()
	a.monitor.Stop()

	if err := a.storage.Close(); err != nil {
		a.log.Warn("Ошибка закрытия хранилища", "error", err)
	}

	a.log.Info("Клиент завершил работу")
}

// IsInitialized проверяет, инициализирован ли клиент
func (a *App) IsInitialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Initialized
}

// CurrentUser возвращает идентификатор текущего пользователя
func (a *App) CurrentUser() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.UserID
}

// Init привязывает клиент к пользователю и запускает новый спринт
func (a *App) Init(ctx context.Context, userID string, startDate time.Time) error {
	if userID == "" {
		return fmt.Errorf("идентификатор пользователя не может быть пустым")
	}

	a.remote.SetUserID(userID)

	// Сервер недоступен — начинаем спринт с чистого листа, изменения
	// доедут до него через очередь
	rec, err := a.loadProgress(ctx, userID)
	if errors.Is(err, sync.ErrRecordNotFound) || errors.Is(err, sync.ErrOffline) {
		rec = progress.New(startDate)
	} else if err != nil {
		a.remote.SetUserID("")
		return err
	}

	a.mu.Lock()
	a.state.Initialized = true
	a.state.UserID = userID
	a.state.SprintStart = startDate
	err = a.saveAppState()
	a.mu.Unlock()
	if err != nil {
		a.remote.SetUserID("")
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	if err := a.engine.UpdateRemoteProgress(ctx, userID, rec); err != nil {
		return err
	}

	a.log.Info("Клиент инициализирован", "user_id", userID)
	return nil
}

// Logout завершает сессию: останавливает фоновую работу и сбрасывает
// статус синхронизации в нулевое состояние
func (a *App) Logout() error {
	userID := a.CurrentUser()

	a.scheduler.Stop()
	a.monitor.Stop()

	if userID != "" {
		if err := a.tracker.Reset(userID); err != nil {
			return err
		}
	}

	a.mu.Lock()
	a.state.UserID = ""
	a.state.Initialized = false
	err := a.saveAppState()
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("ошибка сохранения состояния: %w", err)
	}

	a.remote.SetUserID("")
	return nil
}

// Progress возвращает текущий прогресс: локальная копия в приоритете,
// при её отсутствии пробуем сервер
func (a *App) Progress(ctx context.Context) (progress.Record, error) {
	userID := a.CurrentUser()
	if userID == "" {
		return progress.Record{}, fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	return a.loadProgress(ctx, userID)
}

func (a *App) loadProgress(ctx context.Context, userID string) (progress.Record, error) {
	raw, err := a.storage.LoadRecord(userID, sync.KindProgress)
	if errors.Is(err, sync.ErrRecordNotFound) {
		remoteRaw, remoteErr := a.remote.Fetch(ctx, userID, sync.KindProgress)
		if remoteErr != nil {
			return progress.Record{}, remoteErr
		}
		if saveErr := a.storage.SaveRecord(userID, sync.KindProgress, remoteRaw); saveErr != nil {
			a.log.Warn("Не удалось сохранить прогресс локально", "error", saveErr)
		}
		raw = remoteRaw
	} else if err != nil {
		return progress.Record{}, err
	}

	var rec progress.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return progress.Record{}, fmt.Errorf("ошибка чтения прогресса: %w", err)
	}

	// Пустые карты опускаются при сериализации; восстанавливаем их,
	// чтобы записи можно было добавлять без проверок на nil
	if rec.Days == nil {
		rec.Days = make(map[int]progress.DayEntry)
	}
	if rec.Weeks == nil {
		rec.Weeks = make(map[int]progress.WeekReflection)
	}
	return rec, nil
}

// UpdateDay применяет мутацию к дневной записи и отправляет прогресс
// на сервер. Пустая запись создаётся на лету.
func (a *App) UpdateDay(ctx context.Context, day int, mutate func(*progress.DayEntry)) error {
	if day < 1 {
		return fmt.Errorf("номер дня должен быть положительным")
	}

	userID := a.CurrentUser()
	if userID == "" {
		return fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	rec, err := a.loadProgress(ctx, userID)
	if errors.Is(err, sync.ErrRecordNotFound) {
		rec = progress.New(a.sprintStart())
	} else if err != nil && !errors.Is(err, sync.ErrOffline) {
		return err
	} else if errors.Is(err, sync.ErrOffline) {
		rec = progress.New(a.sprintStart())
	}

	entry := rec.Days[day]
	mutate(&entry)
	rec.Days[day] = entry
	if day > rec.CurrentDay {
		rec.CurrentDay = day
	}

	return a.engine.UpdateRemoteProgress(ctx, userID, rec)
}

// UpdateWeek применяет мутацию к недельной рефлексии
func (a *App) UpdateWeek(ctx context.Context, week int, mutate func(*progress.WeekReflection)) error {
	if week < 1 {
		return fmt.Errorf("номер недели должен быть положительным")
	}

	userID := a.CurrentUser()
	if userID == "" {
		return fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	rec, err := a.loadProgress(ctx, userID)
	if errors.Is(err, sync.ErrRecordNotFound) || errors.Is(err, sync.ErrOffline) {
		rec = progress.New(a.sprintStart())
	} else if err != nil {
		return err
	}

	reflection := rec.Weeks[week]
	mutate(&reflection)
	rec.Weeks[week] = reflection

	return a.engine.UpdateRemoteProgress(ctx, userID, rec)
}

func (a *App) sprintStart() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state.SprintStart.IsZero() {
		return time.Now()
	}
	return a.state.SprintStart
}

// SyncNow запускает внеочередной проход синхронизации
func (a *App) SyncNow(ctx context.Context) error {
	userID := a.CurrentUser()
	if userID == "" {
		return fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	if err := a.remote.Ping(ctx); err != nil {
		return err
	}

	return a.engine.Drain(ctx, userID)
}

// SyncStatus возвращает текущий статус синхронизации
func (a *App) SyncStatus() (sync.Status, error) {
	userID := a.CurrentUser()
	if userID == "" {
		return sync.Status{}, fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	return a.tracker.Get(userID)
}

// PendingOperations возвращает содержимое очереди отложенных операций
func (a *App) PendingOperations() ([]sync.Operation, error) {
	userID := a.CurrentUser()
	if userID == "" {
		return nil, fmt.Errorf("пользователь не задан. Выполните: lifesprint init")
	}

	return a.queue.List(userID)
}

// CheckConnection проверяет соединение с сервером
func (a *App) CheckConnection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.remote.Ping(ctx)
}
