//хранение документов прогресса, профиля и настроек пользователя;
//синхронизация данных между клиентами одного владельца;
//выдача документов владельцу по запросу.

//GET    /api/v1/health        # Проверка доступности (публичный)
//GET    /api/v1/store/{kind}  # Получить документ (X-User-Id)
//PUT    /api/v1/store/{kind}  # Записать документ (X-User-Id)
//DELETE /api/v1/store/{kind}  # Удалить документ (X-User-Id)

package api

import (
	healthAPI "lifesprint/internal/app/server/api/http/health"
	"lifesprint/internal/app/server/api/http/middleware"
	"lifesprint/internal/app/server/api/http/middleware/identity"
	"lifesprint/internal/app/server/api/http/middleware/logger"
	storeAPI "lifesprint/internal/app/server/api/http/store"
	"lifesprint/internal/domain/store"
	"lifesprint/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Store  *storeAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("LifeSprint API", "1.0.0")

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.Store.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	identityMW := identity.New(log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	storeRepo := postgres.NewStoreRepository(storage, log)
	storeService := store.NewService(storeRepo, log)
	middlewares.Add(identityMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	storeHandler := storeAPI.NewHandler(storeService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Store:  storeHandler,
	}
}
