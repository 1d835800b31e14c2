package identity

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Identity извлекает идентификатор пользователя из заголовка X-User-Id.
// Сервер доверяет заголовку: аутентификация выносится на внешний слой
// (reverse proxy или шлюз).
type Identity struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Identity {
	return &Identity{
		log: log.With("component", "identity_middleware"),
	}
}

type contextKey string

const userIDKey contextKey = "userID"

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID кладет идентификатор пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (i *Identity) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID := ctx.Header("X-User-Id")
		if userID == "" {
			i.log.Debug("request without user id rejected",
				slog.String("path", ctx.URL().Path),
			)
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")

			w := ctx.BodyWriter()
			if err := json.NewEncoder(w).Encode(map[string]string{
				"error": "missing X-User-Id header",
			}); err != nil {
				i.log.Error("failed to write error response", "error", err)
			}
			return
		}

		next(huma.WithValue(ctx, userIDKey, userID))
	}
}
