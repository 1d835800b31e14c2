package client

import "context"

type ctxKey struct{}

// NewContext кладёт приложение в контекст команды
func NewContext(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, app)
}

// FromContext достаёт приложение, положенное через NewContext
func FromContext(ctx context.Context) (*App, bool) {
	app, ok := ctx.Value(ctxKey{}).(*App)
	return app, ok && app != nil
}
