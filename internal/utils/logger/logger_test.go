package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"lifesprint/internal/app/server/config"
)

func TestNew_LevelPerEnvironment(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		env          string
		debugEnabled bool
	}{
		{name: "local", env: config.EnvLocal, debugEnabled: true},
		{name: "dev", env: config.EnvDev, debugEnabled: true},
		{name: "prod", env: config.EnvProd, debugEnabled: false},
		{name: "unknown env falls back to info", env: "staging", debugEnabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.env)
			require.NotNil(t, log)

			assert.Equal(t, tt.debugEnabled, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))
			assert.True(t, log.Enabled(ctx, slog.LevelError))
		})
	}
}
