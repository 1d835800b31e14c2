package health

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestHandler_Ping(t *testing.T) {
	handler := NewHandler(slog.Default(), huma.Middlewares{})

	output, err := handler.ping(context.Background(), &pingInput{})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, "OK", output.Body.Status)
	assert.Equal(t, serviceName, output.Body.Service)
}

func TestNewHandler(t *testing.T) {
	log := slog.Default()
	handler := NewHandler(log, huma.Middlewares{})

	assert.NotNil(t, handler)
	assert.Equal(t, log, handler.log)
}
