package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) pingOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Проверка доступности сервиса",
		Description: "Клиенты опрашивают этот эндпоинт, чтобы решить, работать онлайн или копить изменения в очереди.",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
