package store

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "store-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/store/{kind}",
		Summary:     "Получить документ пользователя",
		Tags:        []string{"store"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) putOp() huma.Operation {
	return huma.Operation{
		OperationID: "store-put",
		Method:      http.MethodPut,
		Path:        "/api/v1/store/{kind}",
		Summary:     "Записать документ пользователя",
		Description: "Создает документ или заменяет существующий целиком. Слияние конфликтующих версий выполняет клиент.",
		Tags:        []string{"store"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "store-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/store/{kind}",
		Summary:     "Удалить документ пользователя",
		Tags:        []string{"store"},
		Middlewares: h.middleware,
	}
}
