package store

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"lifesprint/internal/app/server/api/http/middleware/identity"
	"lifesprint/internal/domain/store"
	"lifesprint/internal/domain/sync"
)

type Handler struct {
	service    store.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service store.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.putOp(), h.put)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	userID, ok := identity.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	doc, err := h.service.Get(ctx, userID, sync.Kind(input.Kind))
	if err != nil {
		return nil, mapError(err)
	}

	return &getOutput{
		Body: documentResponse{
			Kind:      string(doc.Kind),
			Payload:   doc.Payload,
			UpdatedAt: doc.UpdatedAt,
		},
	}, nil
}

func (h *Handler) put(ctx context.Context, input *putInput) (*putOutput, error) {
	userID, ok := identity.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	doc, err := h.service.Put(ctx, userID, sync.Kind(input.Kind), input.Body.Payload)
	if err != nil {
		return nil, mapError(err)
	}

	return &putOutput{
		Body: documentResponse{
			Kind:      string(doc.Kind),
			Payload:   doc.Payload,
			UpdatedAt: doc.UpdatedAt,
		},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := identity.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, sync.Kind(input.Kind)); err != nil {
		return nil, mapError(err)
	}

	return &deleteOutput{
		Body: statusResponse{Status: "Ok"},
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound("document not found")
	case errors.Is(err, store.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
