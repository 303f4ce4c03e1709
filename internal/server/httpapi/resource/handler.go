// Package resource serves resource creation over HTTP.
package resource

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/api"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
)

type Servicer interface {
	Add(ctx context.Context, uac identity.AccessControl, raw map[string]any, apiVersion string) (*models.ResourceView, error)
}

type Handler struct {
	service    Servicer
	log        logging.Logger
	middleware huma.Middlewares
}

func NewHandler(service Servicer, log logging.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("module", "http_resources"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.addOp(), h.add)
}

func (h *Handler) add(ctx context.Context, in *addInput) (*addOutput, error) {
	uac, ok := identity.FromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	view, err := h.service.Add(ctx, uac, in.Body, in.APIVersion)
	if err != nil {
		var verr *resources.ValidationError
		if errors.As(err, &verr) {
			return nil, &validationProblem{api.NewValidationErrorResponse(verr.Fields)}
		}
		h.log.Error(ctx, "add resource failed", "error", err)
		return nil, huma.Error500InternalServerError(api.MessageInternalError)
	}

	return &addOutput{Body: api.NewAddResourceResponse(view)}, nil
}
