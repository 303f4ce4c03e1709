// Package health exposes a liveness endpoint.
package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
)

type Output struct {
	Body Response
}

type Response struct {
	Status string `json:"status" example:"OK" doc:"Health status of the service"`
}

type Handler struct {
	log        logging.Logger
	middleware huma.Middlewares
}

func NewHandler(log logging.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{log: log, middleware: middleware}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) healthCheck(ctx context.Context, _ *struct{}) (*Output, error) {
	h.log.Debug(ctx, "health check")
	return &Output{Body: Response{Status: "OK"}}, nil
}
