// Package httpapi assembles the HTTP API (huma on chi) and runs the server.
//
//	GET  /healthz     liveness (public)
//	POST /resources   create a resource (bearer)
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/httpapi/health"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/httpapi/middleware/auth"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/httpapi/middleware/logger"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/httpapi/resource"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// Register adds every operation to api.
func Register(api huma.API, service resource.Servicer, secretKey string, log logging.Logger) {
	loggerMW := logger.New(log).Middleware()
	authMW := auth.New(api, secretKey, log).Middleware()

	health.NewHandler(log, huma.Middlewares{loggerMW}).SetupRoutes(api)
	resource.NewHandler(service, log, huma.Middlewares{loggerMW, authMW}).SetupRoutes(api)
}

// New returns a router serving the API and its OpenAPI document.
func New(service resource.Servicer, secretKey string, log logging.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("vaultkeeper API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	Register(humachi.New(mux, config), service, secretKey, log)
	return mux
}

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, handler http.Handler, l logging.Logger) *Server {
	return &Server{address: address, handler: handler, logger: l.With("module", "http_server")}
}

func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
