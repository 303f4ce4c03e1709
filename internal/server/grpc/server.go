package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	pb "github.com/dmitrijs2005/vaultkeeper/internal/proto"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/models"
	"google.golang.org/grpc"
)

// ResourceAdder is the part of resources.Service the transport needs.
type ResourceAdder interface {
	Add(ctx context.Context, uac identity.AccessControl, raw map[string]any, apiVersion string) (*models.ResourceView, error)
}

type GRPCServer struct {
	address   string
	resources ResourceAdder
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, rs ResourceAdder, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		resources: rs,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds a grpc.Server with interceptors and services registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterResourceServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
