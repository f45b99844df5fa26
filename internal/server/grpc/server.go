// Package grpcserver wires the coordinator's RPC surface onto a
// google.golang.org/grpc.Server: health checking, reflection, keepalive,
// and the custom wire codec (§6).
package grpcserver

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"ticksync/internal/scenario"
	"ticksync/pkg/api"
)

// Config holds gRPC server configuration.
type Config struct {
	Address string
}

// serverKeepalive matches §6: server-initiated pings every 10 minutes, 20s
// timeout, permitted with no in-flight calls.
var serverKeepalive = keepalive.ServerParameters{
	Time:    10 * time.Minute,
	Timeout: 20 * time.Second,
}

// keepaliveEnforcement matches §6's "minimum accepted ping interval 10s".
var keepaliveEnforcement = keepalive.EnforcementPolicy{
	MinTime:             10 * time.Second,
	PermitWithoutStream: true,
}

// Server wraps the gRPC service exposing the coordinator's RPC surface.
type Server struct {
	cfg    Config
	srv    *grpc.Server
	health *health.Server
	log    *zap.Logger
}

// New constructs a Server bound to sc, registering the coordinator service,
// the health service, and the reflection plugin.
func New(cfg Config, sc *scenario.Scenario, log *zap.Logger) *Server {
	// The custom codec registers itself by content-subtype in codec.go's
	// init(); grpc negotiates it per call from the client's content-type
	// header instead of forcing it server-wide, so health and reflection
	// (whose message types don't implement wireMessage) still round-trip
	// through the default proto codec.
	grpcSrv := grpc.NewServer(
		grpc.KeepaliveParams(serverKeepalive),
		grpc.KeepaliveEnforcementPolicy(keepaliveEnforcement),
	)

	s := &Server{
		cfg:    cfg,
		srv:    grpcSrv,
		health: health.NewServer(),
		log:    log,
	}

	api.RegisterCoordinatorServer(grpcSrv, NewCoordinator(sc, log))
	healthpb.RegisterHealthServer(grpcSrv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	reflection.Register(grpcSrv)
	return s
}

// Start begins listening on the configured address and serving in the
// background. It returns once the listener is bound so the caller can
// treat bind failure as a synchronous error (§6: non-zero exit on bind
// failure).
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Address == "" {
		return fmt.Errorf("grpcserver: address is empty")
	}
	lis, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("grpcserver: listen %s: %w", s.cfg.Address, err)
	}

	s.setServing(true)
	go func() {
		<-ctx.Done()
		s.setServing(false)
		s.srv.GracefulStop()
	}()
	go func() {
		if err := s.srv.Serve(lis); err != nil {
			s.log.Error("grpc serve exited", zap.Error(err))
		}
	}()
	s.log.Info("coordinator listening", zap.String("address", s.cfg.Address))
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.setServing(false)
	s.srv.GracefulStop()
}

func (s *Server) setServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}
