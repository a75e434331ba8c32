// Package grpc exposes the CrossClip services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/crossclip/internal/api"
	"github.com/dmitrijs2005/crossclip/internal/logging"
	"github.com/dmitrijs2005/crossclip/internal/server/metrics"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	"github.com/dmitrijs2005/crossclip/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the account side of the API.
type UserService interface {
	SignIn(ctx context.Context, googleIDToken string) (*services.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// ItemService is the shared-item side of the API.
type ItemService interface {
	Add(ctx context.Context, userID string, item *models.Item) (string, error)
	List(ctx context.Context, userID string) ([]*models.Item, error)
	Delete(ctx context.Context, userID, id string) error
}

type GRPCServer struct {
	api.UnimplementedCrossClipServiceServer
	address   string
	users     UserService
	items     ItemService
	logger    logging.Logger
	jwtSecret []byte
	limiter   *userLimiter
	metrics   metrics.Recorder
}

// Option tunes optional server behaviour.
type Option func(*GRPCServer)

// WithRateLimit caps each user at rps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *GRPCServer) {
		if rps > 0 && burst > 0 {
			s.limiter = newUserLimiter(rps, burst)
		}
	}
}

// WithMetrics reports every RPC into r.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *GRPCServer) { s.metrics = r }
}

func NewGRPCServer(a string, l logging.Logger, us UserService, is ItemService, secretKey string, opts ...Option) *GRPCServer {
	s := &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		items:     is,
		jwtSecret: []byte(secretKey),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewServer builds the grpc.Server with the interceptor chain and the
// CrossClip service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metricsInterceptor,
		s.accessTokenInterceptor,
		s.rateLimitInterceptor,
	))
	api.RegisterCrossClipServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
