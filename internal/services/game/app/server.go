package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the JSON codec the game messages travel with.
	_ "github.com/louisbranch/seabattle/internal/platform/grpc"
	"github.com/louisbranch/seabattle/internal/platform/id"
	"github.com/louisbranch/seabattle/internal/platform/timeouts"
	"github.com/louisbranch/seabattle/internal/services/auth/identity"
	"github.com/louisbranch/seabattle/internal/services/game/api/grpc/auth"
	gamegrpc "github.com/louisbranch/seabattle/internal/services/game/api/grpc/game"
	"github.com/louisbranch/seabattle/internal/services/game/api/grpc/interceptors"
	grpcmeta "github.com/louisbranch/seabattle/internal/services/game/api/grpc/metadata"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/engine"
	storagesqlite "github.com/louisbranch/seabattle/internal/services/game/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds everything a game server needs.
type Config struct {
	// Addr is the listen address, e.g. ":8090" or "127.0.0.1:0".
	Addr string
	// DBPath is the sqlite file; empty means data/game.db.
	DBPath string
	// TokenKey verifies player tokens.
	TokenKey []byte
	// Rules defaults to the classic 10x10 board.
	Rules   board.Rules
	Options match.Options
	Logf    func(string, ...any)
}

// Server hosts the sea battle game server.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *storagesqlite.Store
}

// New creates a configured game server listening on the provided port.
func New(port int, cfg Config) (*Server, error) {
	cfg.Addr = fmt.Sprintf(":%d", port)
	return NewWithAddr(cfg)
}

// NewWithAddr creates a configured game server listening on cfg.Addr.
func NewWithAddr(cfg Config) (*Server, error) {
	resolver, err := identity.NewHMACResolver(cfg.TokenKey, time.Now)
	if err != nil {
		return nil, fmt.Errorf("token resolver: %w", err)
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	store, err := openGameStore(cfg.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	eng, err := engine.New(store, engine.Config{Rules: cfg.Rules, Options: cfg.Options})
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("game engine: %w", err)
	}
	gameService, err := gamegrpc.NewGameService(eng)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}
	historyService, err := gamegrpc.NewHistoryService(eng)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(id.NewID),
			interceptors.LoggingInterceptor(cfg.Logf),
			auth.UnaryServerInterceptor(resolver),
		),
		grpc.StreamInterceptor(grpcmeta.StreamServerInterceptor(id.NewID)),
	)
	healthServer := health.NewServer()
	gamegrpc.RegisterGameServer(grpcServer, gameService)
	gamegrpc.RegisterHistoryServer(grpcServer, historyService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gamegrpc.GameServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gamegrpc.HistoryServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	rules := eng.Rules()
	log.Printf("game rules: %dx%d board, %d ships, strict turns %t, legacy ready cascade %t",
		rules.Width, rules.Height, rules.Fleet.Total(), eng.Options().StrictTurns, eng.Options().LegacyReadyCascade)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the game server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	grpcServer, err := NewWithAddr(cfg)
	if err != nil {
		return err
	}
	return grpcServer.Serve(ctx)
}

// Serve starts the game server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("game server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.stop()
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		return handleErr(err)
	}
}

// stop drains in-flight calls, forcing the stop when draining takes too long.
func (s *Server) stop() {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeouts.Shutdown):
		log.Printf("game server drain exceeded %v, forcing stop", timeouts.Shutdown)
		s.grpcServer.Stop()
	}
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close game store: %v", err)
	}
}

func openGameStore(path string) (*storagesqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "game.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}
