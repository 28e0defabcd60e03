package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	platformgrpc "github.com/louisbranch/seabattle/internal/platform/grpc"
	"github.com/louisbranch/seabattle/internal/platform/timeouts"
	gamegrpc "github.com/louisbranch/seabattle/internal/services/game/api/grpc/game"
	"github.com/louisbranch/seabattle/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Sea Battle MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	GRPCAddr string
	// Token is the player token every tool acts with.
	Token string
	// Locale selects the language of game messages.
	Locale string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// newServer registers every tool against conn.
func newServer(conn *grpc.ClientConn, player domain.Player) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	if err := registerTools(mcpServer, gamegrpc.NewGameClient(conn), gamegrpc.NewHistoryClient(conn), player); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer, conn: conn}, nil
}

func registerTools(server *mcp.Server, games domain.GameClient, history domain.HistoryClient, player domain.Player) error {
	if server == nil {
		return errors.New("mcp server is required")
	}
	if games == nil || history == nil {
		return errors.New("game clients are required")
	}
	mcp.AddTool(server, domain.GamesListTool(), domain.GamesListHandler(games, player))
	mcp.AddTool(server, domain.GameCreateTool(), domain.GameCreateHandler(games, player))
	mcp.AddTool(server, domain.GameJoinTool(), domain.GameJoinHandler(games, player))
	mcp.AddTool(server, domain.GameDeleteTool(), domain.GameDeleteHandler(games, player))
	mcp.AddTool(server, domain.ShipPlaceTool(), domain.ShipPlaceHandler(games, player))
	mcp.AddTool(server, domain.PlayerReadyTool(), domain.PlayerReadyHandler(games, player))
	mcp.AddTool(server, domain.FireTool(), domain.FireHandler(games, player))
	mcp.AddTool(server, domain.GameStatusTool(), domain.GameStatusHandler(games, player))
	mcp.AddTool(server, domain.BoardViewTool(), domain.BoardViewHandler(games, player))
	mcp.AddTool(server, domain.HistoryTopTool(), domain.HistoryTopHandler(history, player))
	return nil
}

// Run is the service entrypoint for MCP over stdio and blocks until context
// cancellation.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return errors.New("player token is required")
	}
	conn, err := dialGameGRPC(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	server, err := newServer(conn, domain.Player{Token: token, Locale: strings.TrimSpace(cfg.Locale)})
	if err != nil {
		_ = conn.Close()
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport starts the MCP server using the provided transport. The
// gRPC connection closes with it.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func dialGameGRPC(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logf := func(format string, args ...any) {
		log.Printf("game %s", fmt.Sprintf(format, args...))
	}
	conn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		addr,
		timeouts.GRPCDial,
		logf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) {
			if dialErr.Stage == platformgrpc.DialStageConnect {
				return nil, fmt.Errorf("connect to game server at %s: %w", addr, dialErr.Err)
			}
			return nil, dialErr.Err
		}
		return nil, err
	}
	return conn, nil
}
