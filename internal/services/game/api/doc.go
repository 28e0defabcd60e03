// Package api contains the game service transports.
//
// gRPC is the only transport. Its services live under grpc/game and are
// guarded by the interceptors in grpc/auth, grpc/metadata and
// grpc/interceptors. The MCP bridge calls them through
// internal/services/mcp/service.
package api
