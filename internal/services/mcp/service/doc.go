// Package service hosts the sea battle MCP server and wires its tools to the
// game service over gRPC.
package service
