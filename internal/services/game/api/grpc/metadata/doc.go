// Package metadata handles the gRPC headers that travel with every sea
// battle call.
//
// # Header Constants
//
//   - RequestIDHeader: correlates logs across the MCP bridge and the game service.
//   - InvocationIDHeader: tracks MCP tool invocations.
//   - LocaleHeader: selects the language of response messages.
package metadata
