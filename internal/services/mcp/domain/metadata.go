package domain

import (
	"context"

	"github.com/louisbranch/seabattle/internal/platform/id"
	grpcmeta "github.com/louisbranch/seabattle/internal/services/game/api/grpc/metadata"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/metadata"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	RequestID    string
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// NewOutgoingContext attaches request metadata to a context.
func NewOutgoingContext(ctx context.Context, invocationID, locale string) (context.Context, ToolCallMetadata, error) {
	requestID, err := id.NewID()
	if err != nil {
		return nil, ToolCallMetadata{}, err
	}
	callCtx := grpcmeta.OutgoingContext(ctx, requestID, invocationID, locale)
	return callCtx, ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}, nil
}

// MergeResponseMetadata overlays response headers on top of sent metadata.
func MergeResponseMetadata(sent ToolCallMetadata, header metadata.MD) ToolCallMetadata {
	requestID := grpcmeta.FirstMetadataValue(header, grpcmeta.RequestIDHeader)
	if requestID == "" {
		requestID = sent.RequestID
	}

	invocationID := grpcmeta.FirstMetadataValue(header, grpcmeta.InvocationIDHeader)
	if invocationID == "" {
		invocationID = sent.InvocationID
	}

	return ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			grpcmeta.RequestIDHeader: meta.RequestID,
		},
	}
	if meta.InvocationID != "" {
		result.Meta[grpcmeta.InvocationIDHeader] = meta.InvocationID
	}
	return result
}
