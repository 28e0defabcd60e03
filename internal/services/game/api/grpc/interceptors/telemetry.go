// Package interceptors holds the game service's cross-cutting unary
// middleware.
package interceptors

import (
	"context"
	"log"
	"strings"
	"time"

	grpcmeta "github.com/louisbranch/seabattle/internal/services/game/api/grpc/metadata"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor writes one line per unary call with its method, status
// code, correlation ids, and duration. A nil logf uses log.Printf.
func LoggingInterceptor(logf func(string, ...any)) grpc.UnaryServerInterceptor {
	if logf == nil {
		logf = log.Printf
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)

		line := []string{
			"method=" + info.FullMethod,
			"code=" + status.Code(err).String(),
			"duration=" + time.Since(started).Round(time.Microsecond).String(),
		}
		if requestID := grpcmeta.RequestIDFromContext(ctx); requestID != "" {
			line = append(line, "request_id="+requestID)
		}
		if invocationID := grpcmeta.InvocationIDFromContext(ctx); invocationID != "" {
			line = append(line, "invocation_id="+invocationID)
		}
		if gameID := gameIDFromRequest(req); gameID != "" {
			line = append(line, "game_id="+gameID)
		}
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			line = append(line, "trace_id="+sc.TraceID().String(), "span_id="+sc.SpanID().String())
		}
		if err != nil {
			line = append(line, "error="+status.Convert(err).Message())
		}
		logf("grpc %s", strings.Join(line, " "))
		return resp, err
	}
}

type gameIDGetter interface {
	GetGameId() string
}

func gameIDFromRequest(req any) string {
	getter, ok := req.(gameIDGetter)
	if !ok {
		return ""
	}
	return strings.TrimSpace(getter.GetGameId())
}
