package metadata

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestRequestIDContextHelpers(t *testing.T) {
	if RequestIDFromContext(nil) != "" {
		t.Fatal("expected empty request id for nil context")
	}

	ctx := WithRequestID(nil, "req-1")
	if RequestIDFromContext(ctx) != "req-1" {
		t.Fatalf("expected request id req-1, got %s", RequestIDFromContext(ctx))
	}
}

func TestInvocationIDContextHelpers(t *testing.T) {
	if InvocationIDFromContext(nil) != "" {
		t.Fatal("expected empty invocation id for nil context")
	}

	ctx := WithInvocationID(nil, "inv-1")
	if InvocationIDFromContext(ctx) != "inv-1" {
		t.Fatalf("expected invocation id inv-1, got %s", InvocationIDFromContext(ctx))
	}
}

func TestIsPrintableASCII(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: false},
		{value: "hello", want: true},
		{value: "line\n", want: false},
		{value: string([]byte{0x7f}), want: false},
	}
	for _, tt := range tests {
		if got := IsPrintableASCII(tt.value); got != tt.want {
			t.Fatalf("IsPrintableASCII(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFirstMetadataValue(t *testing.T) {
	md := metadata.MD{
		"X-Seabattle-Request-Id": {"\n", "req-1"},
	}
	if value := FirstMetadataValue(md, RequestIDHeader); value != "req-1" {
		t.Fatalf("value = %q, want req-1", value)
	}
	if FirstMetadataValue(metadata.MD{}, RequestIDHeader) != "" {
		t.Fatal("expected empty value for empty metadata")
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, "pt-BR"))
	if got := LocaleFromContext(ctx); got != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", got)
	}
	if got := LocaleFromContext(context.Background()); got != "" {
		t.Fatalf("locale = %q, want empty", got)
	}
}

func TestEnsureRequestMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		RequestIDHeader, "req-1",
		InvocationIDHeader, "inv-1",
	))

	updated, requestID, invocationID, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "generated", nil
	})
	if err != nil {
		t.Fatalf("ensure request metadata: %v", err)
	}
	if requestID != "req-1" || invocationID != "inv-1" {
		t.Fatalf("expected ids from metadata, got %s/%s", requestID, invocationID)
	}
	if RequestIDFromContext(updated) != "req-1" {
		t.Fatal("expected request id stored in context")
	}
	if InvocationIDFromContext(updated) != "inv-1" {
		t.Fatal("expected invocation id stored in context")
	}
}

func TestEnsureRequestMetadataGeneratesID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

	updated, requestID, invocationID, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "generated", nil
	})
	if err != nil {
		t.Fatalf("ensure request metadata: %v", err)
	}
	if requestID != "generated" || invocationID != "" {
		t.Fatalf("expected generated request id, got %s/%s", requestID, invocationID)
	}
	if RequestIDFromContext(updated) != "generated" {
		t.Fatal("expected generated request id stored in context")
	}
}

func TestEnsureRequestMetadataGeneratorFailure(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})

	_, _, _, err := ensureRequestMetadata(ctx, func() (string, error) {
		return "", errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected generator error")
	}
}

func TestResponseHeaders(t *testing.T) {
	md := responseHeaders("req-1", "")
	if FirstMetadataValue(md, RequestIDHeader) != "req-1" {
		t.Fatal("expected request id in response headers")
	}
	if FirstMetadataValue(md, InvocationIDHeader) != "" {
		t.Fatal("expected empty invocation id when missing")
	}

	md = responseHeaders("req-1", "inv-1")
	if FirstMetadataValue(md, InvocationIDHeader) != "inv-1" {
		t.Fatal("expected invocation id in response headers")
	}
}

func TestOutgoingContext(t *testing.T) {
	ctx := OutgoingContext(context.Background(), "req-1", "", "pt-BR")
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Fatal("expected outgoing metadata")
	}
	if FirstMetadataValue(md, RequestIDHeader) != "req-1" || FirstMetadataValue(md, LocaleHeader) != "pt-BR" {
		t.Fatalf("md = %v", md)
	}
	if FirstMetadataValue(md, InvocationIDHeader) != "" {
		t.Fatal("expected no invocation id")
	}

	bare := context.Background()
	if OutgoingContext(bare, "", "", "") != bare {
		t.Fatal("expected context unchanged without values")
	}
}
