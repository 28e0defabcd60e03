package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/seabattle/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SEABATTLE_OTEL_ENDPOINT", "")

	shutdown, err := otel.Setup(context.Background(), "game")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SEABATTLE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SEABATTLE_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "game")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetupRejectsInvalidSettings(t *testing.T) {
	t.Setenv("SEABATTLE_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "game"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export succeeds.
	t.Setenv("SEABATTLE_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("SEABATTLE_OTEL_SAMPLE_RATIO", "0.5")

	shutdown, err := otel.Setup(context.Background(), "game")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
