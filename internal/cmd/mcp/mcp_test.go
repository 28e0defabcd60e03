package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:8090" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SEABATTLE_MCP_GAME_ADDR", "env-game")
	t.Setenv("SEABATTLE_MCP_TOKEN", "env-token")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "flag-game", "-locale", "pt-BR"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "flag-game" {
		t.Fatalf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.Token != "env-token" {
		t.Fatalf("expected env token, got %q", cfg.Token)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("expected locale pt-BR, got %q", cfg.Locale)
	}
}
