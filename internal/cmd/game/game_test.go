package game

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8090 {
		t.Fatalf("expected default port 8090, got %d", cfg.Port)
	}
	if cfg.DBPath != "data/game.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if !cfg.LegacyReadyCascade {
		t.Fatal("expected legacy ready cascade by default")
	}
	if cfg.StrictTurns {
		t.Fatal("expected advisory turns by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SEABATTLE_LEGACY_READY_CASCADE", "false")
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001", "-addr", "127.0.0.1:9999", "-strict-turns"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected port 9001, got %d", cfg.Port)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", cfg.Addr)
	}
	if !cfg.StrictTurns || cfg.LegacyReadyCascade {
		t.Fatalf("options = strict %t cascade %t, want strict only", cfg.StrictTurns, cfg.LegacyReadyCascade)
	}
}

func TestServerConfig(t *testing.T) {
	got, err := ServerConfig(Config{Port: 8090, TokenKey: "000102030405060708090a0b0c0d0e0f", StrictTurns: true})
	if err != nil {
		t.Fatalf("server config: %v", err)
	}
	if got.Addr != ":8090" {
		t.Fatalf("addr = %q, want %q", got.Addr, ":8090")
	}
	if len(got.TokenKey) != 16 {
		t.Fatalf("key length = %d, want 16", len(got.TokenKey))
	}
	if !got.Options.StrictTurns {
		t.Fatal("expected strict turns")
	}
}

func TestServerConfigRequiresKey(t *testing.T) {
	if _, err := ServerConfig(Config{Port: 8090}); err == nil {
		t.Fatal("expected error")
	}
}
