package devtoken

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/seabattle/internal/services/auth/identity"
)

const testKey = "000102030405060708090a0b0c0d0e0f"

func TestParseConfigReadsKeyFromEnv(t *testing.T) {
	t.Setenv("SEABATTLE_TOKEN_KEY", testKey)
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-user", "alice"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TokenKey != testKey {
		t.Fatalf("TokenKey = %q, want %q", cfg.TokenKey, testKey)
	}
	if cfg.Username != "alice" {
		t.Fatalf("Username = %q, want alice", cfg.Username)
	}
	if cfg.TTL != 24*time.Hour {
		t.Fatalf("TTL = %v, want 24h", cfg.TTL)
	}
}

func TestParseConfigFlagOverridesKey(t *testing.T) {
	t.Setenv("SEABATTLE_TOKEN_KEY", testKey)
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-key", "other-secret-of-16b", "-ttl", "0"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.TokenKey != "other-secret-of-16b" {
		t.Fatalf("TokenKey = %q, want flag value", cfg.TokenKey)
	}
	if cfg.TTL != 0 {
		t.Fatalf("TTL = %v, want 0", cfg.TTL)
	}
}

func TestRunIssuesResolvableToken(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	buf := &bytes.Buffer{}
	cfg := Config{TokenKey: testKey, Username: "bob", TTL: time.Hour}
	if err := Run(cfg, buf, func() time.Time { return now }); err != nil {
		t.Fatalf("run: %v", err)
	}

	key, err := identity.ParseKey(testKey)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	resolver, err := identity.NewHMACResolver(key, func() time.Time { return now.Add(time.Minute) })
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	username, err := resolver.Resolve(strings.TrimSpace(buf.String()))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if username != "bob" {
		t.Fatalf("username = %q, want bob", username)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing key", cfg: Config{Username: "bob"}},
		{name: "short key", cfg: Config{TokenKey: "abc", Username: "bob"}},
		{name: "missing user", cfg: Config{TokenKey: testKey}},
		{name: "negative ttl", cfg: Config{TokenKey: testKey, Username: "bob", TTL: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(tt.cfg, &bytes.Buffer{}, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{TokenKey: testKey, Username: "bob"}, nil, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}
