// Package mcp parses MCP command flags and starts the stdio bridge.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/seabattle/internal/platform/cmd"
	mcpservice "github.com/louisbranch/seabattle/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr   string `env:"MCP_GAME_ADDR" envDefault:"localhost:8090"`
	Token  string `env:"MCP_TOKEN"`
	Locale string `env:"MCP_LOCALE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "game server address")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "player token the tools act with")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "language of game messages, e.g. pt-BR")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			GRPCAddr: cfg.Addr,
			Token:    cfg.Token,
			Locale:   cfg.Locale,
		})
	})
}
