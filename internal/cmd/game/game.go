// Package game parses game command flags and starts the game server.
package game

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/seabattle/internal/platform/cmd"
	"github.com/louisbranch/seabattle/internal/services/auth/identity"
	server "github.com/louisbranch/seabattle/internal/services/game/app"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
)

// Config holds game command configuration.
type Config struct {
	Port               int    `env:"GAME_PORT" envDefault:"8090"`
	Addr               string `env:"GAME_ADDR"`
	DBPath             string `env:"GAME_DB_PATH" envDefault:"data/game.db"`
	TokenKey           string `env:"TOKEN_KEY"`
	StrictTurns        bool   `env:"STRICT_TURNS" envDefault:"false"`
	LegacyReadyCascade bool   `env:"LEGACY_READY_CASCADE" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The game sqlite database path")
	fs.BoolVar(&cfg.StrictTurns, "strict-turns", cfg.StrictTurns, "Reject shots fired out of turn")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig resolves cfg into the server's settings.
func ServerConfig(cfg Config) (server.Config, error) {
	key, err := identity.ParseKey(cfg.TokenKey)
	if err != nil {
		return server.Config{}, fmt.Errorf("SEABATTLE_TOKEN_KEY: %w", err)
	}
	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	return server.Config{
		Addr:     addr,
		DBPath:   cfg.DBPath,
		TokenKey: key,
		Options: match.Options{
			LegacyReadyCascade: cfg.LegacyReadyCascade,
			StrictTurns:        cfg.StrictTurns,
		},
	}, nil
}

// Run starts the game API service.
func Run(ctx context.Context, cfg Config) error {
	serverCfg, err := ServerConfig(cfg)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return server.Run(ctx, serverCfg)
	})
}
