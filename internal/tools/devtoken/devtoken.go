// Package devtoken mints player bearer tokens for local play.
package devtoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/seabattle/internal/platform/config"
	"github.com/louisbranch/seabattle/internal/services/auth/identity"
)

// Config holds configuration for issuing a token.
type Config struct {
	TokenKey string `env:"TOKEN_KEY"`
	Username string
	TTL      time.Duration
}

// ParseConfig reads the signing key from the environment and the rest from flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseServiceEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.TTL = 24 * time.Hour
	fs.StringVar(&cfg.Username, "user", "", "player username (required)")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "token lifetime, 0 for no expiry")
	fs.StringVar(&cfg.TokenKey, "key", cfg.TokenKey, "signing key (default: SEABATTLE_TOKEN_KEY)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run signs a token for cfg.Username and writes it to out.
func Run(cfg Config, out io.Writer, now func() time.Time) error {
	if out == nil {
		return errors.New("output is required")
	}
	if cfg.TTL < 0 {
		return errors.New("ttl must not be negative")
	}
	key, err := identity.ParseKey(cfg.TokenKey)
	if err != nil {
		return fmt.Errorf("SEABATTLE_TOKEN_KEY: %w", err)
	}
	issuer, err := identity.NewIssuer(key, cfg.TTL, now)
	if err != nil {
		return err
	}
	token, err := issuer.Issue(cfg.Username)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
