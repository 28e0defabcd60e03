// Package hmackey prints a fresh token signing key in env form.
package hmackey

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/seabattle/internal/services/auth/identity"
)

// Config holds configuration for token signing key generation.
type Config struct {
	Bytes int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes, at least 16 (default: 32)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the key and writes it to out. A nil reader uses crypto/rand.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes < identity.MinKeyBytes {
		return fmt.Errorf("bytes must be at least %d", identity.MinKeyBytes)
	}
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	_, err := fmt.Fprintf(out, "SEABATTLE_TOKEN_KEY=%s\n", hex.EncodeToString(buf))
	return err
}
