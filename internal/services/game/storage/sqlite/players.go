package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

// CreatePlayer inserts a player. A taken username fails with ErrAlreadyExists.
func (t *txStore) CreatePlayer(ctx context.Context, player storage.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := strings.TrimSpace(player.ID)
	username := strings.TrimSpace(player.Username)
	if id == "" {
		return fmt.Errorf("player id is required")
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}
	createdAt := player.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO players (id, username, created_at) VALUES (?, ?, ?)`,
		id, username, toMillis(createdAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// GetPlayerByUsername returns one player by username.
func (t *txStore) GetPlayerByUsername(ctx context.Context, username string) (storage.Player, error) {
	if err := ctx.Err(); err != nil {
		return storage.Player{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return storage.Player{}, fmt.Errorf("username is required")
	}

	var player storage.Player
	var createdAt int64
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM players WHERE username = ?`,
		username,
	).Scan(&player.ID, &player.Username, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Player{}, storage.ErrNotFound
		}
		return storage.Player{}, fmt.Errorf("get player: %w", err)
	}
	player.CreatedAt = fromMillis(createdAt)
	return player, nil
}
