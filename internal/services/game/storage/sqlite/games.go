package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

const selectGame = `SELECT g.id, g.state,
       g.first_player_id, fp.username,
       COALESCE(g.second_player_id, ''), COALESCE(sp.username, ''),
       g.first_ready, g.second_ready, g.next_shooter,
       g.created_at, g.updated_at
  FROM games g
  JOIN players fp ON fp.id = g.first_player_id
  LEFT JOIN players sp ON sp.id = g.second_player_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (match.Pairing, error) {
	var p match.Pairing
	var state int
	var firstReady, secondReady sql.NullInt64
	var createdAt, updatedAt int64
	if err := row.Scan(
		&p.ID,
		&state,
		&p.FirstPlayerID,
		&p.FirstPlayerName,
		&p.SecondPlayerID,
		&p.SecondPlayerName,
		&firstReady,
		&secondReady,
		&p.NextShooter,
		&createdAt,
		&updatedAt,
	); err != nil {
		return match.Pairing{}, err
	}
	p.State = match.State(state)
	p.FirstReady = firstReady.Valid && firstReady.Int64 != 0
	p.SecondReady = secondReady.Valid && secondReady.Int64 != 0
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// CreateGame inserts a pairing.
func (t *txStore) CreateGame(ctx context.Context, p match.Pairing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(p.FirstPlayerID) == "" {
		return fmt.Errorf("first player id is required")
	}

	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO games (
		   id, state, first_player_id, second_player_id,
		   first_ready, second_ready, next_shooter,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		int(p.State),
		p.FirstPlayerID,
		nullString(p.SecondPlayerID),
		readyFlag(p.FirstReady),
		readyFlag(p.SecondReady),
		p.NextShooter,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// GetGame returns one pairing by id.
func (t *txStore) GetGame(ctx context.Context, gameID string) (match.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return match.Pairing{}, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return match.Pairing{}, fmt.Errorf("game id is required")
	}
	p, err := scanGame(t.tx.QueryRowContext(ctx, selectGame+` WHERE g.id = ?`, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return match.Pairing{}, storage.ErrNotFound
		}
		return match.Pairing{}, fmt.Errorf("get game: %w", err)
	}
	return p, nil
}

// GetGameByPlayer returns the pairing a player sits in.
func (t *txStore) GetGameByPlayer(ctx context.Context, playerID string) (match.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return match.Pairing{}, err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return match.Pairing{}, fmt.Errorf("player id is required")
	}
	p, err := scanGame(t.tx.QueryRowContext(ctx,
		selectGame+` WHERE g.first_player_id = ? OR g.second_player_id = ? ORDER BY g.created_at LIMIT 1`,
		playerID, playerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return match.Pairing{}, storage.ErrNotFound
		}
		return match.Pairing{}, fmt.Errorf("get game by player: %w", err)
	}
	return p, nil
}

// UpdateGame writes the mutable pairing fields.
func (t *txStore) UpdateGame(ctx context.Context, p match.Pairing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	result, err := t.tx.ExecContext(ctx,
		`UPDATE games
		    SET state = ?, second_player_id = ?, first_ready = ?, second_ready = ?,
		        next_shooter = ?, updated_at = ?
		  WHERE id = ?`,
		int(p.State),
		nullString(p.SecondPlayerID),
		readyFlag(p.FirstReady),
		readyFlag(p.SecondReady),
		p.NextShooter,
		toMillis(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("update game: %w", err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListGamesExcluding returns pairings the player does not sit in.
func (t *txStore) ListGamesExcluding(ctx context.Context, playerID string) ([]match.Pairing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx,
		selectGame+` WHERE g.first_player_id != ? AND COALESCE(g.second_player_id, '') != ? ORDER BY g.created_at, g.id`,
		playerID, playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []match.Pairing
	for rows.Next() {
		p, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		games = append(games, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// DeleteGame removes the pairing with its boards and reports every removed row.
func (t *txStore) DeleteGame(ctx context.Context, gameID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return 0, fmt.Errorf("game id is required")
	}

	boardIDs, err := t.boardIDsOfGame(ctx, gameID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, boardID := range boardIDs {
		n, err := t.DeleteBoard(ctx, boardID)
		if err != nil {
			return 0, err
		}
		total += n
	}

	result, err := t.tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
	if err != nil {
		return 0, fmt.Errorf("delete game: %w", err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, storage.ErrNotFound
	}
	return total + n, nil
}

func (t *txStore) boardIDsOfGame(ctx context.Context, gameID string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT id FROM boards WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return ids, nil
}
