package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

const selectHistory = `SELECT id, game_id, first_player_name, second_player_name,
       state_name, winner_name, finished_at
  FROM game_history`

func scanHistory(row rowScanner) (history.Record, error) {
	var record history.Record
	var finishedAt int64
	if err := row.Scan(
		&record.ID,
		&record.GameID,
		&record.FirstPlayerName,
		&record.SecondPlayerName,
		&record.StateName,
		&record.WinnerName,
		&finishedAt,
	); err != nil {
		return history.Record{}, err
	}
	record.FinishedAt = fromMillis(finishedAt)
	return record, nil
}

// CreateHistory appends a terminal record. The UNIQUE game_id column turns a
// concurrent duplicate into ErrAlreadyExists.
func (t *txStore) CreateHistory(ctx context.Context, record history.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(record.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	finishedAt := record.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO game_history (
		   game_id, first_player_name, second_player_name,
		   state_name, winner_name, finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?)`,
		record.GameID,
		record.FirstPlayerName,
		record.SecondPlayerName,
		record.StateName,
		record.WinnerName,
		toMillis(finishedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create game history: %w", err)
	}
	return nil
}

// GetHistoryByGame returns the terminal record of a game.
func (t *txStore) GetHistoryByGame(ctx context.Context, gameID string) (history.Record, error) {
	if err := ctx.Err(); err != nil {
		return history.Record{}, err
	}
	record, err := scanHistory(t.tx.QueryRowContext(ctx, selectHistory+` WHERE game_id = ?`, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Record{}, storage.ErrNotFound
		}
		return history.Record{}, fmt.Errorf("get game history: %w", err)
	}
	return record, nil
}

// ListHistory returns one page of records, newest first. The page token is
// the id of the last record on the previous page.
func (t *txStore) ListHistory(ctx context.Context, query storage.HistoryQuery) (storage.HistoryPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.HistoryPage{}, err
	}
	if query.PageSize <= 0 {
		return storage.HistoryPage{}, fmt.Errorf("page size must be greater than zero")
	}

	var clauses []string
	var args []any
	if token := strings.TrimSpace(query.PageToken); token != "" {
		lastID, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return storage.HistoryPage{}, fmt.Errorf("invalid page token %q", token)
		}
		clauses = append(clauses, "id < ?")
		args = append(args, lastID)
	}
	if !query.Filter.Empty() {
		clauses = append(clauses, query.Filter.Clause)
		args = append(args, query.Filter.Params...)
	}

	statement := selectHistory
	if len(clauses) > 0 {
		statement += " WHERE " + strings.Join(clauses, " AND ")
	}
	statement += " ORDER BY id DESC LIMIT ?"
	args = append(args, query.PageSize+1)

	rows, err := t.tx.QueryContext(ctx, statement, args...)
	if err != nil {
		return storage.HistoryPage{}, fmt.Errorf("list game history: %w", err)
	}
	defer rows.Close()

	page := storage.HistoryPage{Records: make([]history.Record, 0, query.PageSize)}
	for rows.Next() {
		record, err := scanHistory(rows)
		if err != nil {
			return storage.HistoryPage{}, fmt.Errorf("list game history: %w", err)
		}
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.HistoryPage{}, fmt.Errorf("list game history: %w", err)
	}
	if len(page.Records) > query.PageSize {
		page.Records = page.Records[:query.PageSize]
		page.NextPageToken = strconv.FormatInt(page.Records[query.PageSize-1].ID, 10)
	}
	return page, nil
}

// ListWinners returns every record with a winner, oldest first.
func (t *txStore) ListWinners(ctx context.Context) ([]history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx, selectHistory+` WHERE winner_name != '' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		record, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("list winners: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return records, nil
}
