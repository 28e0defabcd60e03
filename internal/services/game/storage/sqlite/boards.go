package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

const selectCell = `SELECT id, board_id, x, y, state, group_id FROM cells`

func scanCell(row rowScanner) (board.Cell, error) {
	var cell board.Cell
	var state int
	if err := row.Scan(&cell.ID, &cell.BoardID, &cell.X, &cell.Y, &state, &cell.GroupID); err != nil {
		return board.Cell{}, err
	}
	cell.State = board.CellState(state)
	return cell, nil
}

// CreateBoard inserts a board with its placeholder group and every cell.
func (t *txStore) CreateBoard(ctx context.Context, b board.Board, placeholder board.Group, cells []board.Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("board id is required")
	}
	if strings.TrimSpace(b.GameID) == "" || strings.TrimSpace(b.PlayerID) == "" {
		return fmt.Errorf("board game id and player id are required")
	}
	if strings.TrimSpace(placeholder.ID) == "" {
		return fmt.Errorf("placeholder group id is required")
	}

	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO boards (id, game_id, player_id) VALUES (?, ?, ?)`,
		b.ID, b.GameID, b.PlayerID,
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create board: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO placement_groups (id, board_id, ship_id) VALUES (?, ?, NULL)`,
		placeholder.ID, b.ID,
	); err != nil {
		return fmt.Errorf("create placeholder group: %w", err)
	}

	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO cells (board_id, x, y, state, group_id) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare cells: %w", err)
	}
	defer stmt.Close()
	for _, cell := range cells {
		if _, err := stmt.ExecContext(ctx, b.ID, cell.X, cell.Y, int(cell.State), placeholder.ID); err != nil {
			return fmt.Errorf("create cell %s: %w", cell.Point, err)
		}
	}
	return nil
}

// GetBoard returns the board a player owns in a pairing.
func (t *txStore) GetBoard(ctx context.Context, gameID, playerID string) (board.Board, error) {
	if err := ctx.Err(); err != nil {
		return board.Board{}, err
	}
	var b board.Board
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, game_id, player_id FROM boards WHERE game_id = ? AND player_id = ?`,
		gameID, playerID,
	).Scan(&b.ID, &b.GameID, &b.PlayerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return board.Board{}, storage.ErrNotFound
		}
		return board.Board{}, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

// DeleteBoard removes a board and everything on it, children first so the
// returned count covers every table.
func (t *txStore) DeleteBoard(ctx context.Context, boardID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	statements := []string{
		`DELETE FROM cells WHERE board_id = ?`,
		`DELETE FROM placement_groups WHERE board_id = ?`,
		`DELETE FROM ships WHERE board_id = ?`,
		`DELETE FROM boards WHERE id = ?`,
	}
	var total int64
	for _, statement := range statements {
		result, err := t.tx.ExecContext(ctx, statement, boardID)
		if err != nil {
			return 0, fmt.Errorf("delete board: %w", err)
		}
		n, err := rowsAffected(result)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// ListCells returns a board's cells ordered by id.
func (t *txStore) ListCells(ctx context.Context, boardID string) ([]board.Cell, error) {
	return t.listCells(ctx, `WHERE board_id = ?`, boardID)
}

// ListGroupCells returns the cells of one placement group ordered by id.
func (t *txStore) ListGroupCells(ctx context.Context, groupID string) ([]board.Cell, error) {
	return t.listCells(ctx, `WHERE group_id = ?`, groupID)
}

func (t *txStore) listCells(ctx context.Context, where string, arg string) ([]board.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx, selectCell+` `+where+` ORDER BY id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	defer rows.Close()

	var cells []board.Cell
	for rows.Next() {
		cell, err := scanCell(rows)
		if err != nil {
			return nil, fmt.Errorf("list cells: %w", err)
		}
		cells = append(cells, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	return cells, nil
}

// GetCell returns the cell at p.
func (t *txStore) GetCell(ctx context.Context, boardID string, p board.Point) (board.Cell, error) {
	if err := ctx.Err(); err != nil {
		return board.Cell{}, err
	}
	cell, err := scanCell(t.tx.QueryRowContext(ctx,
		selectCell+` WHERE board_id = ? AND x = ? AND y = ?`,
		boardID, p.X, p.Y,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return board.Cell{}, storage.ErrNotFound
		}
		return board.Cell{}, fmt.Errorf("get cell: %w", err)
	}
	return cell, nil
}

// UpdateCells writes state and group membership for each cell.
func (t *txStore) UpdateCells(ctx context.Context, cells []board.Cell) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cells) == 0 {
		return nil
	}
	stmt, err := t.tx.PrepareContext(ctx, `UPDATE cells SET state = ?, group_id = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare cell update: %w", err)
	}
	defer stmt.Close()

	for _, cell := range cells {
		result, err := stmt.ExecContext(ctx, int(cell.State), cell.GroupID, cell.ID)
		if err != nil {
			return fmt.Errorf("update cell %d: %w", cell.ID, err)
		}
		n, err := rowsAffected(result)
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrNotFound
		}
	}
	return nil
}

// ListShips returns the ships on a board in insertion order.
func (t *txStore) ListShips(ctx context.Context, boardID string) ([]board.Ship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id, board_id, size, direction, state FROM ships WHERE board_id = ? ORDER BY rowid`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	defer rows.Close()

	var ships []board.Ship
	for rows.Next() {
		var ship board.Ship
		var direction, state int
		if err := rows.Scan(&ship.ID, &ship.BoardID, &ship.Size, &direction, &state); err != nil {
			return nil, fmt.Errorf("list ships: %w", err)
		}
		ship.Direction = board.Direction(direction)
		ship.State = board.ShipState(state)
		ships = append(ships, ship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	return ships, nil
}

// CreateShip inserts a ship and the placement group that will hold its cells.
func (t *txStore) CreateShip(ctx context.Context, ship board.Ship, group board.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(ship.ID) == "" || strings.TrimSpace(group.ID) == "" {
		return fmt.Errorf("ship id and group id are required")
	}
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO ships (id, board_id, size, direction, state) VALUES (?, ?, ?, ?, ?)`,
		ship.ID, ship.BoardID, ship.Size, int(ship.Direction), int(ship.State),
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create ship: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO placement_groups (id, board_id, ship_id) VALUES (?, ?, ?)`,
		group.ID, group.BoardID, ship.ID,
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create placement group: %w", err)
	}
	return nil
}

// GetGroup returns one placement group.
func (t *txStore) GetGroup(ctx context.Context, groupID string) (board.Group, error) {
	if err := ctx.Err(); err != nil {
		return board.Group{}, err
	}
	var group board.Group
	var shipID sql.NullString
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, board_id, ship_id FROM placement_groups WHERE id = ?`,
		groupID,
	).Scan(&group.ID, &group.BoardID, &shipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return board.Group{}, storage.ErrNotFound
		}
		return board.Group{}, fmt.Errorf("get group: %w", err)
	}
	group.ShipID = shipID.String
	return group, nil
}

// UpdateShipState records whether a ship is afloat.
func (t *txStore) UpdateShipState(ctx context.Context, shipID string, state board.ShipState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := t.tx.ExecContext(ctx, `UPDATE ships SET state = ? WHERE id = ?`, int(state), shipID)
	if err != nil {
		return fmt.Errorf("update ship: %w", err)
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
