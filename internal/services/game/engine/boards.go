package engine

import (
	"context"
	"fmt"

	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/placement"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

// Cells lists the caller's own board ordered by cell id.
func (e *Engine) Cells(ctx context.Context, username string) ([]board.Cell, error) {
	var cells []board.Cell
	err := e.atomically(ctx, "list cells", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		_, cells, err = boardCells(ctx, tx, p, player.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	board.SortByID(cells)
	return cells, nil
}

// OpponentCells lists the opponent's board as the caller may see it. It is
// empty while the second seat is free.
func (e *Engine) OpponentCells(ctx context.Context, username string) ([]board.Cell, error) {
	var cells []board.Cell
	err := e.atomically(ctx, "list opponent cells", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		opponentID := p.OpponentOf(player.ID)
		if opponentID == "" {
			return nil
		}
		_, cells, err = boardCells(ctx, tx, p, opponentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	board.SortByID(cells)
	return board.MaskForOpponent(cells), nil
}

// PlaceShip puts one ship on the caller's board. Either the ship, its group,
// and every claimed cell are written, or nothing is.
func (e *Engine) PlaceShip(ctx context.Context, username string, req placement.Request) (board.Ship, error) {
	// Shape and bounds fail before any read.
	if _, err := placement.ComputeFootprint(e.rules, req.Origin, req.Size, req.Direction); err != nil {
		return board.Ship{}, err
	}

	var ship board.Ship
	err := e.atomically(ctx, "place ship", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		b, cells, err := boardCells(ctx, tx, p, player.ID)
		if err != nil {
			return err
		}
		ships, err := tx.ListShips(ctx, b.ID)
		if err != nil {
			return err
		}

		plan, err := placement.Plan(e.rules, req, board.CountShips(ships), board.Index(cells))
		if err != nil {
			return err
		}

		shipID, err := e.newID()
		if err != nil {
			return fmt.Errorf("new ship id: %w", err)
		}
		groupID, err := e.newID()
		if err != nil {
			return fmt.Errorf("new group id: %w", err)
		}
		ship = board.Ship{ID: shipID, BoardID: b.ID, Size: req.Size, Direction: req.Direction, State: board.ShipPlaced}
		if err := tx.CreateShip(ctx, ship, board.Group{ID: groupID, BoardID: b.ID, ShipID: shipID}); err != nil {
			return err
		}

		claims := make([]board.Cell, len(plan.Claims))
		for i, cell := range plan.Claims {
			cell.GroupID = groupID
			claims[i] = cell
		}
		return tx.UpdateCells(ctx, claims)
	})
	if err != nil {
		return board.Ship{}, err
	}
	return ship, nil
}
