package engine

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
	"github.com/louisbranch/seabattle/internal/services/game/domain/history"
	"github.com/louisbranch/seabattle/internal/services/game/domain/match"
	"github.com/louisbranch/seabattle/internal/services/game/domain/shot"
	"github.com/louisbranch/seabattle/internal/services/game/storage"
)

// SetReady marks the caller ready once their fleet is complete. Repeating
// the call re-asserts readiness.
func (e *Engine) SetReady(ctx context.Context, username string) error {
	return e.atomically(ctx, "set ready", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		b, err := tx.GetBoard(ctx, p.ID, player.ID)
		if err != nil {
			return lookupError(err, apperrors.CodeBoardNotFound, fmt.Sprintf("player %s has no board", player.Username))
		}
		ships, err := tx.ListShips(ctx, b.ID)
		if err != nil {
			return err
		}
		if !e.rules.Fleet.Complete(board.CountShips(ships)) {
			return apperrors.WithMetadata(
				apperrors.CodeFleetIncomplete,
				fmt.Sprintf("board %s holds %d ships", b.ID, len(ships)),
				map[string]string{"Required": apperrors.Itoa(e.rules.Fleet.Total())},
			)
		}

		next, err := match.ApplyReady(p, p.SlotOf(player.ID), e.opts, e.clock())
		if err != nil {
			return err
		}
		return tx.UpdateGame(ctx, next)
	})
}

// ReadinessQuery returns how many players of the caller's pairing are ready.
func (e *Engine) ReadinessQuery(ctx context.Context, username string) (int, error) {
	var count int
	err := e.atomically(ctx, "readiness", func(tx storage.Tx) error {
		_, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		count = match.ReadyCount(p)
		return nil
	})
	return count, err
}

// Fire resolves a shot by the caller at the opponent's board.
func (e *Engine) Fire(ctx context.Context, username string, target board.Point) (shot.Outcome, error) {
	if !e.rules.Contains(target) {
		return 0, apperrors.WithMetadata(
			apperrors.CodeOutOfBounds,
			fmt.Sprintf("shot at %s is off the board", target),
			map[string]string{"X": apperrors.Itoa(target.X), "Y": apperrors.Itoa(target.Y)},
		)
	}

	var outcome shot.Outcome
	err := e.atomically(ctx, "fire", func(tx storage.Tx) error {
		player, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		opponentID := p.OpponentOf(player.ID)
		if opponentID == "" {
			return apperrors.New(apperrors.CodeOpponentNotFound, fmt.Sprintf("game %s has no second player", p.ID))
		}
		if p.State == match.StateFinished {
			return apperrors.New(apperrors.CodeGameFinished, fmt.Sprintf("game %s is finished", p.ID))
		}
		if err := match.CheckTurn(p, player.ID, e.opts); err != nil {
			return err
		}

		defender, err := tx.GetBoard(ctx, p.ID, opponentID)
		if err != nil {
			return lookupError(err, apperrors.CodeBoardNotFound, fmt.Sprintf("opponent %s has no board", opponentID))
		}
		cell, err := tx.GetCell(ctx, defender.ID, target)
		if err != nil {
			return lookupError(err, apperrors.CodeCellNotFound, fmt.Sprintf("cell %s is missing from board %s", target, defender.ID))
		}

		var group []board.Cell
		if cell.State == board.CellOccupied {
			group, err = tx.ListGroupCells(ctx, cell.GroupID)
			if err != nil {
				return err
			}
		}
		result := shot.Resolve(cell, group)
		if len(result.Transitions) > 0 {
			if err := tx.UpdateCells(ctx, changedCells(cell, group, result.Transitions)); err != nil {
				return err
			}
		}
		if result.Sank() {
			g, err := tx.GetGroup(ctx, cell.GroupID)
			if err != nil {
				return err
			}
			if !g.Placeholder() {
				if err := tx.UpdateShipState(ctx, g.ShipID, board.ShipSunk); err != nil {
					return err
				}
			}
		}

		outcome = result.Outcome
		return tx.UpdateGame(ctx, match.AfterShot(p, player.ID, outcome.KeepsPriority(), e.clock()))
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

// Priority reports whether the caller holds fire priority.
func (e *Engine) Priority(ctx context.Context, username string) (bool, error) {
	var priority bool
	err := e.atomically(ctx, "priority", func(tx storage.Tx) error {
		player, p, err := e.seatOrNone(ctx, tx, username)
		if err != nil || p == nil {
			return err
		}
		priority = match.HasPriority(*p, player.ID)
		return nil
	})
	return priority, err
}

// EvaluateEndOfGame checks both boards and finishes the pairing when one
// fleet is gone. The game record is written at most once.
func (e *Engine) EvaluateEndOfGame(ctx context.Context, username string) (match.End, error) {
	var end match.End
	err := e.atomically(ctx, "evaluate end", func(tx storage.Tx) error {
		_, p, err := e.seat(ctx, tx, username)
		if err != nil {
			return err
		}
		if !p.HasSecondPlayer() || !p.FirstReady || !p.SecondReady {
			return nil
		}

		if p.State == match.StateFinished {
			record, err := tx.GetHistoryByGame(ctx, p.ID)
			switch {
			case err == nil:
				end = match.End{Finished: true, WinnerName: record.WinnerName}
				if record.WinnerName == p.FirstPlayerName {
					end.WinnerID = p.FirstPlayerID
				} else {
					end.WinnerID = p.SecondPlayerID
				}
				return nil
			case !errors.Is(err, storage.ErrNotFound):
				return err
			}
		}

		_, firstCells, err := boardCells(ctx, tx, p, p.FirstPlayerID)
		if err != nil {
			return err
		}
		_, secondCells, err := boardCells(ctx, tx, p, p.SecondPlayerID)
		if err != nil {
			return err
		}
		end = match.EvaluateEnd(p, board.Fighting(firstCells), board.Fighting(secondCells))
		if !end.Finished {
			return nil
		}

		if p.State != match.StateFinished {
			if err := tx.UpdateGame(ctx, match.Finish(p, e.clock())); err != nil {
				return err
			}
		}
		return recordOnce(ctx, tx, history.Record{
			GameID:           p.ID,
			FirstPlayerName:  p.FirstPlayerName,
			SecondPlayerName: p.SecondPlayerName,
			StateName:        match.StateFinished.String(),
			WinnerName:       end.WinnerName,
			FinishedAt:       e.clock(),
		})
	})
	return end, err
}

// changedCells returns the target and group cells a shot rewrites.
func changedCells(target board.Cell, group []board.Cell, transitions []shot.Transition) []board.Cell {
	candidates := []board.Cell{target}
	for _, cell := range group {
		if cell.ID != target.ID {
			candidates = append(candidates, cell)
		}
	}
	applied := shot.Apply(candidates, transitions)
	changed := make([]board.Cell, 0, len(transitions))
	for i, cell := range applied {
		if cell.State != candidates[i].State {
			changed = append(changed, cell)
		}
	}
	return changed
}

func recordOnce(ctx context.Context, tx storage.Tx, record history.Record) error {
	if _, err := tx.GetHistoryByGame(ctx, record.GameID); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err := tx.CreateHistory(ctx, record); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return err
	}
	return nil
}
