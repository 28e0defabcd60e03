// Package placement decides where a ship lands and whether the fleet rules
// allow it.
//
// Plan is pure: it reads a snapshot of the board and returns the writes an
// all-or-nothing placement must commit. Callers apply the writes inside one
// storage transaction.
package placement

import (
	"fmt"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
	"github.com/louisbranch/seabattle/internal/services/game/domain/board"
)

// Request describes one ship to place.
type Request struct {
	Origin    board.Point
	Size      int
	Direction board.Direction
}

// Placement is the outcome of a successful plan.
type Placement struct {
	// Footprint lists every coordinate the ship spans, origin first.
	Footprint []board.Point
	// Claims are the cells to mark Occupied and move into the new group.
	Claims []board.Cell
	// Skipped are footprint cells left untouched because their state is
	// placement-transparent.
	Skipped []board.Cell
}

// ComputeFootprint returns the coordinates a ship spans from origin.
func ComputeFootprint(rules board.Rules, origin board.Point, size int, direction board.Direction) ([]board.Point, error) {
	if err := validateShape(rules, size, direction); err != nil {
		return nil, err
	}

	dx, dy := 1, 0
	if direction == board.Vertical {
		dx, dy = 0, 1
	}

	points := make([]board.Point, 0, size)
	for i := 0; i < size; i++ {
		p := board.Point{X: origin.X + dx*i, Y: origin.Y + dy*i}
		if !rules.Contains(p) {
			return nil, apperrors.WithMetadata(
				apperrors.CodeOutOfBounds,
				fmt.Sprintf("ship of size %d %s at %s leaves the board at %s", size, direction, origin, p),
				map[string]string{"X": apperrors.Itoa(origin.X), "Y": apperrors.Itoa(origin.Y)},
			)
		}
		points = append(points, p)
	}
	return points, nil
}

// Plan validates req against the board snapshot and returns the cell writes.
//
// counts is the number of ships already on the board by size. cells must
// hold every cell of the board keyed by coordinate. Failures are checked in
// order: shape and bounds, fleet full, size quota, then busy cells.
func Plan(rules board.Rules, req Request, counts map[int]int, cells map[board.Point]board.Cell) (Placement, error) {
	footprint, err := ComputeFootprint(rules, req.Origin, req.Size, req.Direction)
	if err != nil {
		return Placement{}, err
	}

	placed := 0
	for _, count := range counts {
		placed += count
	}
	if limit := rules.Fleet.Total(); placed >= limit {
		return Placement{}, apperrors.WithMetadata(
			apperrors.CodeFleetFull,
			fmt.Sprintf("board already holds %d ships", placed),
			map[string]string{"Limit": apperrors.Itoa(limit)},
		)
	}

	if quota := rules.Fleet.Quota(req.Size); counts[req.Size] >= quota {
		return Placement{}, apperrors.WithMetadata(
			apperrors.CodeSizeQuotaExceeded,
			fmt.Sprintf("board already holds %d ships of size %d", counts[req.Size], req.Size),
			map[string]string{"Size": apperrors.Itoa(req.Size), "Quota": apperrors.Itoa(quota)},
		)
	}

	result := Placement{Footprint: footprint}
	for _, p := range footprint {
		cell, ok := cells[p]
		if !ok {
			return Placement{}, apperrors.WithMetadata(
				apperrors.CodeCellNotFound,
				fmt.Sprintf("cell %s is missing from the board", p),
				map[string]string{"X": apperrors.Itoa(p.X), "Y": apperrors.Itoa(p.Y)},
			)
		}
		switch {
		case cell.State == board.CellOccupied:
			return Placement{}, apperrors.WithMetadata(
				apperrors.CodeCellBusy,
				fmt.Sprintf("cell %s is already occupied", p),
				map[string]string{"X": apperrors.Itoa(p.X), "Y": apperrors.Itoa(p.Y)},
			)
		case cell.State.PlacementTransparent():
			result.Skipped = append(result.Skipped, cell)
		default:
			cell.State = board.CellOccupied
			result.Claims = append(result.Claims, cell)
		}
	}
	return result, nil
}

func validateShape(rules board.Rules, size int, direction board.Direction) error {
	if maxSize := rules.Fleet.MaxSize(); size < 1 || size > maxSize {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidShipSize,
			fmt.Sprintf("ship size %d is outside 1..%d", size, maxSize),
			map[string]string{"MaxSize": apperrors.Itoa(maxSize)},
		)
	}
	if !direction.Valid() {
		return apperrors.New(apperrors.CodeInvalidDirection, fmt.Sprintf("ship direction %d is unknown", int(direction)))
	}
	return nil
}
