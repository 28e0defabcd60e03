// Package shot resolves a fired coordinate against the defender's board.
package shot

import "github.com/louisbranch/seabattle/internal/services/game/domain/board"

// Outcome is what the attacker learns from a shot.
type Outcome int

const (
	// Miss means the shot landed in open water.
	Miss Outcome = 1
	// Hit means the shot damaged a ship that is still afloat.
	Hit Outcome = 2
	// Destroyed means the shot sank the ship.
	Destroyed Outcome = 3
)

// String returns the lowercase outcome name.
func (o Outcome) String() string {
	switch o {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// KeepsPriority reports whether the attacker fires again after this outcome.
func (o Outcome) KeepsPriority() bool {
	return o == Hit || o == Destroyed
}

// Transition is a single cell state write.
type Transition struct {
	CellID int64
	Point  board.Point
	From   board.CellState
	To     board.CellState
}

// Result is the outcome of a shot plus the writes that record it.
type Result struct {
	Outcome     Outcome
	Transitions []Transition
}

// Sank reports whether this shot is the one that sank a ship.
func (r Result) Sank() bool {
	return r.Outcome == Destroyed && len(r.Transitions) > 0
}

// Resolve applies a shot at target. group holds every cell of target's
// placement group and is only consulted when target holds a ship.
//
// Shots at cells that were already resolved repeat the earlier outcome
// without writes.
func Resolve(target board.Cell, group []board.Cell) Result {
	switch target.State {
	case board.CellEmpty:
		return Result{Outcome: Miss, Transitions: []Transition{transition(target, board.CellMiss)}}
	case board.CellMiss:
		return Result{Outcome: Miss}
	case board.CellHit:
		return Result{Outcome: Hit}
	case board.CellDestroyed:
		return Result{Outcome: Destroyed}
	}

	occupied := 0
	included := false
	for _, cell := range group {
		if cell.State == board.CellOccupied {
			occupied++
		}
		if cell.ID == target.ID && cell.Point == target.Point {
			included = true
		}
	}
	if !included {
		group = append([]board.Cell{target}, group...)
		occupied++
	}

	// The target itself is the last unhit cell.
	if occupied <= 1 {
		transitions := make([]Transition, 0, len(group))
		for _, cell := range group {
			if cell.State == board.CellDestroyed {
				continue
			}
			transitions = append(transitions, transition(cell, board.CellDestroyed))
		}
		return Result{Outcome: Destroyed, Transitions: transitions}
	}
	return Result{Outcome: Hit, Transitions: []Transition{transition(target, board.CellHit)}}
}

func transition(cell board.Cell, to board.CellState) Transition {
	return Transition{CellID: cell.ID, Point: cell.Point, From: cell.State, To: to}
}

// Apply returns a copy of cells with the transitions written, keyed by id.
func Apply(cells []board.Cell, transitions []Transition) []board.Cell {
	next := make(map[int64]board.CellState, len(transitions))
	for _, tr := range transitions {
		next[tr.CellID] = tr.To
	}
	out := make([]board.Cell, len(cells))
	for i, cell := range cells {
		if state, ok := next[cell.ID]; ok {
			cell.State = state
		}
		out[i] = cell
	}
	return out
}
