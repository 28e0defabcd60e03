// Package board models a player's grid, its ships, and the placement groups
// that tie ship cells together.
//
// Everything here is plain data. Persistence and transactions live in the
// storage packages; rules that span several boards live in match.
package board

import (
	"fmt"
	"sort"
	"strconv"
)

// CellState is the persisted state of one grid cell.
//
// The numeric values are stored as-is, so they must never be renumbered.
type CellState int

const (
	// CellEmpty is open water that has not been fired upon.
	CellEmpty CellState = 1
	// CellOccupied holds an unhit part of a ship.
	CellOccupied CellState = 2
	// CellHit holds a damaged part of a ship that is still afloat.
	CellHit CellState = 3
	// CellDestroyed holds part of a sunk ship.
	CellDestroyed CellState = 4
	// CellMiss is open water that has been fired upon.
	CellMiss CellState = 5
)

// String returns the lowercase state name.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellDestroyed:
		return "destroyed"
	case CellMiss:
		return "miss"
	default:
		return "cell_state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the known states.
func (s CellState) Valid() bool {
	return s >= CellEmpty && s <= CellMiss
}

// PlacementTransparent reports whether placing a ship over a cell in this
// state leaves the cell untouched instead of claiming it.
//
// Only Miss qualifies. Such a cell keeps its state and its group.
func (s CellState) PlacementTransparent() bool {
	return s == CellMiss
}

// Fighting reports whether the cell still belongs to a ship that is afloat.
func (s CellState) Fighting() bool {
	return s == CellOccupied || s == CellHit
}

// Direction is the orientation of a ship from its origin cell.
type Direction int

const (
	// Horizontal ships grow along x.
	Horizontal Direction = 1
	// Vertical ships grow along y.
	Vertical Direction = 2
)

// Valid reports whether d is Horizontal or Vertical.
func (d Direction) Valid() bool {
	return d == Horizontal || d == Vertical
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// ShipState tracks whether a ship is still afloat.
type ShipState int

const (
	// ShipPlaced is a ship with at least one unhit cell.
	ShipPlaced ShipState = 1
	// ShipSunk is a ship whose cells are all destroyed.
	ShipSunk ShipState = 2
)

// Point is a 0-based grid coordinate.
type Point struct {
	X int
	Y int
}

// String formats the point as "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Board is one player's grid inside a pairing.
type Board struct {
	ID       string
	GameID   string
	PlayerID string
}

// Cell is a single grid position. Identity is (BoardID, X, Y).
type Cell struct {
	ID      int64
	BoardID string
	Point
	State   CellState
	GroupID string
}

// Ship is a placed ship. Its cells are the cells of its group.
type Ship struct {
	ID        string
	BoardID   string
	Size      int
	Direction Direction
	State     ShipState
}

// Group is the set of cells one ship occupies. A group with no ShipID is the
// placeholder seeded at board creation that collects every unclaimed cell.
type Group struct {
	ID      string
	BoardID string
	ShipID  string
}

// Placeholder reports whether the group is the board's unclaimed-cell group.
func (g Group) Placeholder() bool {
	return g.ShipID == ""
}

// NewGrid returns every cell of an empty board in row-major order. IDs and
// group membership are assigned by storage.
func NewGrid(rules Rules) []Cell {
	cells := make([]Cell, 0, rules.Width*rules.Height)
	for y := 0; y < rules.Height; y++ {
		for x := 0; x < rules.Width; x++ {
			cells = append(cells, Cell{Point: Point{X: x, Y: y}, State: CellEmpty})
		}
	}
	return cells
}

// Fighting reports whether any cell still belongs to a ship that is afloat.
func Fighting(cells []Cell) bool {
	for _, cell := range cells {
		if cell.State.Fighting() {
			return true
		}
	}
	return false
}

// CountState returns how many cells are in state.
func CountState(cells []Cell, state CellState) int {
	count := 0
	for _, cell := range cells {
		if cell.State == state {
			count++
		}
	}
	return count
}

// MaskForOpponent returns a copy of cells with unhit ship cells reported as
// Empty, which is all an opponent is allowed to see.
func MaskForOpponent(cells []Cell) []Cell {
	masked := make([]Cell, len(cells))
	for i, cell := range cells {
		if cell.State == CellOccupied {
			cell.State = CellEmpty
		}
		// Group membership would leak ship outlines.
		cell.GroupID = ""
		masked[i] = cell
	}
	return masked
}

// SortByID orders cells by storage id, the order boards are listed in.
func SortByID(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].ID < cells[j].ID })
}

// Index maps cells by coordinate.
func Index(cells []Cell) map[Point]Cell {
	index := make(map[Point]Cell, len(cells))
	for _, cell := range cells {
		index[cell.Point] = cell
	}
	return index
}
