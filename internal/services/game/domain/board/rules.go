package board

import (
	"fmt"
	"sort"
)

// Fleet maps a ship size to how many ships of that size a board holds.
type Fleet map[int]int

// ClassicFleet is four single-deckers, three two-deckers, two three-deckers,
// and one four-decker.
func ClassicFleet() Fleet {
	return Fleet{1: 4, 2: 3, 3: 2, 4: 1}
}

// Total returns the number of ships in a complete fleet.
func (f Fleet) Total() int {
	total := 0
	for _, quota := range f {
		total += quota
	}
	return total
}

// Quota returns how many ships of size a complete fleet holds.
func (f Fleet) Quota(size int) int {
	return f[size]
}

// MaxSize returns the largest ship size with a non-zero quota.
func (f Fleet) MaxSize() int {
	largest := 0
	for size, quota := range f {
		if quota > 0 && size > largest {
			largest = size
		}
	}
	return largest
}

// Sizes returns sizes with a non-zero quota in ascending order.
func (f Fleet) Sizes() []int {
	sizes := make([]int, 0, len(f))
	for size, quota := range f {
		if quota > 0 {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)
	return sizes
}

// Complete reports whether counts match the fleet exactly.
func (f Fleet) Complete(counts map[int]int) bool {
	for size, quota := range f {
		if counts[size] != quota {
			return false
		}
	}
	for size, count := range counts {
		if count != 0 && f[size] == 0 {
			return false
		}
	}
	return true
}

// Rules fixes the board dimensions and fleet composition of a game.
type Rules struct {
	Width  int
	Height int
	Fleet  Fleet
}

// Classic returns the standard 10x10 board with the classic fleet.
func Classic() Rules {
	return Rules{Width: 10, Height: 10, Fleet: ClassicFleet()}
}

// Contains reports whether p lies on the grid.
func (r Rules) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < r.Width && p.Y < r.Height
}

// Validate checks that the rules describe a playable board.
func (r Rules) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.Fleet.Total() == 0 {
		return fmt.Errorf("fleet must hold at least one ship")
	}
	for size, quota := range r.Fleet {
		if size <= 0 || quota < 0 {
			return fmt.Errorf("fleet entry %d:%d is invalid", size, quota)
		}
		if size > r.Width && size > r.Height {
			return fmt.Errorf("ship size %d does not fit a %dx%d board", size, r.Width, r.Height)
		}
	}
	return nil
}

// CountShips tallies ships by size.
func CountShips(ships []Ship) map[int]int {
	counts := make(map[int]int, len(ships))
	for _, ship := range ships {
		counts[ship.Size]++
	}
	return counts
}
