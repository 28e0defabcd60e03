package board

import "testing"

func TestNewGridIsRowMajorAndEmpty(t *testing.T) {
	rules := Rules{Width: 3, Height: 2, Fleet: Fleet{1: 1}}
	cells := NewGrid(rules)
	if len(cells) != 6 {
		t.Fatalf("cells = %d, want 6", len(cells))
	}
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	for i, cell := range cells {
		if cell.Point != want[i] {
			t.Fatalf("cell %d = %v, want %v", i, cell.Point, want[i])
		}
		if cell.State != CellEmpty {
			t.Fatalf("cell %d state = %v, want empty", i, cell.State)
		}
	}
}

func TestCellStatePredicates(t *testing.T) {
	tests := []struct {
		state       CellState
		transparent bool
		fighting    bool
	}{
		{CellEmpty, false, false},
		{CellOccupied, false, true},
		{CellHit, false, true},
		{CellDestroyed, false, false},
		{CellMiss, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.state.String(), func(t *testing.T) {
			if got := tc.state.PlacementTransparent(); got != tc.transparent {
				t.Fatalf("PlacementTransparent() = %v, want %v", got, tc.transparent)
			}
			if got := tc.state.Fighting(); got != tc.fighting {
				t.Fatalf("Fighting() = %v, want %v", got, tc.fighting)
			}
			if !tc.state.Valid() {
				t.Fatal("expected valid state")
			}
		})
	}
	if CellState(0).Valid() || CellState(6).Valid() {
		t.Fatal("expected out-of-range states to be invalid")
	}
}

func TestDirectionValid(t *testing.T) {
	if !Horizontal.Valid() || !Vertical.Valid() {
		t.Fatal("expected both directions to be valid")
	}
	if Direction(0).Valid() || Direction(3).Valid() {
		t.Fatal("expected unknown directions to be invalid")
	}
}

func TestFightingAndCountState(t *testing.T) {
	cells := []Cell{
		{State: CellEmpty},
		{State: CellMiss},
		{State: CellDestroyed},
	}
	if Fighting(cells) {
		t.Fatal("expected sunk board not to be fighting")
	}
	cells = append(cells, Cell{State: CellHit})
	if !Fighting(cells) {
		t.Fatal("expected damaged ship to keep the board fighting")
	}
	if got := CountState(cells, CellDestroyed); got != 1 {
		t.Fatalf("destroyed = %d, want 1", got)
	}
}

func TestMaskForOpponentHidesShips(t *testing.T) {
	cells := []Cell{
		{Point: Point{0, 0}, State: CellOccupied, GroupID: "ship"},
		{Point: Point{1, 0}, State: CellHit, GroupID: "ship"},
		{Point: Point{2, 0}, State: CellMiss, GroupID: "water"},
	}
	masked := MaskForOpponent(cells)

	want := []CellState{CellEmpty, CellHit, CellMiss}
	for i, cell := range masked {
		if cell.State != want[i] {
			t.Fatalf("masked[%d] = %v, want %v", i, cell.State, want[i])
		}
		if cell.GroupID != "" {
			t.Fatalf("masked[%d] leaks group %q", i, cell.GroupID)
		}
	}
	if cells[0].State != CellOccupied {
		t.Fatal("expected input cells to be left unchanged")
	}
}

func TestSortByIDAndIndex(t *testing.T) {
	cells := []Cell{
		{ID: 3, Point: Point{2, 0}},
		{ID: 1, Point: Point{0, 0}},
		{ID: 2, Point: Point{1, 0}},
	}
	SortByID(cells)
	for i, cell := range cells {
		if cell.ID != int64(i+1) {
			t.Fatalf("cells[%d].ID = %d, want %d", i, cell.ID, i+1)
		}
	}
	index := Index(cells)
	if index[Point{1, 0}].ID != 2 {
		t.Fatalf("index lookup = %+v", index[Point{1, 0}])
	}
}

func TestGroupPlaceholder(t *testing.T) {
	if !(Group{ID: "g"}).Placeholder() {
		t.Fatal("expected group without ship to be the placeholder")
	}
	if (Group{ID: "g", ShipID: "s"}).Placeholder() {
		t.Fatal("expected ship group not to be the placeholder")
	}
}
