package gridastar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewGrid_AllCellsEmpty(t *testing.T) {
	grid, err := NewGrid(4, 10)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if grid.Rows() != 4 || grid.CellSize() != 10 {
		t.Fatalf("Expected 4 rows of size 10, got %d rows of size %d", grid.Rows(), grid.CellSize())
	}

	count := 0
	grid.Each(func(c *Cell) {
		count++
		if c.State() != Empty {
			t.Errorf("cell %s: expected empty, got %s", c.Position(), c.State())
		}
	})
	if count != 16 {
		t.Errorf("Expected 16 cells, got %d", count)
	}
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	for _, tc := range []struct{ rows, size int }{{0, 10}, {-1, 10}, {3, 0}} {
		if _, err := NewGrid(tc.rows, tc.size); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewGrid(%d, %d): expected ErrInvalidDimensions, got %v", tc.rows, tc.size, err)
		}
	}
}

func TestGrid_CellAt(t *testing.T) {
	grid := mustGrid(t, 3)

	cell, err := grid.CellAt(2, 1)
	if err != nil {
		t.Fatalf("CellAt(2,1): %v", err)
	}
	if cell.Row() != 2 || cell.Col() != 1 {
		t.Errorf("Expected (2,1), got %s", cell.Position())
	}

	for _, pos := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, err := grid.CellAt(pos.Row, pos.Col)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("CellAt%s: expected ErrOutOfBounds, got %v", pos, err)
		}
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) || oob.Pos != pos {
			t.Errorf("CellAt%s: expected *OutOfBoundsError for the position, got %v", pos, err)
		}
	}
}

func TestGrid_SetState(t *testing.T) {
	grid := mustGrid(t, 3)
	if err := grid.SetState(Position{1, 1}, Barrier); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	cell, _ := grid.CellAt(1, 1)
	if !cell.Is(Barrier) {
		t.Errorf("Expected barrier, got %s", cell.State())
	}
	if err := grid.SetState(Position{5, 5}, Barrier); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestGrid_RefreshNeighbors_Order(t *testing.T) {
	grid := mustGrid(t, 3)
	grid.RefreshNeighbors()

	center, _ := grid.CellAt(1, 1)
	want := []Position{{2, 1}, {0, 1}, {1, 2}, {1, 0}}
	if diff := cmp.Diff(want, center.Neighbors()); diff != "" {
		t.Errorf("center neighbors mismatch (-want +got):\n%s", diff)
	}

	corner, _ := grid.CellAt(0, 0)
	want = []Position{{1, 0}, {0, 1}}
	if diff := cmp.Diff(want, corner.Neighbors()); diff != "" {
		t.Errorf("corner neighbors mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_RefreshNeighbors_SkipsBarriers(t *testing.T) {
	grid := mustGrid(t, 3, Position{2, 1}, Position{1, 0})
	grid.RefreshNeighbors()

	grid.Each(func(c *Cell) {
		for _, n := range c.Neighbors() {
			nc, _ := grid.CellAt(n.Row, n.Col)
			if nc.Is(Barrier) {
				t.Errorf("cell %s lists barrier %s as neighbor", c.Position(), n)
			}
		}
	})

	center, _ := grid.CellAt(1, 1)
	want := []Position{{0, 1}, {1, 2}}
	if diff := cmp.Diff(want, center.Neighbors()); diff != "" {
		t.Errorf("center neighbors mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_RefreshNeighbors_Idempotent(t *testing.T) {
	grid := mustGrid(t, 5, Position{2, 2}, Position{0, 4}, Position{3, 1})
	grid.RefreshNeighbors()
	first := neighborTable(grid)
	grid.RefreshNeighbors()
	second := neighborTable(grid)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second refresh changed neighbors (-first +second):\n%s", diff)
	}
}

func TestGrid_RefreshNeighbors_IsNotAutomatic(t *testing.T) {
	grid := mustGrid(t, 3)
	grid.RefreshNeighbors()
	_ = grid.SetState(Position{1, 1}, Barrier)

	edge, _ := grid.CellAt(0, 1)
	if len(edge.Neighbors()) != 3 {
		t.Fatalf("Expected stale cache with 3 neighbors, got %v", edge.Neighbors())
	}
	grid.RefreshNeighbors()
	if len(edge.Neighbors()) != 2 {
		t.Errorf("Expected 2 neighbors after refresh, got %v", edge.Neighbors())
	}
}

func TestGrid_PositionAt(t *testing.T) {
	grid, _ := NewGrid(4, 10)

	pos, err := grid.PositionAt(25, 7)
	if err != nil {
		t.Fatalf("PositionAt: %v", err)
	}
	if pos != (Position{Row: 2, Col: 0}) {
		t.Errorf("Expected (2,0), got %s", pos)
	}

	cell, _ := grid.CellAt(pos.Row, pos.Col)
	if x, y := cell.Origin(); x != 20 || y != 0 {
		t.Errorf("Expected origin (20,0), got (%d,%d)", x, y)
	}

	if _, err := grid.PositionAt(40, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if _, err := grid.PositionAt(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestGrid_FindAndClearSearch(t *testing.T) {
	grid := mustGrid(t, 3, Position{1, 1})
	_ = grid.SetState(Position{0, 0}, Start)
	_ = grid.SetState(Position{2, 2}, End)
	_ = grid.SetState(Position{0, 1}, Frontier)
	_ = grid.SetState(Position{1, 0}, Visited)
	_ = grid.SetState(Position{2, 0}, Path)

	if pos, ok := grid.Find(End); !ok || pos != (Position{2, 2}) {
		t.Errorf("Find(End) = %s, %v", pos, ok)
	}
	if _, ok := grid.Find(Path); !ok {
		t.Error("Expected a path cell before ClearSearch")
	}

	grid.ClearSearch()

	for state, want := range map[CellState]int{Start: 1, End: 1, Barrier: 1, Frontier: 0, Visited: 0, Path: 0, Empty: 6} {
		if got := countState(grid, state); got != want {
			t.Errorf("%s: expected %d cells, got %d", state, want, got)
		}
	}
}

func TestCellState_String(t *testing.T) {
	if Barrier.String() != "barrier" {
		t.Errorf("Expected barrier, got %s", Barrier)
	}
	if CellState(42).String() != "CellState(42)" {
		t.Errorf("unexpected name for unknown state: %s", CellState(42))
	}
}

func mustGrid(t *testing.T, rows int, barriers ...Position) *Grid {
	t.Helper()
	grid, err := NewGrid(rows, 1)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for _, b := range barriers {
		if err := grid.SetState(b, Barrier); err != nil {
			t.Fatalf("SetState(%s): %v", b, err)
		}
	}
	return grid
}

func neighborTable(grid *Grid) map[Position][]Position {
	table := make(map[Position][]Position)
	grid.Each(func(c *Cell) { table[c.Position()] = c.Neighbors() })
	return table
}

func countState(grid *Grid, state CellState) int {
	n := 0
	grid.Each(func(c *Cell) {
		if c.Is(state) {
			n++
		}
	})
	return n
}
