package gridastar

import "fmt"

// Position identifies a cell by row and column.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellState is the tag carried by every cell. Exactly one holds at a time.
type CellState uint8

const (
	Empty CellState = iota
	Start
	End
	Barrier
	Frontier
	Visited
	Path
)

var cellStateNames = [...]string{
	Empty:    "empty",
	Start:    "start",
	End:      "end",
	Barrier:  "barrier",
	Frontier: "frontier",
	Visited:  "visited",
	Path:     "path",
}

func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// neighborOffsets is the order in which adjacent cells are checked: down, up, right, left.
var neighborOffsets = [4]Position{
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// Cell is one square of the grid.
type Cell struct {
	pos       Position
	size      int
	state     CellState
	neighbors []Position
}

func (c *Cell) Position() Position { return c.pos }
func (c *Cell) Row() int           { return c.pos.Row }
func (c *Cell) Col() int           { return c.pos.Col }
func (c *Cell) State() CellState   { return c.state }
func (c *Cell) Is(state CellState) bool {
	return c.state == state
}

// Size is the side length of the cell in pixels.
func (c *Cell) Size() int { return c.size }

// Origin returns the pixel coordinates of the cell's corner. Rows advance along x.
func (c *Cell) Origin() (x, y int) {
	return c.pos.Row * c.size, c.pos.Col * c.size
}

// Neighbors returns a copy of the cached neighbor list as of the last RefreshNeighbors.
func (c *Cell) Neighbors() []Position {
	out := make([]Position, len(c.neighbors))
	copy(out, c.neighbors)
	return out
}

// Grid is a square collection of rows × rows cells.
//
// The grid does not enforce a single start or end cell; callers editing the grid own
// that rule. It is not safe for concurrent use.
type Grid struct {
	rows     int
	cellSize int
	cells    [][]*Cell
}

// NewGrid allocates a rows × rows grid of empty cells.
func NewGrid(rows, cellSize int) (*Grid, error) {
	if rows < 1 || cellSize < 1 {
		return nil, fmt.Errorf("%w: rows=%d cell_size=%d", ErrInvalidDimensions, rows, cellSize)
	}
	cells := make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]*Cell, rows)
		for c := 0; c < rows; c++ {
			cells[r][c] = &Cell{pos: Position{Row: r, Col: c}, size: cellSize}
		}
	}
	return &Grid{rows: rows, cellSize: cellSize, cells: cells}, nil
}

func (g *Grid) Rows() int     { return g.rows }
func (g *Grid) CellSize() int { return g.cellSize }

// Contains reports whether pos lies inside the grid.
func (g *Grid) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.rows
}

// CellAt returns the cell at (row, col) or an *OutOfBoundsError.
func (g *Grid) CellAt(row, col int) (*Cell, error) {
	pos := Position{Row: row, Col: col}
	if !g.Contains(pos) {
		return nil, &OutOfBoundsError{Pos: pos, Rows: g.rows}
	}
	return g.cells[row][col], nil
}

// SetState overwrites the state of the cell at pos.
func (g *Grid) SetState(pos Position, state CellState) error {
	cell, err := g.CellAt(pos.Row, pos.Col)
	if err != nil {
		return err
	}
	cell.state = state
	return nil
}

// RefreshNeighbors recomputes every cell's neighbor cache. It has to be called after
// barriers change and before a search; nothing invalidates the caches automatically.
func (g *Grid) RefreshNeighbors() {
	for _, row := range g.cells {
		for _, cell := range row {
			cell.neighbors = cell.neighbors[:0]
			for _, d := range neighborOffsets {
				n := Position{Row: cell.pos.Row + d.Row, Col: cell.pos.Col + d.Col}
				if g.Contains(n) && g.cells[n.Row][n.Col].state != Barrier {
					cell.neighbors = append(cell.neighbors, n)
				}
			}
		}
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(*Cell)) {
	for _, row := range g.cells {
		for _, cell := range row {
			fn(cell)
		}
	}
}

// Find returns the first cell in row-major order carrying state.
func (g *Grid) Find(state CellState) (Position, bool) {
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.state == state {
				return cell.pos, true
			}
		}
	}
	return Position{}, false
}

// PositionAt maps pixel coordinates to the cell under them.
func (g *Grid) PositionAt(x, y int) (Position, error) {
	if x < 0 || y < 0 {
		return Position{}, &OutOfBoundsError{Pos: Position{Row: -1, Col: -1}, Rows: g.rows}
	}
	pos := Position{Row: x / g.cellSize, Col: y / g.cellSize}
	if !g.Contains(pos) {
		return Position{}, &OutOfBoundsError{Pos: pos, Rows: g.rows}
	}
	return pos, nil
}

// ClearSearch resets Frontier, Visited and Path cells to Empty so the grid can be
// searched again. Start, End and Barrier cells are left alone.
func (g *Grid) ClearSearch() {
	g.Each(func(c *Cell) {
		switch c.state {
		case Frontier, Visited, Path:
			c.state = Empty
		}
	})
}

func (g *Grid) cell(pos Position) *Cell {
	return g.cells[pos.Row][pos.Col]
}
