// Package editor applies pointer edits to a grid while keeping at most one
// start and one end cell.
package editor

import (
	"fmt"

	"github.com/pdrpinto/gridastar"
)

// Editor tracks the endpoints of the grid it edits.
type Editor struct {
	grid  *gridastar.Grid
	start *gridastar.Position
	end   *gridastar.Position
}

// New wraps grid, adopting any start or end cell already on it.
func New(grid *gridastar.Grid) *Editor {
	e := &Editor{grid: grid}
	if pos, ok := grid.Find(gridastar.Start); ok {
		e.start = &pos
	}
	if pos, ok := grid.Find(gridastar.End); ok {
		e.end = &pos
	}
	return e
}

// Grid returns the grid being edited. It changes after Clear.
func (e *Editor) Grid() *gridastar.Grid {
	return e.grid
}

// Primary applies a primary click at pos and returns the cell's resulting state.
// The first click places the start, the next the end, later clicks place
// barriers. The endpoints themselves are left alone.
func (e *Editor) Primary(pos gridastar.Position) (gridastar.CellState, error) {
	cell, err := e.grid.CellAt(pos.Row, pos.Col)
	if err != nil {
		return gridastar.Empty, err
	}

	switch {
	case e.start == nil && !e.isEnd(pos):
		e.start = &pos
		return gridastar.Start, e.grid.SetState(pos, gridastar.Start)
	case e.end == nil && !e.isStart(pos):
		e.end = &pos
		return gridastar.End, e.grid.SetState(pos, gridastar.End)
	case !e.isStart(pos) && !e.isEnd(pos):
		return gridastar.Barrier, e.grid.SetState(pos, gridastar.Barrier)
	default:
		return cell.State(), nil
	}
}

// Secondary resets the cell at pos to empty, forgetting it as an endpoint.
func (e *Editor) Secondary(pos gridastar.Position) error {
	if err := e.grid.SetState(pos, gridastar.Empty); err != nil {
		return err
	}
	if e.isStart(pos) {
		e.start = nil
	} else if e.isEnd(pos) {
		e.end = nil
	}
	return nil
}

// Clear replaces the grid with a fresh one of the same size and forgets both endpoints.
func (e *Editor) Clear() error {
	grid, err := gridastar.NewGrid(e.grid.Rows(), e.grid.CellSize())
	if err != nil {
		return fmt.Errorf("clear grid: %w", err)
	}
	e.grid = grid
	e.start, e.end = nil, nil
	return nil
}

// Endpoints returns the start and end cells. ok is false unless both are placed.
func (e *Editor) Endpoints() (start, end gridastar.Position, ok bool) {
	if !e.Ready() {
		return start, end, false
	}
	return *e.start, *e.end, true
}

// Placed returns copies of whichever endpoints are placed, nil for the others.
func (e *Editor) Placed() (start, end *gridastar.Position) {
	if e.start != nil {
		pos := *e.start
		start = &pos
	}
	if e.end != nil {
		pos := *e.end
		end = &pos
	}
	return start, end
}

// Ready reports whether both endpoints are placed.
func (e *Editor) Ready() bool {
	return e.start != nil && e.end != nil
}

func (e *Editor) isStart(pos gridastar.Position) bool { return e.start != nil && *e.start == pos }
func (e *Editor) isEnd(pos gridastar.Position) bool   { return e.end != nil && *e.end == pos }
