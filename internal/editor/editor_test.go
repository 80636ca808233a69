package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
)

func pos(r, c int) gridastar.Position { return gridastar.Position{Row: r, Col: c} }

func newEditor(t *testing.T, rows int) *Editor {
	t.Helper()
	grid, err := gridastar.NewGrid(rows, 10)
	require.NoError(t, err)
	return New(grid)
}

func stateAt(t *testing.T, e *Editor, p gridastar.Position) gridastar.CellState {
	t.Helper()
	cell, err := e.Grid().CellAt(p.Row, p.Col)
	require.NoError(t, err)
	return cell.State()
}

func TestPrimaryPlacesStartEndThenBarriers(t *testing.T) {
	e := newEditor(t, 4)
	assert.False(t, e.Ready())

	steps := []struct {
		at   gridastar.Position
		want gridastar.CellState
	}{
		{pos(0, 0), gridastar.Start},
		{pos(3, 3), gridastar.End},
		{pos(1, 1), gridastar.Barrier},
		{pos(0, 0), gridastar.Start},
		{pos(3, 3), gridastar.End},
	}
	for _, s := range steps {
		got, err := e.Primary(s.at)
		require.NoError(t, err)
		assert.Equal(t, s.want, got, "click at %s", s.at)
		assert.Equal(t, s.want, stateAt(t, e, s.at))
	}

	start, end, ok := e.Endpoints()
	require.True(t, ok)
	assert.Equal(t, pos(0, 0), start)
	assert.Equal(t, pos(3, 3), end)
}

func TestPrimaryOnEndWhileStartMissing(t *testing.T) {
	e := newEditor(t, 3)
	_, err := e.Primary(pos(0, 0))
	require.NoError(t, err)
	_, err = e.Primary(pos(2, 2))
	require.NoError(t, err)
	require.NoError(t, e.Secondary(pos(0, 0)))

	// the end cell cannot become the start
	got, err := e.Primary(pos(2, 2))
	require.NoError(t, err)
	assert.Equal(t, gridastar.End, got)
	assert.False(t, e.Ready())

	got, err = e.Primary(pos(1, 0))
	require.NoError(t, err)
	assert.Equal(t, gridastar.Start, got)
	assert.True(t, e.Ready())
}

func TestSecondaryForgetsEndpoints(t *testing.T) {
	e := newEditor(t, 3)
	_, _ = e.Primary(pos(0, 0))
	_, _ = e.Primary(pos(2, 2))
	_, _ = e.Primary(pos(1, 1))

	require.NoError(t, e.Secondary(pos(1, 1)))
	assert.Equal(t, gridastar.Empty, stateAt(t, e, pos(1, 1)))
	assert.True(t, e.Ready())

	require.NoError(t, e.Secondary(pos(2, 2)))
	assert.False(t, e.Ready())

	// the next primary click places a new end
	got, err := e.Primary(pos(0, 2))
	require.NoError(t, err)
	assert.Equal(t, gridastar.End, got)
}

func TestEditsOutOfBounds(t *testing.T) {
	e := newEditor(t, 2)
	_, err := e.Primary(pos(2, 0))
	assert.ErrorIs(t, err, gridastar.ErrOutOfBounds)
	assert.ErrorIs(t, e.Secondary(pos(0, -1)), gridastar.ErrOutOfBounds)
	assert.False(t, e.Ready())
}

func TestClear(t *testing.T) {
	e := newEditor(t, 3)
	_, _ = e.Primary(pos(0, 0))
	_, _ = e.Primary(pos(2, 2))
	before := e.Grid()

	require.NoError(t, e.Clear())
	assert.NotSame(t, before, e.Grid())
	assert.Equal(t, 3, e.Grid().Rows())
	assert.Equal(t, 10, e.Grid().CellSize())
	assert.False(t, e.Ready())
	_, ok := e.Grid().Find(gridastar.Start)
	assert.False(t, ok)
}

func TestNewAdoptsExistingEndpoints(t *testing.T) {
	grid, err := gridastar.NewGrid(3, 1)
	require.NoError(t, err)
	require.NoError(t, grid.SetState(pos(0, 1), gridastar.Start))
	require.NoError(t, grid.SetState(pos(2, 0), gridastar.End))

	e := New(grid)
	start, end, ok := e.Endpoints()
	require.True(t, ok)
	assert.Equal(t, pos(0, 1), start)
	assert.Equal(t, pos(2, 0), end)
}

func TestPlacedReportsPartialEndpoints(t *testing.T) {
	e := newEditor(t, 3)
	start, end := e.Placed()
	assert.Nil(t, start)
	assert.Nil(t, end)

	_, _ = e.Primary(pos(0, 1))
	start, end = e.Placed()
	require.NotNil(t, start)
	assert.Equal(t, pos(0, 1), *start)
	assert.Nil(t, end)

	// the copy does not alias the editor's endpoint
	*start = pos(2, 2)
	again, _ := e.Placed()
	assert.Equal(t, pos(0, 1), *again)
}
