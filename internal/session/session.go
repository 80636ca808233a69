// Package session owns one editable grid and runs searches on it with logging,
// metrics and tracing around each run.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/editor"
	"github.com/pdrpinto/gridastar/internal/scenario"
	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// ErrNotReady is returned when a search is requested before both endpoints are placed.
var ErrNotReady = errors.New("start and end must both be placed")

// Session is a grid plus the bookkeeping around searching it. It is not safe
// for concurrent use.
type Session struct {
	ID   string
	Name string

	editor *editor.Editor
	tel    *telemetry.Telemetry
	logger *telemetry.Logger

	// pending is set between NewStepper and Complete.
	pending *telemetry.Timer
}

// New returns a session over an empty rows x rows grid.
func New(rows, cellSize int, tel *telemetry.Telemetry) (*Session, error) {
	grid, err := gridastar.NewGrid(rows, cellSize)
	if err != nil {
		return nil, err
	}
	if tel == nil {
		tel = telemetry.Nop()
	}
	id := uuid.NewString()
	s := &Session{
		ID:     id,
		editor: editor.New(grid),
		tel:    tel,
		logger: tel.Logger.NewComponentLogger("session").WithSessionID(id),
	}
	s.logger.Debug().Int("rows", rows).Int("cell_size", cellSize).Msg("Session created")
	return s, nil
}

// FromScenario returns a session over the grid sc describes.
func FromScenario(sc *scenario.Scenario, tel *telemetry.Telemetry) (*Session, error) {
	s, err := New(sc.Rows, sc.CellSize, tel)
	if err != nil {
		return nil, err
	}
	if err := s.Load(sc); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the grid with the one sc describes.
func (s *Session) Load(sc *scenario.Scenario) error {
	grid, _, _, err := sc.Build()
	if err != nil {
		return fmt.Errorf("load scenario %q: %w", sc.Name, err)
	}
	s.abandon()
	s.editor = editor.New(grid)
	s.Name = sc.Name
	s.logger.Info().
		Str("scenario", sc.Name).
		Int("rows", sc.Rows).
		Int("barriers", len(sc.Barriers)).
		Msg("Scenario loaded")
	return nil
}

// Grid returns the current grid.
func (s *Session) Grid() *gridastar.Grid {
	return s.editor.Grid()
}

// Ready reports whether a search can run.
func (s *Session) Ready() bool {
	return s.editor.Ready()
}

// Endpoints returns whichever of start and end are placed, nil for the others.
// Cell states cannot tell this while a search is running.
func (s *Session) Endpoints() (start, end *gridastar.Position) {
	return s.editor.Placed()
}

// Primary applies a primary click at pos.
func (s *Session) Primary(pos gridastar.Position) (gridastar.CellState, error) {
	state, err := s.editor.Primary(pos)
	if err != nil {
		return state, err
	}
	s.tel.Metrics.RecordGridEdit(state.String())
	return state, nil
}

// Secondary resets the cell at pos.
func (s *Session) Secondary(pos gridastar.Position) error {
	if err := s.editor.Secondary(pos); err != nil {
		return err
	}
	s.tel.Metrics.RecordGridEdit(gridastar.Empty.String())
	return nil
}

// Clear starts over with an empty grid of the same size.
func (s *Session) Clear() error {
	if err := s.editor.Clear(); err != nil {
		return err
	}
	s.abandon()
	s.logger.Debug().Msg("Grid cleared")
	return nil
}

// prepare wipes marks left by an earlier search and rebuilds neighbour lists.
func (s *Session) prepare() (start, end gridastar.Position, err error) {
	start, end, ok := s.editor.Endpoints()
	if !ok {
		return start, end, ErrNotReady
	}
	grid := s.Grid()
	grid.ClearSearch()
	grid.RefreshNeighbors()
	return start, end, nil
}

// Run searches the grid from start to end, calling observer after every step.
// Cancelling ctx cancels the search.
func (s *Session) Run(ctx context.Context, observer gridastar.StepObserver) (gridastar.Result, error) {
	start, end, err := s.prepare()
	if err != nil {
		return gridastar.Result{}, err
	}

	ctx, span := s.tel.Tracer.StartSearchSpan(ctx, s.ID, s.Grid().Rows(), start.String(), end.String())
	defer span.End()

	s.tel.Metrics.RecordSearchStarted()
	timer := telemetry.NewTimer()

	result, err := gridastar.Search(ctx, s.Grid(), start, end,
		gridastar.WithObserver(observer),
		gridastar.WithLogger(s.logger.Zerolog()),
	)
	if err != nil {
		// preconditions are checked by prepare, so this is a bug
		s.tel.Metrics.RecordSearchCompleted("error", timer.Duration(), 0, 0)
		telemetry.RecordError(span, err)
		return result, err
	}

	span.SetAttributes(
		telemetry.AttrSearchOutcome.String(result.Outcome.String()),
		telemetry.AttrExpandedCells.Int(result.ExpandedNodes),
		telemetry.AttrPathLength.Int(result.TotalCost),
	)
	telemetry.RecordSuccess(span)
	s.record(result, timer.Duration())
	return result, nil
}

// NewStepper prepares the grid and returns a stepper for driving the search by
// hand. Call Complete with its result once it is done.
func (s *Session) NewStepper(options ...gridastar.Option) (*gridastar.Stepper, error) {
	start, end, err := s.prepare()
	if err != nil {
		return nil, err
	}
	s.abandon()
	options = append([]gridastar.Option{gridastar.WithLogger(s.logger.Zerolog())}, options...)
	stepper, err := gridastar.NewStepper(s.Grid(), start, end, options...)
	if err != nil {
		return nil, err
	}
	s.tel.Metrics.RecordSearchStarted()
	s.pending = telemetry.NewTimer()
	return stepper, nil
}

// Complete records the result of a stepper created by NewStepper. Calls without
// a pending stepper are ignored.
func (s *Session) Complete(result gridastar.Result) {
	if s.pending == nil {
		return
	}
	s.record(result, s.pending.Duration())
	s.pending = nil
}

// abandon closes out a stepper that was dropped before finishing.
func (s *Session) abandon() {
	s.Complete(gridastar.Result{Outcome: gridastar.OutcomeCancelled})
}

func (s *Session) record(result gridastar.Result, elapsed time.Duration) {
	s.tel.Metrics.RecordSearchCompleted(result.Outcome.String(), elapsed, result.ExpandedNodes, result.TotalCost)
	s.logger.Info().
		Stringer("outcome", result.Outcome).
		Int("expanded", result.ExpandedNodes).
		Int("cost", result.TotalCost).
		Dur("elapsed", elapsed).
		Msg("Search finished")
}
