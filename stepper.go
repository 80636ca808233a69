package gridastar

import (
	"container/heap"

	"github.com/rs/zerolog"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current      Position   `json:"current"`
	FrontierSize int        `json:"frontier_size"`
	Expanded     int        `json:"expanded"`
	Done         bool       `json:"done"`
	Outcome      Outcome    `json:"outcome"`
	Path         []Position `json:"path,omitempty"`
	StepIndex    int        `json:"step"`
}

// Stepper runs the search one expansion at a time. It owns all run-state; nothing
// survives it except the cell states written to the grid.
type Stepper struct {
	grid        *Grid
	start       Position
	end         Position
	heuristic   Heuristic
	observer    StepObserver
	cancelCheck CancelCheck
	logger      zerolog.Logger

	frontier   frontierQueue
	inFrontier map[Position]struct{}
	gScore     map[Position]int
	cameFrom   map[Position]Position
	sequence   uint64

	current   Position
	stepCount int
	expanded  int
	done      bool
	outcome   Outcome
	path      []Position
	cost      int
}

// NewStepper prepares a search from start to end. See Search for the preconditions.
func NewStepper(grid *Grid, start, end Position, options ...Option) (*Stepper, error) {
	if err := validateEndpoints(grid, start, end); err != nil {
		return nil, err
	}
	opts := newOptions(options)

	s := &Stepper{
		grid:        grid,
		start:       start,
		end:         end,
		heuristic:   opts.Heuristic,
		observer:    opts.Observer,
		cancelCheck: opts.CancelCheck,
		logger:      opts.Logger,
		frontier:    make(frontierQueue, 0),
		inFrontier:  make(map[Position]struct{}),
		gScore:      map[Position]int{start: 0},
		cameFrom:    make(map[Position]Position),
		current:     start,
	}

	heap.Init(&s.frontier)
	startItem := &frontierItem{Pos: start, FScore: s.heuristic(start, end), Sequence: 0}
	heap.Push(&s.frontier, startItem)
	s.inFrontier[start] = struct{}{}

	s.logger.Debug().
		Stringer("start", start).
		Stringer("end", end).
		Int("rows", grid.rows).
		Msg("search started")
	return s, nil
}

// Done reports whether the search has reached a final outcome.
func (s *Stepper) Done() bool { return s.done }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done further calls only return the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	if s.done {
		return s.snapshot()
	}
	if s.frontier.Len() == 0 {
		s.finish(OutcomeNotFound)
		return s.snapshot()
	}

	s.stepCount++
	currentItem := heap.Pop(&s.frontier).(*frontierItem)
	current := currentItem.Pos
	delete(s.inFrontier, current)
	s.current = current
	s.expanded++

	if current == s.end {
		s.path = s.reconstruct()
		s.grid.cell(s.end).state = End
		s.cost = s.gScore[s.end]
		s.finish(OutcomeFound)
		return s.snapshot()
	}

	for _, neighbor := range s.grid.cell(current).neighbors {
		s.relax(s.propose(current, neighbor))
	}

	s.logger.Trace().
		Stringer("current", current).
		Int("step", s.stepCount).
		Int("frontier", s.frontier.Len()).
		Msg("expanded cell")

	s.observer()

	if current != s.start {
		s.grid.cell(current).state = Visited
	}
	return s.snapshot()
}

// Cancel ends an unfinished search with OutcomeCancelled. Cell states already written
// stay as they are.
func (s *Stepper) Cancel() {
	if !s.done {
		s.finish(OutcomeCancelled)
	}
}

// Result returns the outcome so far. Path is only set when the outcome is OutcomeFound.
func (s *Stepper) Result() Result {
	return Result{
		Outcome:       s.outcome,
		Path:          copyPath(s.path),
		TotalCost:     s.cost,
		ExpandedNodes: s.expanded,
	}
}

func (s *Stepper) finish(outcome Outcome) {
	s.done = true
	s.outcome = outcome
	s.logger.Debug().
		Stringer("outcome", outcome).
		Int("expanded", s.expanded).
		Int("cost", s.cost).
		Msg("search finished")
}

func (s *Stepper) snapshot() StepSnapshot {
	return StepSnapshot{
		Current:      s.current,
		FrontierSize: s.frontier.Len(),
		Expanded:     s.expanded,
		Done:         s.done,
		Outcome:      s.outcome,
		Path:         copyPath(s.path),
		StepIndex:    s.stepCount,
	}
}

func copyPath(path []Position) []Position {
	if path == nil {
		return nil
	}
	c := make([]Position, len(path))
	copy(c, path)
	return c
}
