package gridastar

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// StepObserver is called after every batch of cell state changes, typically to redraw.
type StepObserver func()

// CancelCheck is polled once per dequeued cell; returning true stops the search.
type CancelCheck func() bool

// Outcome tells how a search ended.
type Outcome int

const (
	// OutcomePending is the outcome of a search that has not finished yet.
	OutcomePending Outcome = iota
	OutcomeFound
	OutcomeNotFound
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText renders the outcome by name in JSON and YAML.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for candidate := OutcomePending; candidate <= OutcomeCancelled; candidate++ {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Result contains the outcome of a search
type Result struct {
	Outcome       Outcome    `json:"outcome"`
	Path          []Position `json:"path,omitempty"`
	TotalCost     int        `json:"total_cost"`
	ExpandedNodes int        `json:"expanded_nodes"`
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Outcome == OutcomeFound }

// Options defines parameters for the search.
type Options struct {
	Observer    StepObserver
	CancelCheck CancelCheck
	Heuristic   Heuristic
	Logger      zerolog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithObserver sets the callback fired after each expansion and each revealed path cell.
func WithObserver(observer StepObserver) Option {
	return func(options *Options) { options.Observer = observer }
}

// WithCancelCheck sets a predicate polled before every dequeue.
func WithCancelCheck(check CancelCheck) Option {
	return func(options *Options) { options.CancelCheck = check }
}

// WithHeuristic replaces Manhattan distance. The replacement must be admissible.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger sets the logger used for debug and trace output.
func WithLogger(logger zerolog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func newOptions(options []Option) Options {
	searchOptions := Options{
		Observer:    func() {},
		CancelCheck: func() bool { return false },
		Heuristic:   Manhattan,
		Logger:      zerolog.Nop(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Observer == nil {
		searchOptions.Observer = func() {}
	}
	if searchOptions.CancelCheck == nil {
		searchOptions.CancelCheck = func() bool { return false }
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	return searchOptions
}

// Search runs A* from start to end on grid until it finds a path, exhausts the frontier
// or is cancelled, either through ctx or a CancelCheck.
//
// The caller must have called grid.RefreshNeighbors since the last barrier edit and
// must not touch the grid until Search returns. A non-nil error means a precondition was
// violated and nothing ran; "no path" and "cancelled" are reported through Result.Outcome.
func Search(
	contextObject context.Context,
	grid *Grid,
	start Position,
	end Position,
	options ...Option,
) (Result, error) {
	stepper, err := NewStepper(grid, start, end, options...)
	if err != nil {
		return Result{}, err
	}

	for !stepper.Done() {
		if stepper.frontier.Len() > 0 && (contextObject.Err() != nil || stepper.cancelCheck()) {
			stepper.Cancel()
			break
		}
		stepper.Step()
	}
	return stepper.Result(), nil
}

func validateEndpoints(grid *Grid, start, end Position) error {
	if grid == nil {
		return ErrNilGrid
	}
	if !grid.Contains(start) {
		return fmt.Errorf("start: %w", &OutOfBoundsError{Pos: start, Rows: grid.rows})
	}
	if !grid.Contains(end) {
		return fmt.Errorf("end: %w", &OutOfBoundsError{Pos: end, Rows: grid.rows})
	}
	if start == end {
		return fmt.Errorf("%w: %s", ErrSameEndpoints, start)
	}
	return nil
}
