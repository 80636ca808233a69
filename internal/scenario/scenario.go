// Package scenario describes grids on disk: their size, endpoints and barriers.
//
// Three formats are understood. YAML maps directly onto Scenario. HCL evaluates
// expressions with the variables rows and last and the functions min, max and
// floor in scope, and adds wall blocks for straight barrier runs. ASCII layouts
// draw the grid one line per row.
package scenario

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/pdrpinto/gridastar"
)

// DefaultCellSize is used when a scenario leaves cell_size unset.
const DefaultCellSize = 16

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Scenario is a grid definition ready to be built.
type Scenario struct {
	Name     string               `yaml:"name"`
	Rows     int                  `yaml:"rows" validate:"gte=1,lte=1000"`
	CellSize int                  `yaml:"cell_size" validate:"gte=1"`
	Start    *gridastar.Position  `yaml:"start" validate:"required"`
	End      *gridastar.Position  `yaml:"end" validate:"required"`
	Barriers []gridastar.Position `yaml:"barriers"`

	// Layout, when set, is an ASCII drawing that replaces Rows, Start, End and Barriers.
	Layout string `yaml:"layout"`
}

func (s *Scenario) applyDefaults() {
	if s.CellSize == 0 {
		s.CellSize = DefaultCellSize
	}
}

// Validate reports the first problem that would keep the scenario from building.
func (s *Scenario) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalid, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	inBounds := func(p gridastar.Position) bool {
		return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Rows
	}
	if !inBounds(*s.Start) {
		return fmt.Errorf("%w: start %s outside %dx%d grid", ErrInvalid, s.Start, s.Rows, s.Rows)
	}
	if !inBounds(*s.End) {
		return fmt.Errorf("%w: end %s outside %dx%d grid", ErrInvalid, s.End, s.Rows, s.Rows)
	}
	if *s.Start == *s.End {
		return fmt.Errorf("%w: start and end are both %s", ErrInvalid, s.Start)
	}
	for _, b := range s.Barriers {
		if !inBounds(b) {
			return fmt.Errorf("%w: barrier %s outside %dx%d grid", ErrInvalid, b, s.Rows, s.Rows)
		}
		if b == *s.Start || b == *s.End {
			return fmt.Errorf("%w: barrier %s covers an endpoint", ErrInvalid, b)
		}
	}
	return nil
}

// Build validates the scenario and returns a grid with endpoints and barriers
// marked and neighbour lists refreshed.
func (s *Scenario) Build() (*gridastar.Grid, gridastar.Position, gridastar.Position, error) {
	var zero gridastar.Position
	if err := s.Validate(); err != nil {
		return nil, zero, zero, err
	}

	grid, err := gridastar.NewGrid(s.Rows, s.CellSize)
	if err != nil {
		return nil, zero, zero, err
	}
	for _, b := range s.Barriers {
		if err := grid.SetState(b, gridastar.Barrier); err != nil {
			return nil, zero, zero, err
		}
	}
	if err := grid.SetState(*s.Start, gridastar.Start); err != nil {
		return nil, zero, zero, err
	}
	if err := grid.SetState(*s.End, gridastar.End); err != nil {
		return nil, zero, zero, err
	}
	grid.RefreshNeighbors()
	return grid, *s.Start, *s.End, nil
}
