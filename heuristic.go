package gridastar

import "github.com/pdrpinto/gridastar/internal"

// Heuristic returns the estimated cost from node a to node b.
// It must never overestimate for the search to stay optimal.
type Heuristic func(a, b Position) int

// Manhattan is |Δrow| + |Δcol|, admissible and consistent on a 4-neighbour unit grid.
func Manhattan(a, b Position) int {
	return internal.Abs(a.Row-b.Row) + internal.Abs(a.Col-b.Col)
}
