// Package gridastar provides an observable A* shortest-path search over a square grid
// of cells with 4-directional, unit-cost movement.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The search writes its progress into the grid's cell states (Frontier, Visited, Path)
// and calls an injected StepObserver after every expansion so the caller can redraw.
// Cancellation is cooperative: a CancelCheck or the context is polled once per
// dequeued cell. Ties on the estimated total cost are broken by insertion order, which
// makes the expansion order and the resulting path reproducible.
package gridastar
