package gridastar

import "github.com/pdrpinto/gridastar/internal"

// reconstruct walks cameFrom back from the end to the start, marking every cell in
// between as Path and firing the observer once per marked cell. It returns the path
// in start-to-end order.
func (s *Stepper) reconstruct() []Position {
	path := []Position{s.end}
	current := s.end
	for {
		previous, exists := s.cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previous)
		if previous != s.start {
			s.grid.cell(previous).state = Path
			s.observer()
		}
		current = previous
	}
	return internal.Reverse(path)
}
