package gridastar

import "container/heap"

// relaxProposal is a candidate route to ToNode through FromNode.
type relaxProposal struct {
	FromNode Position
	ToNode   Position
	GScore   int
	FScore   int
}

func (s *Stepper) propose(from, to Position) relaxProposal {
	tentativeG := s.gScore[from] + 1
	return relaxProposal{
		FromNode: from,
		ToNode:   to,
		GScore:   tentativeG,
		FScore:   tentativeG + s.heuristic(to, s.end),
	}
}

// relax applies p if it strictly improves the known distance. Equal-cost routes keep
// the predecessor found first.
func (s *Stepper) relax(p relaxProposal) {
	if gPrev, ok := s.gScore[p.ToNode]; ok && p.GScore >= gPrev {
		return
	}
	s.cameFrom[p.ToNode] = p.FromNode
	s.gScore[p.ToNode] = p.GScore

	// a queued cell keeps the key and sequence it was pushed with
	if _, ok := s.inFrontier[p.ToNode]; ok {
		return
	}

	s.sequence++
	item := &frontierItem{Pos: p.ToNode, FScore: p.FScore, Sequence: s.sequence}
	heap.Push(&s.frontier, item)
	s.inFrontier[p.ToNode] = struct{}{}
	s.grid.cell(p.ToNode).state = Frontier
}
