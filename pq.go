package gridastar

type frontierItem struct {
	Pos          Position
	FScore       int
	Sequence     uint64
	IndexInQueue int
}

// frontierQueue is a min-heap on (FScore, Sequence). Equal scores come out in
// insertion order.
type frontierQueue []*frontierItem

func (queue frontierQueue) Len() int { return len(queue) }
func (queue frontierQueue) Less(i, j int) bool {
	if queue[i].FScore != queue[j].FScore {
		return queue[i].FScore < queue[j].FScore
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue frontierQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *frontierQueue) Push(x any) {
	item := x.(*frontierItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *frontierQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
