package hair

import "github.com/achilleasa/hairbvh/types"

// BuildTask is one pending subtree: a destination slot waiting for its
// encoded child reference, plus everything processTask needs to decide
// how to subdivide it further.
type BuildTask struct {
	Dest     *NodeRef
	Depth    int
	PrimInfo PrimInfo
	Refs     *RefList
	Bounds   types.OrientedBounds

	seq uint64 // insertion order, used only to break size ties
}

// taskHeap is a max-heap on reference count (largest task first), with
// ties broken by insertion order so results are reproducible regardless
// of how many workers are racing to pop.
type taskHeap []*BuildTask

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	si, sj := h[i].PrimInfo.Size(), h[j].PrimInfo.Size()
	if si != sj {
		return si > sj
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x interface{}) {
	*h = append(*h, x.(*BuildTask))
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
