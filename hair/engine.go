package hair

import (
	"container/heap"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/achilleasa/hairbvh/log"
	"github.com/achilleasa/hairbvh/types"
)

// SequentialThreshold is the reference count below which a task is
// recursed to completion on the thread that popped it instead of being
// split into child tasks pushed back onto the shared heap. Keeping small
// subtrees off the heap avoids lock contention once there's no longer
// enough work to justify it.
const SequentialThreshold = 512

const (
	defaultMinLeafSize   = 1
	defaultMaxBuildDepth = 64
)

// builder holds everything the parallel task engine and node builder
// share while a single Build call is in flight. It is created fresh per
// build and discarded afterwards; nothing on it outlives Build.
type builder struct {
	cfg    Config
	bvh    *BVH
	alloc  *BlockAllocator
	logger log.Logger

	minLeafSize   int
	maxBuildDepth int

	remainingReplications atomic.Int64
	numActiveTasks        atomic.Int64
	numGeneratedPrims     atomic.Int64

	mu       sync.Mutex
	cond     *sync.Cond
	heap     taskHeap
	seqNext  uint64
}

func newBuilder(cfg Config, bvh *BVH, threadCount int, logger log.Logger) *builder {
	bld := &builder{
		cfg:           cfg,
		bvh:           bvh,
		alloc:         NewBlockAllocator(threadCount),
		logger:        logger,
		minLeafSize:   defaultMinLeafSize,
		maxBuildDepth: defaultMaxBuildDepth,
	}
	bld.cond = sync.NewCond(&bld.mu)
	return bld
}

// pushTask enqueues a task and bumps numActiveTasks BEFORE the push
// becomes visible, so a worker that observes the new queue entry never
// sees an active-task count that hasn't accounted for it yet.
func (bld *builder) pushTask(task *BuildTask) {
	bld.numActiveTasks.Add(1)
	bld.mu.Lock()
	task.seq = bld.seqNext
	bld.seqNext++
	heap.Push(&bld.heap, task)
	bld.mu.Unlock()
	bld.cond.Broadcast()
}

// popTask blocks until a task is available or the build has finished
// (numActiveTasks reaches zero with an empty queue), in which case ok is
// false.
func (bld *builder) popTask() (task *BuildTask, ok bool) {
	bld.mu.Lock()
	defer bld.mu.Unlock()
	for len(bld.heap) == 0 {
		if bld.numActiveTasks.Load() == 0 {
			return nil, false
		}
		bld.cond.Wait()
	}
	task = heap.Pop(&bld.heap).(*BuildTask)
	return task, true
}

// runWorker is the per-thread loop described by the parallel task
// engine: pop the largest pending task, recurse sequentially once it's
// small enough, otherwise split it once and push its children back.
func (bld *builder) runWorker(threadIndex int) {
	for {
		task, ok := bld.popTask()
		if !ok {
			return
		}
		if task.PrimInfo.Size() < SequentialThreshold {
			bld.numActiveTasks.Add(-1)
			bld.recurseSequential(threadIndex, task)
			bld.cond.Broadcast()
			continue
		}

		children := bld.processTask(threadIndex, task)
		for _, child := range children {
			bld.pushTask(child)
		}
		bld.numActiveTasks.Add(-1)
		bld.cond.Broadcast()
	}
}

// recurseSequential processes a task and every descendant it produces on
// the calling goroutine, without touching the shared heap.
func (bld *builder) recurseSequential(threadIndex int, task *BuildTask) {
	children := bld.processTask(threadIndex, task)
	for _, child := range children {
		bld.recurseSequential(threadIndex, child)
	}
}

// processTask is the node-builder state machine for a single node: emit
// a leaf if forced, otherwise repeatedly grow a 1-4 child array by
// splitting the currently largest splittable child, then emit the node
// (aligned if every split taken was aligned, unaligned otherwise) and
// return one build task per child; a child at or below the leaf threshold
// becomes a leaf when its own task is processed.
func (bld *builder) processTask(threadIndex int, task *BuildTask) []*BuildTask {
	refs, pinfo := task.Refs, task.PrimInfo

	if pinfo.Size() <= bld.minLeafSize || task.Depth >= bld.maxBuildDepth {
		*task.Dest = bld.emitLeaf(threadIndex, refs)
		return nil
	}

	type childSlot struct {
		refs   *RefList
		info   PrimInfo
		bounds types.OrientedBounds
	}

	children := []*childSlot{{refs: refs, info: pinfo, bounds: task.Bounds}}
	isAligned := true

	for len(children) < 4 {
		best := -1
		bestArea := float32(-1)
		for i, c := range children {
			if c.info.Size() <= bld.minLeafSize {
				continue
			}
			if area := c.bounds.Bounds.HalfArea(); area > bestArea {
				bestArea = area
				best = i
			}
		}
		if best < 0 {
			break
		}

		c := children[best]
		res := bld.dispatch(threadIndex, c.refs, c.bounds, c.info)
		if res.unaligned {
			isAligned = false
		}

		children[best] = &childSlot{refs: res.left, info: res.leftInfo, bounds: ComputeHairSpaceBounds(res.left)}
		children = append(children, &childSlot{refs: res.right, info: res.rightInfo, bounds: ComputeHairSpaceBounds(res.right)})
	}

	var destSlots [4]*NodeRef
	if isAligned {
		node := bld.bvh.allocAlignedNode(threadIndex)
		for i, c := range children {
			node.Bounds[i] = c.info.GeomBounds
			destSlots[i] = &node.Children[i]
		}
		*task.Dest = encodeAlignedNode(node)
	} else {
		node := bld.bvh.allocUnalignedNode(threadIndex)
		for i, c := range children {
			node.Bounds[i] = c.bounds
			destSlots[i] = &node.Children[i]
		}
		*task.Dest = encodeUnalignedNode(node)
	}

	if len(children) < 2 {
		panic(fmt.Sprintf("hair: interior node emitted with %d non-empty children", len(children)))
	}

	childTasks := make([]*BuildTask, len(children))
	for i, c := range children {
		childTasks[i] = &BuildTask{Dest: destSlots[i], Depth: task.Depth + 1, PrimInfo: c.info, Refs: c.refs, Bounds: c.bounds}
	}
	return childTasks
}

// emitLeaf copies refs (truncating to MaxLeafBlocks and warning if it
// overflows) into a freshly-allocated contiguous leaf array in the
// configured layout, releases the reference-list blocks, and tracks
// progress via numGeneratedPrims.
func (bld *builder) emitLeaf(threadIndex int, refs *RefList) NodeRef {
	n := refs.Size()
	if n == 0 {
		refs.Release(bld.alloc, threadIndex)
		return EmptyNodeRef()
	}
	if n > bld.bvh.MaxLeafBlocks {
		bld.logger.Warningf("! leaf overflow: dropping %d of %d primitives (max %d)", n-bld.bvh.MaxLeafBlocks, n, bld.bvh.MaxLeafBlocks)
		n = bld.bvh.MaxLeafBlocks
	}

	var ref NodeRef
	switch bld.bvh.LeafKind {
	case IndexedLeaf:
		prims := bld.bvh.allocIndexedPrimitiveBlock(threadIndex, n)
		i := 0
		refs.ForEach(func(r Bezier1) {
			if i >= n {
				return
			}
			prims[i] = IndexedBezier1{GeomID: r.GeomID, PrimID: r.PrimID, T0: r.T0, T1: r.T1}
			i++
		})
		ref = encodeIndexedLeaf(prims)
	default:
		prims := bld.bvh.allocInlinePrimitiveBlock(threadIndex, n)
		i := 0
		refs.ForEach(func(r Bezier1) {
			if i >= n {
				return
			}
			prims[i] = r
			i++
		})
		ref = encodeInlineLeaf(prims)
	}

	before := bld.numGeneratedPrims.Add(int64(n)) - int64(n)
	after := before + int64(n)
	if before/10000 != after/10000 {
		bld.logger.Debugf("generated %d primitives", after)
	}

	refs.Release(bld.alloc, threadIndex)
	return ref
}

