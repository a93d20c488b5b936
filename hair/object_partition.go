package hair

import "github.com/achilleasa/hairbvh/types"

// objectPartitionBins is the number of centroid bins used along each axis.
const objectPartitionBins = 16

// ObjectSplit is a SAH-optimal axis-aligned (in the given frame) object
// split found by centroid binning.
type ObjectSplit struct {
	Valid                 bool
	Space                 types.Mat3
	Axis                  int
	BinSplit              int // bin index; references in bins [0,BinSplit] go left
	centMin               float32
	scale                 float32
	LeftCount, RightCount int
	leftHalfArea          float32
	rightHalfArea         float32
}

// cost returns intCost's multiplicand: nL*halfArea(L) + nR*halfArea(R).
func (s ObjectSplit) cost() float32 {
	return float32(s.LeftCount)*s.leftHalfArea + float32(s.RightCount)*s.rightHalfArea
}

// ObjectPartitionFind bins refs' centroids (projected into space) along
// each of the frame's three axes and returns the lowest-cost split. A
// split needs at least one reference on each side; if every centroid
// coincides (or the centroid extent is below minSideLength on every
// axis), Valid is false.
func ObjectPartitionFind(refs *RefList, space types.Mat3) ObjectSplit {
	centBounds := types.EmptyAABB()
	refs.ForEach(func(r Bezier1) {
		centBounds = centBounds.ExtendPoint(space.Transform(r.Center()))
	})
	if centBounds.Empty() {
		return ObjectSplit{}
	}

	size := centBounds.Size()
	best := ObjectSplit{}
	bestCost := splitInf

	for axis := 0; axis < 3; axis++ {
		if size[axis] < minSideLength {
			continue
		}
		scale := float32(objectPartitionBins) / size[axis]

		var counts [objectPartitionBins]int
		var boxes [objectPartitionBins]types.AABB
		for i := range boxes {
			boxes[i] = types.EmptyAABB()
		}

		refs.ForEach(func(r Bezier1) {
			c := space.Transform(r.Center())[axis]
			bi := binIndex(c, centBounds.Min[axis], scale, objectPartitionBins)
			counts[bi]++
			boxes[bi] = boxes[bi].Union(r.BoundsIn(space))
		})

		var leftCount [objectPartitionBins]int
		var leftBox [objectPartitionBins]types.AABB
		acc, box := 0, types.EmptyAABB()
		for i := 0; i < objectPartitionBins; i++ {
			acc += counts[i]
			box = box.Union(boxes[i])
			leftCount[i] = acc
			leftBox[i] = box
		}

		var rightCount [objectPartitionBins]int
		var rightBox [objectPartitionBins]types.AABB
		acc, box = 0, types.EmptyAABB()
		for i := objectPartitionBins - 1; i >= 0; i-- {
			acc += counts[i]
			box = box.Union(boxes[i])
			rightCount[i] = acc
			rightBox[i] = box
		}

		for split := 0; split < objectPartitionBins-1; split++ {
			lc, rc := leftCount[split], rightCount[split+1]
			if lc == 0 || rc == 0 {
				continue
			}
			cost := float32(lc)*leftBox[split].HalfArea() + float32(rc)*rightBox[split+1].HalfArea()
			if cost < bestCost {
				bestCost = cost
				best = ObjectSplit{
					Valid: true, Space: space, Axis: axis, BinSplit: split,
					centMin: centBounds.Min[axis], scale: scale,
					LeftCount: lc, RightCount: rc,
					leftHalfArea: leftBox[split].HalfArea(), rightHalfArea: rightBox[split+1].HalfArea(),
				}
			}
		}
	}

	return best
}

// Apply partitions refs according to the split, recomputing bin
// membership with the same min/scale used by Find so every reference
// lands on the side Find accounted for. Centroids exactly on a bin
// boundary land in the lower (left) bin, matching Find's binning.
func (s ObjectSplit) Apply(refs *RefList, alloc *BlockAllocator, threadIndex int) (left, right *RefList, leftInfo, rightInfo PrimInfo) {
	left, right = NewRefList(), NewRefList()
	leftInfo, rightInfo = NewPrimInfo(), NewPrimInfo()
	refs.ForEach(func(r Bezier1) {
		c := s.Space.Transform(r.Center())[s.Axis]
		bi := binIndex(c, s.centMin, s.scale, objectPartitionBins)
		if bi <= s.BinSplit {
			left.Push(alloc, threadIndex, r)
			leftInfo = leftInfo.Add(r.Bounds(), r.Center())
		} else {
			right.Push(alloc, threadIndex, r)
			rightInfo = rightInfo.Add(r.Bounds(), r.Center())
		}
	})
	return
}

// binIndex maps value to a bin; a value exactly on the boundary between
// two bins goes to the lower one.
func binIndex(value, min, scale float32, bins int) int {
	f := (value - min) * scale
	bi := int(f)
	if bi > 0 && float32(bi) == f {
		bi--
	}
	if bi < 0 {
		bi = 0
	}
	if bi >= bins {
		bi = bins - 1
	}
	return bi
}
