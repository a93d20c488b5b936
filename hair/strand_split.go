package hair

import "github.com/achilleasa/hairbvh/types"

// strandSeedSampleStride takes every 4th reference as a seed candidate,
// cutting the pairwise seed comparison (still O(N^2)) by a factor of 16.
// Unlike the oriented-frame fit, whose stride grows with N so that about
// four candidates are tried, this stride is fixed.
const strandSeedSampleStride = 4

// StrandSplit partitions a reference set into two groups by curve
// direction: references aimed similarly to seed A go left, those aimed
// similarly to seed B go right. Useful when a bundle contains strands
// pointed in very different directions that no single frame could
// tightly bound together.
type StrandSplit struct {
	Valid      bool
	seedA      types.Vec3
	seedB      types.Vec3
	LeftCount  int
	RightCount int
	leftBounds types.OrientedBounds
	rightBounds types.OrientedBounds
}

func (s StrandSplit) cost() float32 {
	return float32(s.LeftCount)*s.leftBounds.Bounds.HalfArea() + float32(s.RightCount)*s.rightBounds.Bounds.HalfArea()
}

// StrandSplitFind samples a subset of references, picks the pair of
// directions that are most dissimilar (minimizing |dot|), and assigns
// every reference to whichever seed direction it agrees with more.
func StrandSplitFind(refs *RefList) StrandSplit {
	if refs.Size() < 2 {
		return StrandSplit{}
	}

	var dirs []types.Vec3
	refs.ForEachIndexed(func(i int, ref Bezier1) {
		if i%strandSeedSampleStride != 0 {
			return
		}
		chord := ref.Chord()
		if chord.Len() < minChordLength {
			return
		}
		dirs = append(dirs, chord.Normalize())
	})
	if len(dirs) < 2 {
		return StrandSplit{}
	}

	bestDissimilarity := float32(-1)
	var seedA, seedB types.Vec3
	for i := 0; i < len(dirs); i++ {
		for j := i + 1; j < len(dirs); j++ {
			d := 1 - absF(dirs[i].Dot(dirs[j]))
			if d > bestDissimilarity {
				bestDissimilarity = d
				seedA, seedB = dirs[i], dirs[j]
			}
		}
	}

	leftSpace := types.Frame(seedA).Clamp()
	rightSpace := types.Frame(seedB).Clamp()

	var leftCount, rightCount int
	leftBox, rightBox := types.EmptyAABB(), types.EmptyAABB()
	refs.ForEach(func(ref Bezier1) {
		chord := ref.Chord()
		var toLeft bool
		if chord.Len() < minChordLength {
			toLeft = true
		} else {
			dir := chord.Normalize()
			toLeft = absF(dir.Dot(seedA)) >= absF(dir.Dot(seedB))
		}
		if toLeft {
			leftCount++
			leftBox = leftBox.Union(ref.BoundsIn(leftSpace))
		} else {
			rightCount++
			rightBox = rightBox.Union(ref.BoundsIn(rightSpace))
		}
	})
	if leftCount == 0 || rightCount == 0 {
		return StrandSplit{}
	}

	return StrandSplit{
		Valid: true, seedA: seedA, seedB: seedB,
		LeftCount: leftCount, RightCount: rightCount,
		leftBounds:  types.OrientedBounds{Space: leftSpace, Bounds: leftBox},
		rightBounds: types.OrientedBounds{Space: rightSpace, Bounds: rightBox},
	}
}

// Apply re-partitions refs using the same per-reference direction test
// Find used to count each side.
func (s StrandSplit) Apply(refs *RefList, alloc *BlockAllocator, threadIndex int) (left, right *RefList, leftInfo, rightInfo PrimInfo) {
	left, right = NewRefList(), NewRefList()
	leftInfo, rightInfo = NewPrimInfo(), NewPrimInfo()
	refs.ForEach(func(ref Bezier1) {
		chord := ref.Chord()
		var toLeft bool
		if chord.Len() < minChordLength {
			toLeft = true
		} else {
			dir := chord.Normalize()
			toLeft = absF(dir.Dot(s.seedA)) >= absF(dir.Dot(s.seedB))
		}
		if toLeft {
			left.Push(alloc, threadIndex, ref)
			leftInfo = leftInfo.Add(ref.Bounds(), ref.Center())
		} else {
			right.Push(alloc, threadIndex, ref)
			rightInfo = rightInfo.Add(ref.Bounds(), ref.Center())
		}
	})
	return
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
