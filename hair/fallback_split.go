package hair

import (
	"sort"
)

// FallbackSplitApply performs a deterministic median split on the
// dominant axis of the set's centroid bounds. The dispatcher uses it when
// no enabled SAH-based split beats the leaf cost, which includes the case
// where every one reported splitInf (e.g. every reference coincides); it
// never consults SAH and never duplicates.
func FallbackSplitApply(refs *RefList, pinfo PrimInfo, alloc *BlockAllocator, threadIndex int) (left, right *RefList, leftInfo, rightInfo PrimInfo) {
	axis := pinfo.CentBounds.MajorAxis()

	type entry struct {
		ref    Bezier1
		center float32
	}
	entries := make([]entry, 0, refs.Size())
	refs.ForEach(func(r Bezier1) {
		entries = append(entries, entry{ref: r, center: r.Center()[axis]})
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].center < entries[j].center
	})

	mid := len(entries) / 2
	if mid == 0 {
		mid = 1
	}
	if mid == len(entries) {
		mid = len(entries) - 1
	}

	left, right = NewRefList(), NewRefList()
	leftInfo, rightInfo = NewPrimInfo(), NewPrimInfo()
	for i, e := range entries {
		if i < mid {
			left.Push(alloc, threadIndex, e.ref)
			leftInfo = leftInfo.Add(e.ref.Bounds(), e.ref.Center())
		} else {
			right.Push(alloc, threadIndex, e.ref)
			rightInfo = rightInfo.Add(e.ref.Bounds(), e.ref.Center())
		}
	}
	return
}
