package hair

import (
	"fmt"
	"math"

	"github.com/achilleasa/hairbvh/types"
)

// splitInf marks a split candidate that isn't applicable (no legal
// partition was found). math.MaxFloat32 is used instead of true infinity
// so arithmetic on the value (e.g. min()) stays well defined.
const splitInf = float32(math.MaxFloat32)

// Cost model constants. intCost scales leaf/child contents, travCost
// scales the parent traversal step; unaligned traversal is pricier than
// aligned since the ray has to be transformed into the child's frame.
const (
	intCost           float32 = 1.0
	travCostAligned   float32 = 1.0
	travCostUnaligned float32 = 1.3
)

// splitResult carries the outcome of the dispatcher's decision for one
// node: the partitioned children and whether the winning split requires
// an unaligned (oriented or strand) node encoding.
type splitResult struct {
	left, right         *RefList
	leftInfo, rightInfo PrimInfo
	unaligned           bool
}

// dispatch computes the SAH of every split kind enabled in cfg and
// applies the winner. Ties are broken in a fixed priority order —
// fallback < aligned-object < aligned-spatial < unaligned-object <
// strand — by checking candidates in that order and keeping the first
// whose SAH equals the minimum found. The fallback split always applies
// to a non-empty reference set, so the default case below can only be
// reached by a corrupted reference list or PrimInfo, which is an
// invariant violation rather than a recoverable condition.
func (bld *builder) dispatch(threadIndex int, refs *RefList, bounds types.OrientedBounds, pinfo PrimInfo) splitResult {
	leafSAH := intCost * float32(pinfo.Size()) * bounds.Bounds.HalfArea()
	bestSAH := leafSAH

	var alignedObjectSplit ObjectSplit
	alignedObjectSAH := splitInf
	if bld.cfg.EnableAlignedObjectSplits {
		alignedObjectSplit = ObjectPartitionFind(refs, types.Identity3())
		if alignedObjectSplit.Valid {
			alignedObjectSAH = travCostAligned*bounds.Bounds.HalfArea() + intCost*alignedObjectSplit.cost()
			bestSAH = minF(bestSAH, alignedObjectSAH)
		}
	}

	var alignedSpatialSplit SpatialSplit
	alignedSpatialSAH := splitInf
	enableSpatial := bld.remainingReplications.Load() > 0
	if enableSpatial && bld.cfg.EnableAlignedSpatialSplits {
		alignedSpatialSplit = SpatialSplitFind(refs, pinfo)
		if alignedSpatialSplit.Valid {
			alignedSpatialSAH = travCostAligned*bounds.Bounds.HalfArea() + intCost*alignedSpatialSplit.cost()
			bestSAH = minF(bestSAH, alignedSpatialSAH)
		}
	}

	var unalignedObjectSplit ObjectSplit
	unalignedObjectSAH := splitInf
	if bld.cfg.EnableUnalignedObjectSplits {
		unalignedObjectSplit = ObjectPartitionFind(refs, bounds.Space)
		if unalignedObjectSplit.Valid {
			unalignedObjectSAH = travCostUnaligned*bounds.Bounds.HalfArea() + intCost*unalignedObjectSplit.cost()
			bestSAH = minF(bestSAH, unalignedObjectSAH)
		}
	}

	var strandSplit StrandSplit
	strandSAH := splitInf
	if bld.cfg.EnableStrandSplits {
		strandSplit = StrandSplitFind(refs)
		if strandSplit.Valid {
			strandSAH = travCostUnaligned*bounds.Bounds.HalfArea() + intCost*strandSplit.cost()
			bestSAH = minF(bestSAH, strandSAH)
		}
	}

	switch {
	case bestSAH == leafSAH:
		// No enabled split beat the leaf cost: fall back to a
		// deterministic median split so the node still subdivides
		// (processTask only calls dispatch when it has already
		// decided to keep subdividing this child).
		l, r, li, ri := FallbackSplitApply(refs, pinfo, bld.alloc, threadIndex)
		return splitResult{left: l, right: r, leftInfo: li, rightInfo: ri}

	case bestSAH == alignedObjectSAH:
		l, r, li, ri := alignedObjectSplit.Apply(refs, bld.alloc, threadIndex)
		return splitResult{left: l, right: r, leftInfo: li, rightInfo: ri}

	case bestSAH == alignedSpatialSAH:
		l, r, li, ri := alignedSpatialSplit.Apply(refs, bld.alloc, threadIndex)
		bld.remainingReplications.Add(int64(pinfo.Size() - li.Size() - ri.Size()))
		return splitResult{left: l, right: r, leftInfo: li, rightInfo: ri}

	case bestSAH == unalignedObjectSAH:
		l, r, li, ri := unalignedObjectSplit.Apply(refs, bld.alloc, threadIndex)
		return splitResult{left: l, right: r, leftInfo: li, rightInfo: ri, unaligned: true}

	case bestSAH == strandSAH:
		l, r, li, ri := strandSplit.Apply(refs, bld.alloc, threadIndex)
		return splitResult{left: l, right: r, leftInfo: li, rightInfo: ri, unaligned: true}

	default:
		panic(fmt.Errorf("%w: %d refs", ErrNoApplicableSplit, pinfo.Size()))
	}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
