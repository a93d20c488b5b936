package hair

import "github.com/achilleasa/hairbvh/types"

// spatialSplitBins is the number of extent bins used along each axis.
const spatialSplitBins = 16

// clipBisectionSteps bounds the binary search used to locate the
// parameter at which a straddling curve crosses the split plane.
const clipBisectionSteps = 24

// SpatialSplit is a SAH-optimal axis-aligned split that may duplicate
// references straddling the chosen plane. Always evaluated in world
// space: a spatial split clips geometry, which only makes sense against
// the axes the scene is actually built around.
type SpatialSplit struct {
	Valid                 bool
	Axis                  int
	Plane                 float32
	LeftCount, RightCount int
	leftHalfArea          float32
	rightHalfArea         float32
}

func (s SpatialSplit) cost() float32 {
	return float32(s.LeftCount)*s.leftHalfArea + float32(s.RightCount)*s.rightHalfArea
}

// SpatialSplitFind bins reference EXTENTS (not centroids) along each
// axis. References that span more than one bin contribute an
// axis-clipped copy of their AABB to every bin they overlap, and
// separate enter/exit counters (the standard SBVH binning trick) let the
// left/right counts at each candidate plane be computed without
// double-counting a straddling reference on both sides until a plane is
// actually chosen. A plane that every reference straddles separates
// nothing and is not a candidate, so a set whose references all share the
// same extent yields Valid == false.
func SpatialSplitFind(refs *RefList, pinfo PrimInfo) SpatialSplit {
	size := pinfo.GeomBounds.Size()
	total := refs.Size()
	best := SpatialSplit{}
	bestCost := splitInf

	for axis := 0; axis < 3; axis++ {
		if size[axis] < minSideLength {
			continue
		}
		scale := float32(spatialSplitBins) / size[axis]
		origin := pinfo.GeomBounds.Min[axis]

		var enterCount, exitCount [spatialSplitBins]int
		var binBounds [spatialSplitBins]types.AABB
		for i := range binBounds {
			binBounds[i] = types.EmptyAABB()
		}

		refs.ForEach(func(r Bezier1) {
			rb := r.Bounds()
			first := binIndex(rb.Min[axis], origin, scale, spatialSplitBins)
			last := binIndex(rb.Max[axis], origin, scale, spatialSplitBins)
			if first == last {
				binBounds[first] = binBounds[first].Union(rb)
				enterCount[first]++
				exitCount[first]++
				return
			}
			for bi := first; bi <= last; bi++ {
				lo := origin + float32(bi)/scale
				hi := origin + float32(bi+1)/scale
				binBounds[bi] = binBounds[bi].Union(clipAABBAxis(rb, axis, lo, hi))
			}
			enterCount[first]++
			exitCount[last]++
		})

		var leftCount [spatialSplitBins]int
		var leftBox [spatialSplitBins]types.AABB
		acc, box := 0, types.EmptyAABB()
		for i := 0; i < spatialSplitBins; i++ {
			acc += enterCount[i]
			box = box.Union(binBounds[i])
			leftCount[i] = acc
			leftBox[i] = box
		}

		var rightCount [spatialSplitBins]int
		var rightBox [spatialSplitBins]types.AABB
		acc, box = 0, types.EmptyAABB()
		for i := spatialSplitBins - 1; i >= 0; i-- {
			acc += exitCount[i]
			box = box.Union(binBounds[i])
			rightCount[i] = acc
			rightBox[i] = box
		}

		for split := 0; split < spatialSplitBins-1; split++ {
			lc, rc := leftCount[split], rightCount[split+1]
			if lc == 0 || rc == 0 || (lc == total && rc == total) {
				continue
			}
			cost := float32(lc)*leftBox[split].HalfArea() + float32(rc)*rightBox[split+1].HalfArea()
			if cost < bestCost {
				bestCost = cost
				best = SpatialSplit{
					Valid: true, Axis: axis, Plane: origin + float32(split+1)/scale,
					LeftCount: lc, RightCount: rc,
					leftHalfArea: leftBox[split].HalfArea(), rightHalfArea: rightBox[split+1].HalfArea(),
				}
			}
		}
	}

	return best
}

// Apply partitions refs against the chosen plane. References fully on
// one side are moved as-is; straddling references are geometrically
// clipped (see clipBezierAtPlane) and a copy is pushed to each side,
// consuming replication budget. If the geometric clip can't locate a
// crossing (a numerically degenerate curve) the whole reference falls
// back to its centroid side, same as the fallback split.
func (s SpatialSplit) Apply(refs *RefList, alloc *BlockAllocator, threadIndex int) (left, right *RefList, leftInfo, rightInfo PrimInfo) {
	left, right = NewRefList(), NewRefList()
	leftInfo, rightInfo = NewPrimInfo(), NewPrimInfo()

	add := func(list *RefList, info *PrimInfo, r Bezier1) {
		list.Push(alloc, threadIndex, r)
		*info = info.Add(r.Bounds(), r.Center())
	}

	refs.ForEach(func(r Bezier1) {
		rb := r.Bounds()
		switch {
		case rb.Max[s.Axis] <= s.Plane:
			add(left, &leftInfo, r)
		case rb.Min[s.Axis] >= s.Plane:
			add(right, &rightInfo, r)
		default:
			lp, rp, ok := clipBezierAtPlane(r, s.Axis, s.Plane)
			if !ok {
				if r.Center()[s.Axis] < s.Plane {
					add(left, &leftInfo, r)
				} else {
					add(right, &rightInfo, r)
				}
				return
			}
			add(left, &leftInfo, lp)
			add(right, &rightInfo, rp)
		}
	})
	return
}

// clipAABBAxis clips a box to the [lo,hi] interval along axis, used only
// to score bins; the real per-curve clip happens in Apply via
// clipBezierAtPlane.
func clipAABBAxis(b types.AABB, axis int, lo, hi float32) types.AABB {
	out := b
	if out.Min[axis] < lo {
		out.Min[axis] = lo
	}
	if out.Max[axis] > hi {
		out.Max[axis] = hi
	}
	return out
}

// clipBezierAtPlane splits a straddling curve into a left piece and a
// right piece of the plane. It assumes the curve's axis component is
// monotonic across [T0,T1] (true for hair after a reasonable amount of
// presubdivision) and locates the crossing parameter by bisection,
// subdividing the actual control hull at that parameter so both pieces
// remain valid Bezier1 control points (radius included). If the curve's
// endpoints are already on the same side (non-monotonic edge case) ok is
// false and the caller falls back to whole-reference centroid
// assignment.
func clipBezierAtPlane(ref Bezier1, axis int, plane float32) (left, right Bezier1, ok bool) {
	p0Side := ref.P0[axis] < plane
	p3Side := ref.P3[axis] < plane
	if p0Side == p3Side {
		return Bezier1{}, Bezier1{}, false
	}

	lo, hi := float32(0), float32(1)
	for i := 0; i < clipBisectionSteps; i++ {
		mid := (lo + hi) * 0.5
		l, _ := ref.SubdivideAt(mid)
		midSide := l.P3[axis] < plane
		if midSide == p0Side {
			lo = mid
		} else {
			hi = mid
		}
	}

	tSplit := (lo + hi) * 0.5
	l, r := ref.SubdivideAt(tSplit)
	if p0Side {
		return l, r, true
	}
	return r, l, true
}
