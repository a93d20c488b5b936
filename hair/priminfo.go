package hair

import "github.com/achilleasa/hairbvh/types"

// PrimInfo aggregates the geometric and centroid bounds of a reference
// set along with its count. It is associative and commutative, so
// subtrees can be merged without re-scanning their contents.
type PrimInfo struct {
	Count      int
	GeomBounds types.AABB
	CentBounds types.AABB
}

// NewPrimInfo returns the zero-value (empty) aggregate.
func NewPrimInfo() PrimInfo {
	return PrimInfo{GeomBounds: types.EmptyAABB(), CentBounds: types.EmptyAABB()}
}

// Add folds a single reference's bounds and centroid into the aggregate.
func (p PrimInfo) Add(bounds types.AABB, center types.Vec3) PrimInfo {
	p.Count++
	p.GeomBounds = p.GeomBounds.Union(bounds)
	p.CentBounds = p.CentBounds.ExtendPoint(center)
	return p
}

// Merge combines two aggregates; the result is identical regardless of
// which order subtrees were merged in.
func (p PrimInfo) Merge(other PrimInfo) PrimInfo {
	return PrimInfo{
		Count:      p.Count + other.Count,
		GeomBounds: p.GeomBounds.Union(other.GeomBounds),
		CentBounds: p.CentBounds.Union(other.CentBounds),
	}
}

// Size is an alias for Count, matching the builder's usage of
// "pinfo.size()" as the subproblem's reference count.
func (p PrimInfo) Size() int { return p.Count }

// ComputePrimInfo scans a reference list and accumulates its PrimInfo.
func ComputePrimInfo(refs *RefList) PrimInfo {
	info := NewPrimInfo()
	refs.ForEach(func(r Bezier1) {
		info = info.Add(r.Bounds(), r.Center())
	})
	return info
}
