package types

import "math"

// AABB is an axis-aligned bounding box. EmptyAABB (Min > Max on every
// axis) is the identity element for Union/ExtendPoint: unioning anything
// with it yields the other operand unchanged.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns a box positioned so that the first Union/ExtendPoint
// call replaces it outright.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// ExtendPoint grows the box so it also encloses p.
func (b AABB) ExtendPoint(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Union returns the smallest box enclosing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: MinVec3(b.Min, other.Min), Max: MaxVec3(b.Max, other.Max)}
}

// Empty reports whether the box has never been extended.
func (b AABB) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Center returns the box's centroid.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the per-axis extent of the box.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfArea returns half the surface area of the box (the SAH cost model
// only ever uses half-areas, so callers never need the factor of two back).
// An empty box has zero half-area.
func (b AABB) HalfArea() float32 {
	if b.Empty() {
		return 0
	}
	s := b.Size()
	return s[0]*s[1] + s[1]*s[2] + s[0]*s[2]
}

// MajorAxis returns the axis (0=X, 1=Y, 2=Z) along which the box is widest.
func (b AABB) MajorAxis() int {
	s := b.Size()
	axis := 0
	if s[1] > s[axis] {
		axis = 1
	}
	if s[2] > s[axis] {
		axis = 2
	}
	return axis
}

// OrientedBounds pairs an orthonormal local frame with an AABB expressed
// in that frame's coordinates. World-space (axis-aligned) bounds are the
// special case where Space is the identity.
type OrientedBounds struct {
	Space  Mat3
	Bounds AABB
}

// WorldBounds wraps a world-space box in the identity frame.
func WorldBounds(b AABB) OrientedBounds {
	return OrientedBounds{Space: Identity3(), Bounds: b}
}
