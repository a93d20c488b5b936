package hair

import "github.com/achilleasa/hairbvh/types"

// CurveVertex is a single control point of a source curve: a position
// packed with the strand radius at that point.
type CurveVertex struct {
	Position types.Vec3
	Radius   float32
}

func (v CurveVertex) packed() types.Vec4 {
	return types.Vec4{v.Position[0], v.Position[1], v.Position[2], v.Radius}
}

// Bezier1 is a reference to a cubic Bezier curve segment: four control
// points (xyz + radius packed per point) covering the parameter interval
// [T0,T1] of an original source curve identified by (GeomID, PrimID).
//
// The control points always describe the curve restricted to [T0,T1], so
// Bounds() is tight with respect to the true curve, modulo radius padding.
type Bezier1 struct {
	P0, P1, P2, P3 types.Vec4
	T0, T1         float32
	GeomID, PrimID uint32
}

// NewBezier1 builds a reference spanning the whole source curve ([0,1]).
func NewBezier1(p0, p1, p2, p3 CurveVertex, geomID, primID uint32) Bezier1 {
	return Bezier1{
		P0: p0.packed(), P1: p1.packed(), P2: p2.packed(), P3: p3.packed(),
		T0: 0, T1: 1,
		GeomID: geomID, PrimID: primID,
	}
}

// Bounds returns the world-space AABB enclosing the control polygon,
// padded by the maximum control-point radius.
func (b Bezier1) Bounds() types.AABB {
	return hullBounds(b, types.Identity3())
}

// BoundsIn returns the AABB enclosing the control polygon, expressed in
// the given orthonormal local frame and padded by the maximum radius.
// Radius padding is unaffected by the rotation since the frame is
// orthonormal (it preserves lengths).
func (b Bezier1) BoundsIn(space types.Mat3) types.AABB {
	return hullBounds(b, space)
}

func hullBounds(b Bezier1, space types.Mat3) types.AABB {
	box := types.EmptyAABB()
	maxR := float32(0)
	for _, cp := range [4]types.Vec4{b.P0, b.P1, b.P2, b.P3} {
		p := space.Transform(cp.Vec3())
		box = box.ExtendPoint(p)
		if cp[3] > maxR {
			maxR = cp[3]
		}
	}
	pad := types.Vec3{maxR, maxR, maxR}
	return types.AABB{Min: box.Min.Sub(pad), Max: box.Max.Add(pad)}
}

// Center returns the centroid of Bounds().
func (b Bezier1) Center() types.Vec3 {
	return b.Bounds().Center()
}

// Chord returns the (un-normalized) vector from the first to the last
// control point, i.e. the curve's overall direction across [T0,T1].
func (b Bezier1) Chord() types.Vec3 {
	return b.P3.Vec3().Sub(b.P0.Vec3())
}

// Subdivide performs a de Casteljau split into two halves, each covering
// half of the original parameter interval.
func (b Bezier1) Subdivide() (Bezier1, Bezier1) {
	return b.SubdivideAt(0.5)
}

// SubdivideAt splits the curve at local parameter t in [0,1], returning
// the segment covering [T0, T0+t*(T1-T0)] and the one covering
// [T0+t*(T1-T0), T1]. Both children are themselves valid Bezier1 control
// hulls (radius interpolates linearly along with position).
func (b Bezier1) SubdivideAt(t float32) (Bezier1, Bezier1) {
	p01 := lerp4(b.P0, b.P1, t)
	p12 := lerp4(b.P1, b.P2, t)
	p23 := lerp4(b.P2, b.P3, t)
	p012 := lerp4(p01, p12, t)
	p123 := lerp4(p12, p23, t)
	p0123 := lerp4(p012, p123, t)

	tmid := b.T0 + t*(b.T1-b.T0)
	left := Bezier1{P0: b.P0, P1: p01, P2: p012, P3: p0123, T0: b.T0, T1: tmid, GeomID: b.GeomID, PrimID: b.PrimID}
	right := Bezier1{P0: p0123, P1: p123, P2: p23, P3: b.P3, T0: tmid, T1: b.T1, GeomID: b.GeomID, PrimID: b.PrimID}
	return left, right
}

func lerp4(a, b types.Vec4, t float32) types.Vec4 {
	return types.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}
