// Package curvescene is a minimal in-memory implementation of the
// hair.Scene/hair.Geometry interfaces: a flat list of cubic Bézier
// curves, each a run of 4 control vertices, with no sharing of control
// points between consecutive curves.
package curvescene

import (
	"github.com/google/uuid"

	"github.com/achilleasa/hairbvh/hair"
	"github.com/achilleasa/hairbvh/types"
)

// CurveGeometry is one Bézier curve set: a flat run of control vertices,
// 4 per curve. ID is a diagnostic identifier preserved across
// Save/Load; neither the builder nor the stats dump reads it.
type CurveGeometry struct {
	ID        uuid.UUID
	Vertices  []hair.CurveVertex
	IsEnabled bool
}

// NewCurveGeometry wraps vertices (a multiple of 4 in length) as a
// Bézier curve geometry with a freshly generated diagnostic ID.
func NewCurveGeometry(vertices []hair.CurveVertex) *CurveGeometry {
	return &CurveGeometry{ID: uuid.New(), Vertices: vertices, IsEnabled: true}
}

func (g *CurveGeometry) Type() hair.GeometryType { return hair.BezierCurveGeometry }
func (g *CurveGeometry) Enabled() bool           { return g.IsEnabled }
func (g *CurveGeometry) NumVertices() int        { return len(g.Vertices) }
func (g *CurveGeometry) NumCurves() int          { return len(g.Vertices) / 4 }

// CurveControlPoints returns the 4 control vertices of the curve'th
// segment. It panics if curve is out of range, matching the package's
// policy of treating scene-data corruption as a programmer error rather
// than a recoverable one.
func (g *CurveGeometry) CurveControlPoints(curve int) [4]hair.CurveVertex {
	base := curve * 4
	return [4]hair.CurveVertex{g.Vertices[base], g.Vertices[base+1], g.Vertices[base+2], g.Vertices[base+3]}
}

// Scene is a flat collection of curve geometries.
type Scene struct {
	Geometries []*CurveGeometry
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends a geometry and returns its index (its geomID, as seen by
// Bezier1 references built from it).
func (s *Scene) Add(g *CurveGeometry) int {
	s.Geometries = append(s.Geometries, g)
	return len(s.Geometries) - 1
}

func (s *Scene) NumGeometries() int { return len(s.Geometries) }

func (s *Scene) GeometryAt(index int) hair.Geometry { return s.Geometries[index] }

// StraightLine builds a single CurveGeometry along a straight segment
// from a to b with constant radius, split into n consecutive cubic
// Bézier curves whose control points subdivide the segment evenly. It's
// a convenience constructor for tests and CLI demos, not used by the
// builder itself.
func StraightLine(a, b types.Vec3, radius float32, n int) *CurveGeometry {
	dir := b.Sub(a)
	verts := make([]hair.CurveVertex, 0, n*4)
	for i := 0; i < n; i++ {
		t0 := float32(i) / float32(n)
		t1 := float32(i+1) / float32(n)
		p0 := a.Add(dir.Mul(t0))
		p3 := a.Add(dir.Mul(t1))
		p1 := p0.Add(p3.Sub(p0).Mul(1.0 / 3.0))
		p2 := p0.Add(p3.Sub(p0).Mul(2.0 / 3.0))
		verts = append(verts,
			hair.CurveVertex{Position: p0, Radius: radius},
			hair.CurveVertex{Position: p1, Radius: radius},
			hair.CurveVertex{Position: p2, Radius: radius},
			hair.CurveVertex{Position: p3, Radius: radius},
		)
	}
	return NewCurveGeometry(verts)
}
