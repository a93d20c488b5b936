package hair

import (
	"testing"

	"github.com/achilleasa/hairbvh/types"
)

// fakeGeometry is a minimal in-memory Geometry for driving Build without a
// real scene store.
type fakeGeometry struct {
	kind    GeometryType
	enabled bool
	curves  [][4]CurveVertex
}

func (g *fakeGeometry) Type() GeometryType   { return g.kind }
func (g *fakeGeometry) Enabled() bool        { return g.enabled }
func (g *fakeGeometry) NumVertices() int     { return len(g.curves) * 4 }
func (g *fakeGeometry) NumCurves() int       { return len(g.curves) }
func (g *fakeGeometry) CurveControlPoints(curve int) [4]CurveVertex {
	return g.curves[curve]
}

type fakeScene struct {
	geoms []Geometry
}

func (s *fakeScene) NumGeometries() int          { return len(s.geoms) }
func (s *fakeScene) GeometryAt(i int) Geometry   { return s.geoms[i] }

// sequentialPool runs every worker inline on the calling goroutine, one
// after another; each call still gets a distinct threadIndex for the
// allocator, but execution is deterministic for assertions.
type sequentialPool struct{}

func (sequentialPool) Execute(threadCount int, label string, fn func(threadIndex, threadCount int)) {
	if threadCount <= 0 {
		threadCount = 1
	}
	for i := 0; i < threadCount; i++ {
		fn(i, threadCount)
	}
}

func straightCurve(x0, x1 float32) [4]CurveVertex {
	return [4]CurveVertex{
		{Position: types.Vec3{x0, 0, 0}, Radius: 0.05},
		{Position: types.Vec3{x0 + (x1-x0)/3, 0, 0}, Radius: 0.05},
		{Position: types.Vec3{x0 + 2*(x1-x0)/3, 0, 0}, Radius: 0.05},
		{Position: types.Vec3{x1, 0, 0}, Radius: 0.05},
	}
}

func verticalCurve(x, y0, y1 float32) [4]CurveVertex {
	return [4]CurveVertex{
		{Position: types.Vec3{x, y0, 0}, Radius: 0.05},
		{Position: types.Vec3{x, y0 + (y1-y0)/3, 0}, Radius: 0.05},
		{Position: types.Vec3{x, y0 + 2*(y1-y0)/3, 0}, Radius: 0.05},
		{Position: types.Vec3{x, y1, 0}, Radius: 0.05},
	}
}

func TestBuildEmptySceneProducesEmptyRoot(t *testing.T) {
	sc := &fakeScene{}
	bvh := Build(sc, sequentialPool{}, DefaultConfig(), InlineLeaf, 16, 2)

	if !bvh.Root.IsEmpty() {
		t.Fatal("expected an empty root for a scene with no geometries")
	}
	if !bvh.Bounds.Empty() {
		t.Fatal("expected empty bounds for a scene with no geometries")
	}
	if bvh.NumPrimitives != 0 {
		t.Fatalf("NumPrimitives = %d, want 0", bvh.NumPrimitives)
	}
}

func TestBuildSingleCurveProducesSingleLeaf(t *testing.T) {
	sc := &fakeScene{geoms: []Geometry{
		&fakeGeometry{kind: BezierCurveGeometry, enabled: true, curves: [][4]CurveVertex{straightCurve(0, 1)}},
	}}
	bvh := Build(sc, sequentialPool{}, DefaultConfig(), InlineLeaf, 16, 1)

	if bvh.Root.IsEmpty() {
		t.Fatal("expected a non-empty root for a single curve")
	}
	if bvh.Root.Kind != LeafNode {
		t.Fatalf("expected a single curve to collapse straight to a leaf, got kind %v", bvh.Root.Kind)
	}
	if got := bvh.Root.LeafCount(); got != 1 {
		t.Fatalf("leaf holds %d primitives, want 1", got)
	}
	if bvh.NumPrimitives != 1 {
		t.Fatalf("NumPrimitives = %d, want 1", bvh.NumPrimitives)
	}
}

func TestBuildDisabledGeometryIsIgnored(t *testing.T) {
	sc := &fakeScene{geoms: []Geometry{
		&fakeGeometry{kind: BezierCurveGeometry, enabled: false, curves: [][4]CurveVertex{straightCurve(0, 1)}},
	}}
	bvh := Build(sc, sequentialPool{}, DefaultConfig(), InlineLeaf, 16, 1)
	if !bvh.Root.IsEmpty() {
		t.Fatal("a disabled geometry must not contribute any primitives")
	}
}

func TestBuildManyCurvesStaysWithinSceneBounds(t *testing.T) {
	var curves [][4]CurveVertex
	for i := 0; i < 200; i++ {
		x := float32(i)
		curves = append(curves, straightCurve(x, x+0.8))
	}
	sc := &fakeScene{geoms: []Geometry{
		&fakeGeometry{kind: BezierCurveGeometry, enabled: true, curves: curves},
	}}
	cfg, err := ParseMode([]string{"aO", "aSP"}, 0.2)
	if err != nil {
		t.Fatalf("unexpected ParseMode error: %v", err)
	}
	bvh := Build(sc, sequentialPool{}, cfg, InlineLeaf, 16, 4)

	if bvh.NumPrimitives != 200 {
		t.Fatalf("NumPrimitives = %d, want 200", bvh.NumPrimitives)
	}
	stats := ComputeStats(bvh)
	if stats.NumLeafPrimitives < 200 {
		t.Fatalf("expected at least every input primitive retained across leaves (got %d), spatial splits may duplicate but never drop", stats.NumLeafPrimitives)
	}
	if stats.NumLeaves == 0 {
		t.Fatal("expected at least one leaf")
	}

	// Every leaf's primitives should fall within the overall scene bounds
	// along X, the axis the curves are laid out on.
	walkBoundsCheck(t, bvh, bvh.Root, bvh.Bounds)
}

func walkBoundsCheck(t *testing.T, bvh *BVH, ref NodeRef, sceneBounds types.AABB) {
	t.Helper()
	switch ref.Kind {
	case AlignedNodeKind:
		for _, c := range ref.Aligned.Children {
			if c.IsEmpty() {
				continue
			}
			walkBoundsCheck(t, bvh, c, sceneBounds)
		}
	case UnalignedNodeKind:
		for _, c := range ref.Unaligned.Children {
			if c.IsEmpty() {
				continue
			}
			walkBoundsCheck(t, bvh, c, sceneBounds)
		}
	case LeafNode:
		for _, p := range ref.InlineLeaf {
			b := p.Bounds()
			if b.Min[0] < sceneBounds.Min[0]-1e-3 || b.Max[0] > sceneBounds.Max[0]+1e-3 {
				t.Fatalf("leaf primitive bounds %v escape scene bounds %v", b, sceneBounds)
			}
		}
	}
}

func TestBuildPerpendicularStrandsWithStrandSplitModeEnabled(t *testing.T) {
	var curves [][4]CurveVertex
	for i := 0; i < 64; i++ {
		curves = append(curves, straightCurve(float32(i), float32(i)+0.8))
	}
	for i := 0; i < 64; i++ {
		curves = append(curves, verticalCurve(float32(i), 0, 0.8))
	}
	sc := &fakeScene{geoms: []Geometry{
		&fakeGeometry{kind: BezierCurveGeometry, enabled: true, curves: curves},
	}}
	cfg, err := ParseMode([]string{"uST", "aO"}, 0)
	if err != nil {
		t.Fatalf("unexpected ParseMode error: %v", err)
	}
	bvh := Build(sc, sequentialPool{}, cfg, InlineLeaf, 16, 2)

	if bvh.NumPrimitives != 128 {
		t.Fatalf("NumPrimitives = %d, want 128", bvh.NumPrimitives)
	}
	stats := ComputeStats(bvh)
	if stats.NumLeafPrimitives != 128 {
		t.Fatalf("expected no duplication with spatial splits disabled, got %d leaf primitives for 128 inputs", stats.NumLeafPrimitives)
	}
}

func TestEmitLeafTruncatesOverflowToMaxLeafBlocks(t *testing.T) {
	bvh := NewBVH(InlineLeaf, 4)
	bvh.init(10)
	bld := newBuilder(DefaultConfig(), bvh, 1, buildLogger)

	refs := NewRefList()
	for i := 0; i < 10; i++ {
		refs.Push(bld.alloc, 0, makeRef(float32(i), 0, uint32(i)))
	}

	ref := bld.emitLeaf(0, refs)
	if ref.Kind != LeafNode {
		t.Fatalf("expected a leaf, got kind %v", ref.Kind)
	}
	if got := ref.LeafCount(); got != 4 {
		t.Fatalf("leaf holds %d primitives after truncation, want 4 (MaxLeafBlocks)", got)
	}
}

func TestBuildIndexedLeafKindStoresNoInlineGeometry(t *testing.T) {
	sc := &fakeScene{geoms: []Geometry{
		&fakeGeometry{kind: BezierCurveGeometry, enabled: true, curves: [][4]CurveVertex{straightCurve(0, 1)}},
	}}
	bvh := Build(sc, sequentialPool{}, DefaultConfig(), IndexedLeaf, 16, 1)

	if bvh.Root.Kind != LeafNode {
		t.Fatalf("expected a leaf root, got kind %v", bvh.Root.Kind)
	}
	if bvh.Root.InlineLeaf != nil {
		t.Fatal("an indexed-leaf build must not populate InlineLeaf")
	}
	if len(bvh.Root.IndexedLeaf) != 1 {
		t.Fatalf("IndexedLeaf holds %d entries, want 1", len(bvh.Root.IndexedLeaf))
	}
}
