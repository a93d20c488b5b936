package hair

import (
	"github.com/achilleasa/hairbvh/log"
	"github.com/achilleasa/hairbvh/types"
)

var buildLogger = log.New("hair")

// Build scans scene for enabled Bézier curve geometries, presubdivides
// each curve cfg.PresubdivideDepth times, and constructs a BVH4Hair tree
// over the resulting references using pool's workers. It returns a fresh
// BVH on every call; nothing from a previous build is reused.
func Build(scene Scene, pool Pool, cfg Config, leafKind LeafKind, maxLeafBlocks int, threadCount int) *BVH {
	return buildWithLogger(scene, pool, cfg, leafKind, maxLeafBlocks, threadCount, buildLogger)
}

func buildWithLogger(scene Scene, pool Pool, cfg Config, leafKind LeafKind, maxLeafBlocks int, threadCount int, logger log.Logger) *BVH {
	bvh := NewBVH(leafKind, maxLeafBlocks)

	numCurves := 0
	numVertices := 0
	for g := 0; g < scene.NumGeometries(); g++ {
		geom := scene.GeometryAt(g)
		if geom.Type() != BezierCurveGeometry || !geom.Enabled() {
			continue
		}
		numCurves += geom.NumCurves()
		numVertices += geom.NumVertices()
	}
	numPrimitives := numCurves << uint(cfg.PresubdivideDepth)
	bvh.init(int(float64(numPrimitives) * (1 + cfg.ReplicationFactor)))
	bvh.NumVertices = numVertices

	if numCurves == 0 {
		bvh.Root = EmptyNodeRef()
		bvh.Bounds = types.EmptyAABB()
		return bvh
	}

	bld := newBuilder(cfg, bvh, threadCount, logger)

	refs := NewRefList()
	rootBounds := types.EmptyAABB()
	for g := 0; g < scene.NumGeometries(); g++ {
		geom := scene.GeometryAt(g)
		if geom.Type() != BezierCurveGeometry || !geom.Enabled() {
			continue
		}
		for curve := 0; curve < geom.NumCurves(); curve++ {
			cps := geom.CurveControlPoints(curve)
			seg := NewBezier1(cps[0], cps[1], cps[2], cps[3], uint32(g), uint32(curve))
			rootBounds = presubdivideAndAdd(refs, bld.alloc, 0, seg, cfg.PresubdivideDepth, rootBounds)
		}
	}

	pinfo := ComputePrimInfo(refs)
	bld.remainingReplications.Store(int64(cfg.ReplicationFactor * float64(numPrimitives)))
	bld.numActiveTasks.Store(1)

	rootTask := &BuildTask{
		Dest:     &bvh.Root,
		Depth:    0,
		PrimInfo: pinfo,
		Refs:     refs,
		Bounds:   ComputeHairSpaceBounds(refs),
	}
	bld.heap = append(bld.heap, rootTask)

	pool.Execute(threadCount, "hair.build", func(threadIndex, threadCount int) {
		bld.runWorker(threadIndex)
	})

	bvh.Bounds = rootBounds
	bvh.NumPrimitives = numPrimitives
	return bvh
}

// presubdivideAndAdd recursively de Casteljau-splits seg depth times,
// pushing each leaf segment into refs and folding its bounds into the
// running union so the caller doesn't need a second pass over refs just
// to compute the initial root bounds.
func presubdivideAndAdd(refs *RefList, alloc *BlockAllocator, threadIndex int, seg Bezier1, depth int, bounds types.AABB) types.AABB {
	if depth == 0 {
		refs.Push(alloc, threadIndex, seg)
		return bounds.Union(seg.Bounds())
	}
	left, right := seg.Subdivide()
	bounds = presubdivideAndAdd(refs, alloc, threadIndex, left, depth-1, bounds)
	bounds = presubdivideAndAdd(refs, alloc, threadIndex, right, depth-1, bounds)
	return bounds
}
