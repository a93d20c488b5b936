package hair

// GeometryType discriminates the kinds of geometry a Scene can hold. The
// builder only ever looks at BezierCurveGeometry; everything else is
// skipped during the initial reference list construction.
type GeometryType uint32

const (
	BezierCurveGeometry GeometryType = iota
	OtherGeometry
)

// Geometry is the read-only interface the builder needs from a single
// scene entry. The scene store itself (how curves are stored, loaded,
// or edited) is an external collaborator; this is only the slice of it
// the builder reads.
type Geometry interface {
	Type() GeometryType
	Enabled() bool
	NumVertices() int
	NumCurves() int
	// CurveControlPoints returns the four control vertices of the
	// curve'th cubic Bézier segment.
	CurveControlPoints(curve int) [4]CurveVertex
}

// Scene is the read-only collection of geometries the builder scans to
// produce its initial reference list.
type Scene interface {
	NumGeometries() int
	GeometryAt(index int) Geometry
}

// Pool is the worker-thread pool the parallel build engine runs on. It
// is an external collaborator (the real thread pool lives outside this
// package); Execute must invoke fn once per worker with a distinct
// threadIndex in [0,threadCount) and return only once every worker has
// returned.
//
// The original interface also passed fn a (taskIndex, taskCount, event)
// tuple for finer-grained sub-task scheduling; the hair builder doesn't
// need that level of detail since its own task heap already handles
// work distribution, so this Go port narrows the callback to
// (threadIndex, threadCount).
type Pool interface {
	Execute(threadCount int, label string, fn func(threadIndex, threadCount int))
}
