package hair

// minSideLength is the per-axis extent below which a node's bounds are
// considered too thin to bother evaluating split candidates along that
// axis. Bézier control hulls for perfectly straight hair are degenerate
// on two axes, so both the object and spatial binners guard on this
// before binning.
const minSideLength float32 = 1e-4
