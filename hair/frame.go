package hair

import (
	"math"

	"github.com/achilleasa/hairbvh/types"
)

// minChordLength is the chord length below which a candidate reference is
// considered too degenerate to define a stable direction.
const minChordLength = 1e-9

// ComputeHairSpaceBounds discovers an orthonormal frame that minimizes
// the sum of per-reference half-areas in that frame, a cheap proxy for
// the union surface area. Hair strands are long and thin, so a frame
// aligned with the strand direction yields a flat, small box.
//
// Candidates are sampled roughly one in every k references (k chosen so
// ~4 candidates are tried regardless of N) rather than scanning every
// reference's direction, keeping the fit at O(kN) with a small k.
func ComputeHairSpaceBounds(refs *RefList) types.OrientedBounds {
	n := refs.Size()
	if n == 0 {
		return types.OrientedBounds{Space: types.Identity3(), Bounds: types.EmptyAABB()}
	}

	stride := (n + 3) / 4
	if stride < 1 {
		stride = 1
	}

	bestArea := float32(math.MaxFloat32)
	bestSpace := types.Identity3()
	bestBounds := types.EmptyAABB()
	found := false

	refs.ForEachIndexed(func(i int, ref Bezier1) {
		if i%stride != 0 {
			return
		}
		chord := ref.Chord()
		if chord.Len() < minChordLength {
			return
		}
		axis := chord.Normalize()
		space := types.Frame(axis).Clamp()

		bounds := types.EmptyAABB()
		var area float32
		refs.ForEach(func(other Bezier1) {
			cb := other.BoundsIn(space)
			area += cb.HalfArea()
			bounds = bounds.Union(cb)
		})

		if area <= bestArea {
			bestArea = area
			bestSpace = space
			bestBounds = bounds
			found = true
		}
	})

	if !found {
		bestSpace = types.Identity3()
		bestBounds = types.EmptyAABB()
		refs.ForEach(func(ref Bezier1) {
			bestBounds = bestBounds.Union(ref.Bounds())
		})
	}

	return types.OrientedBounds{Space: bestSpace, Bounds: bestBounds}
}
