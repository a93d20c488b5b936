package hair

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Stats summarizes the shape of a built tree: node/leaf counts split by
// kind, depth, and the total number of primitives stored across leaves
// (compare with BVH.NumPrimitives to see spatial-split duplication).
type Stats struct {
	NumAlignedNodes   int
	NumUnalignedNodes int
	NumLeaves         int
	MaxDepth          int
	NumLeafPrimitives int
}

// ComputeStats walks the whole tree and accumulates Stats. It is O(tree
// size) and meant to run once after a build completes, not during it.
func ComputeStats(bvh *BVH) Stats {
	var s Stats
	walkStats(bvh.Root, 0, &s)
	return s
}

func walkStats(ref NodeRef, depth int, s *Stats) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	switch ref.Kind {
	case EmptyNode:
	case LeafNode:
		s.NumLeaves++
		s.NumLeafPrimitives += ref.LeafCount()
	case AlignedNodeKind:
		s.NumAlignedNodes++
		for _, c := range ref.Aligned.Children {
			walkStats(c, depth+1, s)
		}
	case UnalignedNodeKind:
		s.NumUnalignedNodes++
		for _, c := range ref.Unaligned.Children {
			walkStats(c, depth+1, s)
		}
	}
}

// Dump renders bvh's stats as a table, in the same style the scene
// package uses for its asset breakdown.
func Dump(bvh *BVH) string {
	s := ComputeStats(bvh)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Primitives (input)", strconv.Itoa(bvh.NumPrimitives)})
	table.Append([]string{"Primitives (in leaves)", strconv.Itoa(s.NumLeafPrimitives)})
	table.Append([]string{"Aligned nodes", strconv.Itoa(s.NumAlignedNodes)})
	table.Append([]string{"Unaligned nodes", strconv.Itoa(s.NumUnalignedNodes)})
	table.Append([]string{"Leaves", strconv.Itoa(s.NumLeaves)})
	table.Append([]string{"Max depth", strconv.Itoa(s.MaxDepth)})
	table.Render()
	return buf.String()
}
