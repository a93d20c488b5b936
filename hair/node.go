package hair

import "github.com/achilleasa/hairbvh/types"

// NodeKind discriminates what a NodeRef points at.
type NodeKind uint8

const (
	EmptyNode NodeKind = iota
	LeafNode
	AlignedNodeKind
	UnalignedNodeKind
)

// LeafKind selects the per-primitive layout leaves are stored in. The
// original source picked between these via a runtime type-identity
// comparison against the BVH's configured primitive type; here it's an
// explicit enum carried on the BVH and switched on once per leaf.
type LeafKind uint8

const (
	// InlineLeaf stores full Bezier1 control hulls directly in the leaf,
	// so traversal never has to touch the scene again.
	InlineLeaf LeafKind = iota
	// IndexedLeaf stores only (geomID, primID, t0, t1); traversal must
	// re-fetch control points from the scene, trading leaf size for an
	// extra indirection.
	IndexedLeaf
)

// IndexedBezier1 is the compact leaf-primitive layout used when LeafKind
// is IndexedLeaf.
type IndexedBezier1 struct {
	GeomID, PrimID uint32
	T0, T1         float32
}

// AlignedNode is an interior node whose four child bounds are
// world-space AABBs.
type AlignedNode struct {
	Bounds   [4]types.AABB
	Children [4]NodeRef
}

// UnalignedNode is an interior node whose four child bounds are each
// expressed in their own per-child orthonormal frame.
type UnalignedNode struct {
	Bounds   [4]types.OrientedBounds
	Children [4]NodeRef
}

// NodeRef is the encoded reference a parent stores for one child: an
// empty sentinel, a leaf (carrying its primitives inline), or a pointer
// to an aligned or unaligned interior node. This replaces the source's
// pointer-tagging scheme (low bits of a node pointer discriminate
// leaf/aligned/unaligned, with the leaf's primitive count packed
// alongside it) with an explicit tagged struct, which is the idiomatic
// Go rendering of the same discriminated union.
type NodeRef struct {
	Kind        NodeKind
	Aligned     *AlignedNode
	Unaligned   *UnalignedNode
	InlineLeaf  []Bezier1
	IndexedLeaf []IndexedBezier1
}

// EmptyNodeRef is the sentinel stored in unused child slots.
func EmptyNodeRef() NodeRef { return NodeRef{Kind: EmptyNode} }

// IsEmpty reports whether the ref is the empty sentinel.
func (r NodeRef) IsEmpty() bool { return r.Kind == EmptyNode }

func encodeAlignedNode(n *AlignedNode) NodeRef {
	return NodeRef{Kind: AlignedNodeKind, Aligned: n}
}

func encodeUnalignedNode(n *UnalignedNode) NodeRef {
	return NodeRef{Kind: UnalignedNodeKind, Unaligned: n}
}

func encodeInlineLeaf(prims []Bezier1) NodeRef {
	return NodeRef{Kind: LeafNode, InlineLeaf: prims}
}

func encodeIndexedLeaf(prims []IndexedBezier1) NodeRef {
	return NodeRef{Kind: LeafNode, IndexedLeaf: prims}
}

// LeafCount returns the number of primitives carried by a leaf NodeRef
// (0 for anything else).
func (r NodeRef) LeafCount() int {
	switch r.Kind {
	case LeafNode:
		if r.InlineLeaf != nil {
			return len(r.InlineLeaf)
		}
		return len(r.IndexedLeaf)
	default:
		return 0
	}
}

// BVH is the tree the builder writes to. Node and leaf memory is owned
// by the BVH; reference-list blocks are a separate, shorter-lived
// allocation (see BlockAllocator) freed back as leaves are emitted.
//
// allocAlignedNode/allocUnalignedNode/allocInlinePrimitiveBlock/
// allocIndexedPrimitiveBlock take a threadIndex parameter for interface fidelity with the source's
// per-thread arena allocators, but Go's runtime allocator is already
// safe for concurrent use, so — unlike the reference-block allocator —
// there is no hand-rolled free list behind them.
type BVH struct {
	Root          NodeRef
	Bounds        types.AABB
	NumPrimitives int
	NumVertices   int

	LeafKind      LeafKind
	MaxLeafBlocks int
}

// NewBVH prepares an empty tree configured for the given leaf layout and
// per-leaf primitive cap.
func NewBVH(leafKind LeafKind, maxLeafBlocks int) *BVH {
	return &BVH{
		Root:          EmptyNodeRef(),
		Bounds:        types.EmptyAABB(),
		LeafKind:      leafKind,
		MaxLeafBlocks: maxLeafBlocks,
	}
}

// init resets the tree for a fresh build. expectedPrimitives is only a
// sizing hint (Go slices/maps grow on demand); it exists so call sites
// mirror the source's bvh->init(numPrimitives, ...) call.
func (b *BVH) init(expectedPrimitives int) {
	b.Root = EmptyNodeRef()
	b.Bounds = types.EmptyAABB()
	b.NumPrimitives = 0
	b.NumVertices = 0
	_ = expectedPrimitives
}

func (b *BVH) allocAlignedNode(threadIndex int) *AlignedNode {
	return &AlignedNode{Children: [4]NodeRef{EmptyNodeRef(), EmptyNodeRef(), EmptyNodeRef(), EmptyNodeRef()}}
}

func (b *BVH) allocUnalignedNode(threadIndex int) *UnalignedNode {
	return &UnalignedNode{Children: [4]NodeRef{EmptyNodeRef(), EmptyNodeRef(), EmptyNodeRef(), EmptyNodeRef()}}
}

func (b *BVH) allocInlinePrimitiveBlock(threadIndex, n int) []Bezier1 {
	return make([]Bezier1, n)
}

func (b *BVH) allocIndexedPrimitiveBlock(threadIndex, n int) []IndexedBezier1 {
	return make([]IndexedBezier1, n)
}
