package hair

import (
	"testing"

	"github.com/achilleasa/hairbvh/types"
)

func makeRef(x float32, geomID, primID uint32) Bezier1 {
	return NewBezier1(
		CurveVertex{Position: types.Vec3{x, 0, 0}, Radius: 0.01},
		CurveVertex{Position: types.Vec3{x + 0.3, 0, 0}, Radius: 0.01},
		CurveVertex{Position: types.Vec3{x + 0.6, 0, 0}, Radius: 0.01},
		CurveVertex{Position: types.Vec3{x + 1, 0, 0}, Radius: 0.01},
		geomID, primID,
	)
}

func TestRefListPushAndSize(t *testing.T) {
	alloc := NewBlockAllocator(1)
	list := NewRefList()

	for i := 0; i < refBlockCapacity*2+5; i++ {
		list.Push(alloc, 0, makeRef(float32(i), 0, uint32(i)))
	}
	if got, want := list.Size(), refBlockCapacity*2+5; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}

	count := 0
	list.ForEach(func(Bezier1) { count++ })
	if count != list.Size() {
		t.Fatalf("ForEach visited %d refs, want %d", count, list.Size())
	}
}

func TestRefListForEachIndexedOrderMatchesInsertion(t *testing.T) {
	alloc := NewBlockAllocator(1)
	list := NewRefList()
	for i := 0; i < 10; i++ {
		list.Push(alloc, 0, makeRef(0, 0, uint32(i)))
	}

	var seen []uint32
	list.ForEachIndexed(func(i int, ref Bezier1) {
		if uint32(i) != ref.PrimID {
			t.Fatalf("index %d does not match insertion position (primID %d)", i, ref.PrimID)
		}
		seen = append(seen, ref.PrimID)
	})
	if len(seen) != 10 {
		t.Fatalf("visited %d refs, want 10", len(seen))
	}
}

func TestBlockAllocatorRecyclesPerThreadIndex(t *testing.T) {
	alloc := NewBlockAllocator(2)
	list := NewRefList()
	for i := 0; i < refBlockCapacity+1; i++ {
		list.Push(alloc, 0, makeRef(0, 0, uint32(i)))
	}
	sizeBefore := list.Size()
	list.Release(alloc, 0)
	if list.Size() != 0 {
		t.Fatalf("list should be empty after Release, got size %d", list.Size())
	}
	if got := len(alloc.free[0]); got != 2 {
		t.Fatalf("thread 0 free list holds %d blocks after Release, want 2", got)
	}

	// Blocks released on thread 0 should be reused by thread 0 without
	// growing the underlying allocation; thread 1's free list must stay
	// untouched.
	list2 := NewRefList()
	for i := 0; i < sizeBefore; i++ {
		list2.Push(alloc, 0, makeRef(0, 0, uint32(i)))
	}
	if list2.Size() != sizeBefore {
		t.Fatalf("list2 size = %d, want %d", list2.Size(), sizeBefore)
	}
	if got := len(alloc.free[0]); got != 0 {
		t.Fatalf("thread 0 free list holds %d blocks after reuse, want 0", got)
	}
	if got := len(alloc.free[1]); got != 0 {
		t.Fatalf("thread 1 free list holds %d blocks, want 0", got)
	}
}

func TestRefListTakeDrainsHeadToTail(t *testing.T) {
	alloc := NewBlockAllocator(1)
	list := NewRefList()
	for i := 0; i < refBlockCapacity*3; i++ {
		list.Push(alloc, 0, makeRef(0, 0, uint32(i)))
	}

	var blocks int
	total := 0
	for blk := list.Take(); blk != nil; blk = list.Take() {
		blocks++
		total += blk.count
	}
	if blocks != 3 {
		t.Fatalf("expected 3 blocks, got %d", blocks)
	}
	if total != refBlockCapacity*3 {
		t.Fatalf("expected %d total refs across blocks, got %d", refBlockCapacity*3, total)
	}
	if list.Size() != 0 {
		t.Fatalf("list should report 0 size once drained, got %d", list.Size())
	}
}
