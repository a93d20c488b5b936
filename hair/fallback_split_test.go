package hair

import "testing"

func TestFallbackSplitApplyBisectsEvenSet(t *testing.T) {
	alloc := NewBlockAllocator(1)
	list := NewRefList()
	for i := 0; i < 6; i++ {
		list.Push(alloc, 0, makeRef(float32(i), 0, uint32(i)))
	}
	pinfo := ComputePrimInfo(list)

	left, right, leftInfo, rightInfo := FallbackSplitApply(list, pinfo, alloc, 0)
	if left.Size() != 3 || right.Size() != 3 {
		t.Fatalf("expected an even 3/3 split, got %d/%d", left.Size(), right.Size())
	}
	if leftInfo.Size() != 3 || rightInfo.Size() != 3 {
		t.Fatal("PrimInfo counts must match the returned lists")
	}

	var maxLeft, minRight float32 = -1e9, 1e9
	left.ForEach(func(r Bezier1) {
		if c := r.Center()[0]; c > maxLeft {
			maxLeft = c
		}
	})
	right.ForEach(func(r Bezier1) {
		if c := r.Center()[0]; c < minRight {
			minRight = c
		}
	})
	if maxLeft >= minRight {
		t.Fatalf("fallback split should preserve centroid ordering: maxLeft=%v minRight=%v", maxLeft, minRight)
	}
}

func TestFallbackSplitApplyNeverEmptiesASide(t *testing.T) {
	alloc := NewBlockAllocator(1)
	list := NewRefList()
	for i := 0; i < 3; i++ {
		list.Push(alloc, 0, makeRef(0, 0, uint32(i)))
	}
	pinfo := ComputePrimInfo(list)

	left, right, _, _ := FallbackSplitApply(list, pinfo, alloc, 0)
	if left.Size() == 0 || right.Size() == 0 {
		t.Fatalf("fallback split must always place at least one reference on each side, got %d/%d", left.Size(), right.Size())
	}
	if left.Size()+right.Size() != 3 {
		t.Fatalf("expected all 3 references accounted for, got %d", left.Size()+right.Size())
	}
}
