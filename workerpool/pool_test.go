package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestExecuteRunsEveryWorkerExactlyOnce(t *testing.T) {
	p := New()
	const n = 8
	var seen [n]int32

	p.Execute(n, "test", func(threadIndex, threadCount int) {
		if threadCount != n {
			t.Errorf("threadCount = %d, want %d", threadCount, n)
		}
		atomic.AddInt32(&seen[threadIndex], 1)
	})

	for i, v := range seen {
		if v != 1 {
			t.Fatalf("worker %d ran %d times, want 1", i, v)
		}
	}
}

func TestExecuteBlocksUntilAllWorkersReturn(t *testing.T) {
	p := New()
	var completed int32
	p.Execute(4, "test", func(threadIndex, threadCount int) {
		atomic.AddInt32(&completed, 1)
	})
	if completed != 4 {
		t.Fatalf("Execute returned before all workers finished: completed=%d", completed)
	}
}

func TestExecuteTreatsNonPositiveThreadCountAsOne(t *testing.T) {
	p := New()
	var calls int32
	p.Execute(0, "test", func(threadIndex, threadCount int) {
		atomic.AddInt32(&calls, 1)
		if threadCount != 1 {
			t.Fatalf("threadCount = %d, want 1", threadCount)
		}
	})
	if calls != 1 {
		t.Fatalf("Execute ran %d times for threadCount<=0, want 1", calls)
	}
}
