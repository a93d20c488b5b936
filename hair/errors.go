package hair

import "errors"

// Sentinel errors for the fatal configuration- and invariant-level
// failure kinds in the build process. Capacity truncation and degenerate
// chord skips are not represented here: per design they are recovered
// in place (logged, build continues), not returned as errors.
var (
	// ErrUnknownModeToken is returned by ParseMode when the build-mode
	// token stream contains a token it doesn't recognize.
	ErrUnknownModeToken = errors.New("hair: unknown build mode token")

	// ErrNoApplicableSplit indicates the split dispatcher could not
	// select any of the fallback/object/spatial/strand cases. This
	// should be unreachable — the fallback split always applies — so
	// seeing it means reference-list or PrimInfo state is corrupted.
	ErrNoApplicableSplit = errors.New("hair: split dispatcher found no applicable case")

	// ErrAllocatorExhausted names the allocator-failure class. No
	// function in this package returns it: node, leaf and
	// reference-block allocations go through the Go runtime allocator
	// and are not checked for failure.
	ErrAllocatorExhausted = errors.New("hair: allocator exhausted")
)
