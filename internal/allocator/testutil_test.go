package allocator

import (
	"testing"

	"github.com/orizon-lang/brkalloc/internal/brk"
)

// newHeap builds a Heap over a FakeProvider with the given reservation
// capacity, for use by the tests in this package.
func newHeap(t *testing.T, capacity uintptr, opts ...Option) *Heap {
	t.Helper()

	provider := brk.NewFakeProvider(capacity)

	h, err := New(provider, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return h
}

// checkInvariants walks h's chunk list and fails t if any of the
// chunk-list invariants (linkage, address ordering, alignment, no adjacent
// FREE chunks, tail consistency) do not hold.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	if h.start == nil {
		return
	}

	var (
		prev        *chunkHeader
		lastAddr    uintptr
		haveLast    bool
		prevWasFree bool
	)

	for c := h.start; c != nil; c = c.next {
		if c.prev != prev {
			t.Errorf("chunk %p: prev link mismatch: got %p, want %p", c, c.prev, prev)
		}

		addr := headerAddr(c)
		if haveLast && addr <= lastAddr {
			t.Errorf("chunk %p: not in strict ascending address order (prev addr %d, this %d)", c, lastAddr, addr)
		}

		if ps := uintptr(c.payloadStart(h.footprint)); ps != addr+h.footprint {
			t.Errorf("chunk %p: payloadStart %d != addr+footprint %d", c, ps, addr+h.footprint)
		}

		if uintptr(c.payloadStart(h.footprint))%h.cfg.minUnit != 0 {
			t.Errorf("chunk %p: payloadStart not a multiple of minUnit", c)
		}

		if c.payloadSize%h.cfg.minUnit != 0 {
			t.Errorf("chunk %p: payloadSize %d not a multiple of minUnit", c, c.payloadSize)
		}

		// Note: minFreeChunk only bounds remainders a split newly carves
		// off; a chunk produced by a plain Release keeps whatever size it
		// was originally acquired at, which may be smaller, so it is not
		// checked here.

		if c.status == chunkFree && prevWasFree {
			t.Errorf("chunk %p: two adjacent FREE chunks", c)
		}

		prevWasFree = c.status == chunkFree
		prev = c
		lastAddr = addr
		haveLast = true

		if c.next == nil && c != h.tail {
			t.Errorf("chunk %p: reached list end but is not h.tail (%p)", c, h.tail)
		}
	}
}
