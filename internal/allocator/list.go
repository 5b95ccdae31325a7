package allocator

import "unsafe"

// firstFit walks the chunk list from the heap's start looking for the
// first FREE chunk that either fits s exactly or is large enough to split
// off a conformant FREE remainder. Chunks whose free payload lies strictly
// between the two are skipped: handing one out would leave a remainder
// smaller than minFreeChunk.
func (h *Heap) firstFit(s uintptr) *chunkHeader {
	for c := h.start; c != nil; c = c.next {
		if c.status != chunkFree {
			continue
		}

		if c.payloadSize == s || c.payloadSize >= s+h.footprint+h.cfg.minFreeChunk {
			return c
		}
	}

	return nil
}

// headerOf resolves a payload address to its owning chunk by walking the
// chunk list and returning the first chunk whose payload half-open range
// [payloadStart, payloadStart+payloadSize) contains ptr. Returns nil if no
// such chunk exists. Both the lower and upper bound are checked, so an
// address one past the end of a payload correctly resolves to nothing
// rather than aliasing the next chunk's header.
func (h *Heap) headerOf(ptr unsafe.Pointer) *chunkHeader {
	addr := uintptr(ptr)

	for c := h.start; c != nil; c = c.next {
		start := uintptr(c.payloadStart(h.footprint))
		if addr >= start && addr < start+c.payloadSize {
			return c
		}
	}

	return nil
}
