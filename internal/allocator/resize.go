package allocator

import (
	"errors"
	"unsafe"
)

// errOutOfMemoryResize is returned internally by expand/shrink when their
// relocate fallback fails; Resize turns it into a nil return with the
// original pointer left untouched.
var errOutOfMemoryResize = errors.New("brkalloc: relocation failed, break provider exhausted")

// expand grows c in place to hold s bytes, trying forward absorb, backward
// absorb, and finally relocation in that order. Returns the chunk now
// holding the data (c itself, c.prev, or a freshly acquired chunk) and the
// address to return to the caller, or (nil, nil, err) if relocation also
// failed.
func (h *Heap) expand(c *chunkHeader, s uintptr) (*chunkHeader, unsafe.Pointer, error) {
	if next := c.next; next != nil && next.status == chunkFree {
		if c.payloadSize+h.footprint+next.payloadSize == s {
			c.next = next.next
			if next.next != nil {
				next.next.prev = c
			} else {
				h.tail = c
			}

			c.payloadSize = s

			return c, c.payloadStart(h.footprint), nil
		}

		if c.payloadSize+next.payloadSize >= s+h.cfg.minFreeChunk {
			// The relocated header may overlap next's old one, so read
			// next's fields before writing any of sheader's.
			oldCPayload := c.payloadSize
			oldNextPayload := next.payloadSize
			oldNextNext := next.next
			newNextBase := unsafeAddPayload(c, h.footprint, s)
			sheader := (*chunkHeader)(newNextBase)
			sheader.payloadSize = oldCPayload + oldNextPayload - s
			sheader.status = chunkFree
			sheader.next = oldNextNext
			sheader.prev = c

			if oldNextNext != nil {
				oldNextNext.prev = sheader
			} else {
				h.tail = sheader
			}

			c.payloadSize = s
			c.next = sheader

			return c, c.payloadStart(h.footprint), nil
		}
	}

	if prev := c.prev; prev != nil && prev.status == chunkFree {
		if prev.payloadSize+h.footprint+c.payloadSize == s {
			prev.next = c.next
			if c.next != nil {
				c.next.prev = prev
			} else {
				h.tail = prev
			}

			copyMemory(prev.payloadStart(h.footprint), c.payloadStart(h.footprint), c.payloadSize)
			prev.payloadSize = s
			prev.status = chunkInUse

			return prev, prev.payloadStart(h.footprint), nil
		}

		if prev.payloadSize+c.payloadSize >= s+h.cfg.minFreeChunk {
			oldPrevPayload := prev.payloadSize
			oldPayloadSize := c.payloadSize
			oldNext := c.next

			copyMemory(prev.payloadStart(h.footprint), c.payloadStart(h.footprint), oldPayloadSize)

			prev.payloadSize = s
			prev.status = chunkInUse

			remBase := unsafeAddPayload(prev, h.footprint, s)
			remHeader := (*chunkHeader)(remBase)
			remHeader.payloadSize = oldPrevPayload + oldPayloadSize - s
			remHeader.status = chunkFree
			remHeader.next = oldNext
			remHeader.prev = prev

			if oldNext != nil {
				oldNext.prev = remHeader
			} else {
				h.tail = remHeader
			}

			prev.next = remHeader

			return prev, prev.payloadStart(h.footprint), nil
		}
	}

	oldPtr := c.payloadStart(h.footprint)
	oldSize := c.payloadSize

	newPtr := h.Acquire(s)
	if newPtr == nil {
		return nil, nil, errOutOfMemoryResize
	}

	copyMemory(newPtr, oldPtr, oldSize)
	h.Release(oldPtr)

	return h.headerOf(newPtr), newPtr, nil
}

// shrink reduces c in place to hold s bytes, preferring a zero-copy
// forward slide or in-place split before falling back to relocation.
func (h *Heap) shrink(c *chunkHeader, s uintptr) (*chunkHeader, unsafe.Pointer, error) {
	if next := c.next; next != nil && next.status == chunkFree {
		reclaimed := c.payloadSize - s
		newNextBase := unsafeAddPayload(c, h.footprint, s)
		sheader := (*chunkHeader)(newNextBase)
		sheader.payloadSize = next.payloadSize + reclaimed
		sheader.status = chunkFree
		sheader.next = next.next
		sheader.prev = c

		if next.next != nil {
			next.next.prev = sheader
		} else {
			h.tail = sheader
		}

		c.payloadSize = s
		c.next = sheader

		return c, c.payloadStart(h.footprint), nil
	}

	if s+h.footprint+h.cfg.minFreeChunk <= c.payloadSize {
		h.divide(c, s)

		return c, c.payloadStart(h.footprint), nil
	}

	oldPtr := c.payloadStart(h.footprint)

	newPtr := h.Acquire(s)
	if newPtr == nil {
		return nil, nil, errOutOfMemoryResize
	}

	copyMemory(newPtr, oldPtr, s)
	h.Release(oldPtr)

	return h.headerOf(newPtr), newPtr, nil
}

// copyMemory moves n bytes from src to dst, tolerating overlap, the way
// the resize engine's in-place paths require when a header or payload is
// relocated within the same backing buffer.
func copyMemory(dst, src unsafe.Pointer, n uintptr) {
	d := unsafe.Slice((*byte)(dst), n)
	s := unsafe.Slice((*byte)(src), n)
	copy(d, s)
}
