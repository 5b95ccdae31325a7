package allocator

// growRegion requests enough memory from the break provider to satisfy an
// s-byte allocation, formats it as a single FREE chunk, splices it onto the
// tail of the chunk list, and coalesces it with the tail if the tail was
// itself FREE. Returns the chunk to hand to the caller (after any coalesce,
// that may be the former tail rather than the new chunk).
func (h *Heap) growRegion(s uintptr) (*chunkHeader, error) {
	reqSize := h.cfg.heapChunk + h.footprint

	if s+h.footprint > reqSize {
		reqSize = s + h.footprint
	} else if reqSize-(s+h.footprint) < h.footprint+h.cfg.minFreeChunk {
		reqSize = 2*h.footprint + s + h.cfg.minFreeChunk
	}

	if h.start == nil {
		if pad := alignOffset(h.provider.Break(), h.cfg.minUnit); pad > 0 {
			if _, err := h.provider.Grow(pad); err != nil {
				return nil, err
			}
		}
	}

	base, err := h.provider.Grow(reqSize)
	if err != nil {
		return nil, err
	}

	fresh := formatChunk(base, reqSize, h.footprint)

	if h.start == nil {
		h.start = fresh
		h.tail = fresh

		return fresh, nil
	}

	tail := h.tail
	tail.next = fresh
	fresh.prev = tail
	h.tail = fresh

	if tail.status == chunkFree {
		h.merge(fresh)

		return tail, nil
	}

	return fresh, nil
}

// alignOffset returns the number of padding bytes needed to bring addr up
// to the next multiple of unit: (unit - addr%unit) % unit.
func alignOffset(addr, unit uintptr) uintptr {
	if unit == 0 {
		return 0
	}

	return (unit - addr%unit) % unit
}
