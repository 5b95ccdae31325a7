package allocator

import (
	"fmt"
	"unsafe"

	"github.com/orizon-lang/brkalloc/internal/brk"
	allocerrors "github.com/orizon-lang/brkalloc/internal/errors"
)

// maxUintptr is the largest representable uintptr value on this platform,
// used to guard count*elemSize against overflow in Calloc.
const maxUintptr = ^uintptr(0)

// Heap is the public allocator: a single contiguous chunk list grown on
// demand from a brk.Provider. A Heap is single-threaded and non-reentrant;
// callers must serialize their own access.
type Heap struct {
	provider  brk.Provider
	cfg       *config
	start     *chunkHeader
	tail      *chunkHeader
	footprint uintptr
	lastErr   *allocerrors.StandardError
}

// New creates a Heap over the given break provider. The provider must not
// be used by any other client once the Heap exists.
func New(provider brk.Provider, opts ...Option) (*Heap, error) {
	if provider == nil {
		return nil, fmt.Errorf("brkalloc: nil break provider")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Heap{
		provider:  provider,
		cfg:       cfg,
		footprint: headerFootprint(cfg.minUnit),
	}, nil
}

// LastError returns the error recorded by the most recent public operation,
// or nil if that operation did not fail. It is the out-of-memory indicator
// most operations need without specifying their own error return.
func (h *Heap) LastError() *allocerrors.StandardError {
	return h.lastErr
}

// Acquire returns size bytes of minimum-unit-aligned memory, or nil if size
// is zero or the break provider is exhausted.
func (h *Heap) Acquire(size uintptr) unsafe.Pointer {
	h.lastErr = nil

	if size == 0 {
		h.trace("acquire(0) => nil")

		return nil
	}

	s := alignUp(size, h.cfg.minUnit)

	c := h.firstFit(s)
	if c == nil {
		grown, err := h.growRegion(s)
		if err != nil {
			h.lastErr = allocerrors.ErrOutOfMemory(s)
			h.trace("acquire(%d) => nil (out of memory: %v)", size, err)

			return nil
		}

		c = grown
	}

	h.divide(c, s)
	c.status = chunkInUse

	ptr := c.payloadStart(h.footprint)
	h.trace("acquire(%d) => %p (aligned size %d)", size, ptr, s)

	return ptr
}

// Release returns ptr's chunk to the free list and coalesces it with any
// FREE neighbors. A nil ptr is a no-op; an unresolvable or already-free ptr
// is a diagnostic-producing no-op.
func (h *Heap) Release(ptr unsafe.Pointer) {
	h.lastErr = nil

	if ptr == nil {
		return
	}

	c := h.headerOf(ptr)
	if c == nil || c.status == chunkFree {
		h.lastErr = allocerrors.ErrBadPointerRelease(ptr)
		h.trace("release(%p) => bad pointer", ptr)

		return
	}

	c.status = chunkFree
	h.merge(c)
	h.trace("release(%p)", ptr)
}

// Calloc acquires count*elemSize bytes and zero-fills them, returning nil
// if either argument is zero, the product overflows uintptr, or the break
// provider is exhausted.
func (h *Heap) Calloc(count, elemSize uintptr) unsafe.Pointer {
	h.lastErr = nil

	if count == 0 || elemSize == 0 {
		h.trace("calloc(%d, %d) => nil (zero factor)", count, elemSize)

		return nil
	}

	if count > maxUintptr/elemSize {
		h.lastErr = allocerrors.ErrSizeOverflow(count, elemSize)
		h.trace("calloc(%d, %d) => nil (overflow)", count, elemSize)

		return nil
	}

	block := count * elemSize
	s := alignUp(block, h.cfg.minUnit)

	ptr := h.Acquire(s)
	if ptr == nil {
		return nil
	}

	zeroFill(ptr, s)
	h.trace("calloc(%d, %d) => %p", count, elemSize, ptr)

	return ptr
}

// Resize changes ptr's chunk to hold size bytes, in place when possible,
// relocating only as a last resort.
func (h *Heap) Resize(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	h.lastErr = nil

	if ptr == nil {
		return h.Acquire(size)
	}

	if size == 0 {
		h.Release(ptr)

		return nil
	}

	c := h.headerOf(ptr)
	if c == nil {
		h.lastErr = allocerrors.ErrBadPointerRelease(ptr)
		h.trace("resize(%p, %d) => nil (unresolvable pointer)", ptr, size)

		return nil
	}

	s := alignUp(size, h.cfg.minUnit)

	if s == c.payloadSize {
		h.trace("resize(%p, %d) => %p (unchanged)", ptr, size, ptr)

		return ptr
	}

	var (
		newPtr unsafe.Pointer
		err    error
	)

	if s > c.payloadSize {
		_, newPtr, err = h.expand(c, s)
	} else {
		_, newPtr, err = h.shrink(c, s)
	}

	if err != nil {
		h.lastErr = allocerrors.ErrOutOfMemory(s)
		h.trace("resize(%p, %d) => nil (out of memory)", ptr, size)

		return nil
	}

	h.trace("resize(%p, %d) => %p", ptr, size, newPtr)

	return newPtr
}

func zeroFill(ptr unsafe.Pointer, n uintptr) {
	buf := unsafe.Slice((*byte)(ptr), n)
	for i := range buf {
		buf[i] = 0
	}
}

func (h *Heap) trace(format string, args ...interface{}) {
	if h.cfg.debug && h.cfg.logger != nil {
		h.cfg.logger.Printf(format, args...)
	}
}
