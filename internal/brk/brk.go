// Package brk abstracts the operating system's process-break primitive: the
// one downward dependency the allocator in internal/allocator calls through.
package brk

import "unsafe"

// Provider is a break-style allocation primitive: query the current break,
// and advance it by n bytes. A Provider never shrinks the break it has
// already handed out; callers (the heap grower) own everything between the
// first committed byte and the current break exclusively.
type Provider interface {
	// Break returns the current break address, i.e. one past the last byte
	// committed by Grow. Before the first Grow it is the start of the
	// provider's reservation.
	Break() uintptr

	// Grow commits n additional bytes starting at the current break and
	// returns a pointer to the start of that new region (equal to the break
	// before the call). It fails if the provider's backing reservation is
	// exhausted.
	Grow(n uintptr) (unsafe.Pointer, error)
}
