//go:build linux || darwin
// +build linux darwin

package brk

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapProvider reserves a single PROT_NONE anonymous mapping up front and
// commits pages into it as the break advances, by mprotect-ing them
// readable/writable. The reservation is never unmapped or shrunk while the
// provider is live; Close releases it.
type MmapProvider struct {
	data   []byte
	offset uintptr
}

// NewMmapProvider reserves capacity bytes of address space for the break to
// grow into.
func NewMmapProvider(capacity uintptr) (*MmapProvider, error) {
	data, err := unix.Mmap(-1, 0, int(capacity), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("brk: reserve %d bytes: %w", capacity, err)
	}

	return &MmapProvider{data: data}, nil
}

func (p *MmapProvider) Break() uintptr {
	return uintptr(unsafe.Pointer(&p.data[0])) + p.offset
}

func (p *MmapProvider) Grow(n uintptr) (unsafe.Pointer, error) {
	if p.offset+n > uintptr(len(p.data)) {
		return nil, fmt.Errorf("brk: reservation of %d bytes exhausted (requested %d more at offset %d)", len(p.data), n, p.offset)
	}

	// mprotect needs a page-aligned start, so commit from the page holding
	// the current break; re-protecting an already committed page is harmless.
	page := uintptr(unix.Getpagesize())
	lo := p.offset &^ (page - 1)

	region := p.data[lo : p.offset+n]
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return nil, fmt.Errorf("brk: mprotect %d bytes at offset %d: %w", n, p.offset, err)
	}

	base := unsafe.Pointer(&p.data[p.offset])
	p.offset += n

	return base, nil
}

// Close releases the reservation. The provider must not be used afterward.
func (p *MmapProvider) Close() error {
	return unix.Munmap(p.data)
}
