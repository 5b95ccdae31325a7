//go:build linux || darwin
// +build linux darwin

package brk

// New returns the OS-backed Provider for platforms that support reserving
// address space with mmap/mprotect.
func New(capacity uintptr) (Provider, error) {
	return NewMmapProvider(capacity)
}
