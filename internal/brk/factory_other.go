//go:build !linux && !darwin
// +build !linux,!darwin

package brk

// New returns a FakeProvider on platforms without a real mmap-based
// Provider; it reserves the requested capacity as a plain Go slice.
func New(capacity uintptr) (Provider, error) {
	return NewFakeProvider(capacity), nil
}
