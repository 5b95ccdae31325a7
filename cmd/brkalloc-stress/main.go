// Command brkalloc-stress is an external client of the allocator: it
// drives the Stress-330 scenario from the allocator's test matrix — acquire
// 0..330 bytes in sequence, then release everything — and reports progress
// the way the original C demo program did.
package main

import (
	"flag"
	"fmt"
	"log"
	"unsafe"

	"github.com/orizon-lang/brkalloc/internal/allocator"
	"github.com/orizon-lang/brkalloc/internal/brk"
)

func main() {
	var (
		count     = flag.Int("count", 330, "number of pointers to acquire, sizes 0..count-1")
		reserve   = flag.Uint64("reserve", 64<<20, "bytes of address space to reserve for the heap")
		debugMode = flag.Bool("debug", false, "enable allocator trace logging")
	)
	flag.Parse()

	provider, err := brk.New(uintptr(*reserve))
	if err != nil {
		log.Fatalf("brkalloc-stress: reserving heap: %v", err)
	}

	heap, err := allocator.New(provider, allocator.WithDebug(*debugMode))
	if err != nil {
		log.Fatalf("brkalloc-stress: creating heap: %v", err)
	}

	ptrs := make([]unsafe.Pointer, *count)
	bytes := 0

	for i := 0; i < *count; i++ {
		ptrs[i] = heap.Acquire(uintptr(i))
		bytes += i

		fmt.Printf("bytes allocated - %d\n", bytes)
	}

	for i, ptr := range ptrs {
		fmt.Printf("freeing pointer %d: %p\n", i, ptr)
		heap.Release(ptr)
	}

	fmt.Println("stress run complete")
}
