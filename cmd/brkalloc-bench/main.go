// Command brkalloc-bench is a second external client of the allocator: a
// flag-driven workload generator that exercises acquire, resize, and
// release in a mixed pattern and reports throughput.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
	"unsafe"

	"github.com/orizon-lang/brkalloc/internal/allocator"
	"github.com/orizon-lang/brkalloc/internal/brk"
)

func main() {
	var (
		iterations = flag.Int("iterations", 5000, "number of acquire/resize/release cycles to run")
		minSize    = flag.Int("min-size", 8, "minimum acquire size in bytes")
		maxSize    = flag.Int("max-size", 4096, "maximum acquire size in bytes")
		reserve    = flag.Uint64("reserve", 256<<20, "bytes of address space to reserve for the heap")
		seed       = flag.Int64("seed", 1, "random seed for the workload generator")
		verbose    = flag.Bool("verbose", false, "print every operation")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Mixed acquire/resize/release workload against the brkalloc heap.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	provider, err := brk.New(uintptr(*reserve))
	if err != nil {
		log.Fatalf("brkalloc-bench: reserving heap: %v", err)
	}

	heap, err := allocator.New(provider, allocator.WithDebug(*verbose))
	if err != nil {
		log.Fatalf("brkalloc-bench: creating heap: %v", err)
	}

	rnd := rand.New(rand.NewSource(*seed))
	live := make([]unsafe.Pointer, 0, *iterations)

	start := time.Now()

	for i := 0; i < *iterations; i++ {
		switch {
		case len(live) == 0 || rnd.Intn(3) != 0:
			size := uintptr(*minSize + rnd.Intn(*maxSize-*minSize+1))

			ptr := heap.Acquire(size)
			if ptr == nil {
				fmt.Printf("iteration %d: acquire(%d) failed: %v\n", i, size, heap.LastError())

				continue
			}

			live = append(live, ptr)
		case rnd.Intn(2) == 0:
			idx := rnd.Intn(len(live))
			newSize := uintptr(*minSize + rnd.Intn(*maxSize-*minSize+1))

			resized := heap.Resize(live[idx], newSize)
			if resized == nil {
				fmt.Printf("iteration %d: resize failed: %v\n", i, heap.LastError())

				continue
			}

			live[idx] = resized
		default:
			idx := rnd.Intn(len(live))
			heap.Release(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	for _, ptr := range live {
		heap.Release(ptr)
	}

	elapsed := time.Since(start)
	fmt.Printf("%d iterations in %v (avg %v/op)\n", *iterations, elapsed, elapsed/time.Duration(*iterations))
}
