// Command sweep runs the parallel primitives on sample and random data and
// reports device time for each.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/LynnColeArt/sweep"
)

func main() {
	var (
		n       = flag.Int("n", 1<<20, "Number of elements for the timed runs")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
		verbose = flag.Bool("v", false, "Print sample results")
	)
	flag.Parse()

	dev := sweep.GetDevice()
	fmt.Println("=== sweep primitives ===")
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("Device: %s\n", dev.Name)
	fmt.Printf("Cores: %d\n", dev.NumCores)
	fmt.Println()

	runSamples(*verbose)

	rng := rand.New(rand.NewSource(*seed))
	in := make([]int32, *n)
	for i := range in {
		in[i] = rng.Int31n(1000)
	}
	out := make([]int32, *n)

	var tm sweep.Timer
	if err := sweep.Scan(*n, out, in, &tm); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("scan       n=%d  device time %v\n", *n, tm.Elapsed())

	tm.Reset()
	count, err := sweep.Compact(*n, out, in, &tm)
	if err != nil {
		log.Fatalf("compact: %v", err)
	}
	fmt.Printf("compact    n=%d  device time %v  retained %d\n", *n, tm.Elapsed(), count)

	tm.Reset()
	if err := sweep.RadixSort(*n, out, in, &tm); err != nil {
		log.Fatalf("radix sort: %v", err)
	}
	fmt.Printf("radix sort n=%d  device time %v\n", *n, tm.Elapsed())
}

func runSamples(verbose bool) {
	scanIn := []int32{1, 2, 3, 4}
	scanOut := make([]int32, len(scanIn))
	if err := sweep.Scan(len(scanIn), scanOut, scanIn, nil); err != nil {
		log.Fatalf("scan sample: %v", err)
	}

	compactIn := []int32{1, 0, 0, 3, 0, 5}
	compactOut := make([]int32, len(compactIn))
	count, err := sweep.Compact(len(compactIn), compactOut, compactIn, nil)
	if err != nil {
		log.Fatalf("compact sample: %v", err)
	}

	sortIn := []int32{5, 3, 1, 4, 2}
	sortOut := make([]int32, len(sortIn))
	if err := sweep.RadixSort(len(sortIn), sortOut, sortIn, nil); err != nil {
		log.Fatalf("radix sort sample: %v", err)
	}

	if verbose {
		fmt.Printf("scan    %v -> %v\n", scanIn, scanOut)
		fmt.Printf("compact %v -> %v (retained %d)\n", compactIn, compactOut[:count], count)
		fmt.Printf("sort    %v -> %v\n", sortIn, sortOut)
		fmt.Println()
	}
}
