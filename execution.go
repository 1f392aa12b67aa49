package sweep

import (
	"runtime"
	"sync"
)

// launchInternal implements the core kernel execution logic
func (ctx *Context) launchInternal(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	stream *Stream,
	args ...interface{},
) error {
	gridSize := grid.Size()
	blockSize := block.Size()

	if blockSize <= 0 || blockSize > MaxThreadsPerBlock {
		return NewLaunchError("Launch", "invalid block dimensions", nil)
	}

	// Handle edge case where grid size is zero
	if gridSize == 0 {
		// Submit an empty task to maintain stream ordering
		stream.Submit(func() {})
		return nil
	}

	// Determine parallelism strategy
	numWorkers := runtime.NumCPU()
	if gridSize < numWorkers {
		numWorkers = gridSize
	}

	// Cache-aware scheduling: each worker processes multiple blocks
	// to maximize cache reuse
	blocksPerWorker := (gridSize + numWorkers - 1) / numWorkers

	// Submit work to stream
	stream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(numWorkers)

		for workerID := 0; workerID < numWorkers; workerID++ {
			wID := workerID
			startBlock := wID * blocksPerWorker
			endBlock := startBlock + blocksPerWorker
			if endBlock > gridSize {
				endBlock = gridSize
			}

			go func() {
				defer wg.Done()

				for blockID := startBlock; blockID < endBlock; blockID++ {
					blockIdx := linearTo3D(blockID, grid)

					// Threads within a block run sequentially on CPU;
					// this maximizes cache reuse and needs no local barrier.
					for threadID := 0; threadID < blockSize; threadID++ {
						threadIdx := linearTo3D(threadID, block)

						tid := ThreadID{
							BlockIdx:  blockIdx,
							ThreadIdx: threadIdx,
							BlockDim:  block,
							GridDim:   grid,
						}

						kernelFunc(tid, args...)
					}
				}
			}()
		}

		wg.Wait()
	})

	return nil
}

// linearTo3D converts a linear index to 3D coordinates
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}

// launchGeometry returns a 1D grid/block pair covering count work items.
func launchGeometry(count int) (grid, block Dim3) {
	grid = Dim3{X: (count + DefaultBlockSize - 1) / DefaultBlockSize, Y: 1, Z: 1}
	block = Dim3{X: DefaultBlockSize, Y: 1, Z: 1}
	return grid, block
}

// forEachIndex dispatches fn over [0, count) as a flat parallel-for on the
// default stream and waits for completion. Workers with index >= count are
// no-ops. Every algorithmic step of the primitives (classification, one
// scan level, destination computation, scatter) goes through here, so the
// return doubles as the device-wide barrier between steps.
func (ctx *Context) forEachIndex(op string, count int, fn func(idx int)) error {
	if count <= 0 {
		return nil
	}
	grid, block := launchGeometry(count)
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < count {
			fn(idx)
		}
	})
	if err := ctx.Launch(kernel, grid, block); err != nil {
		return NewLaunchError(op, "kernel dispatch failed", err)
	}
	if err := ctx.Synchronize(); err != nil {
		return NewLaunchError(op, "synchronize failed", err)
	}
	return nil
}
