package sweep

import (
	"fmt"
)

// Compact removes all zero-valued elements from the first n elements of in,
// preserving the relative order of survivors, writes them to the front of
// out, and returns how many were retained. out only needs room for the
// retained elements, not for all n.
//
// The retained count equals scan[padded-1] + pred[padded-1]: the last
// prefix value plus whether the last padded slot itself was kept. The pad
// slots hold predicate 0, so when n is not a power of two the final slot
// contributes nothing and the formula still counts exactly the survivors.
func (ctx *Context) Compact(n int, out, in []int32, tm *Timer) (int, error) {
	if n < 0 {
		return 0, NewInvalidArgError("Compact", fmt.Sprintf("element count must be non-negative, got %d", n))
	}
	if n > len(in) {
		return 0, NewInvalidArgError("Compact", fmt.Sprintf("input has %d elements, need %d", len(in), n))
	}
	if n == 0 {
		return 0, nil
	}

	padded := nextPowerOfTwo(n)

	dIn, err := ctx.Malloc(n * ElementSize)
	if err != nil {
		return 0, NewMemoryError("Compact", "input buffer allocation failed", err)
	}
	defer ctx.Free(dIn)

	dPred, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return 0, NewMemoryError("Compact", "predicate buffer allocation failed", err)
	}
	defer ctx.Free(dPred)

	dScan, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return 0, NewMemoryError("Compact", "scan buffer allocation failed", err)
	}
	defer ctx.Free(dScan)

	if err := ctx.Memcpy(dIn, in, n*ElementSize, MemcpyHostToDevice); err != nil {
		return 0, NewTransferError("Compact", "input upload failed", err)
	}

	input := dIn.Int32()[:n]
	pred := dPred.Int32()[:padded]
	scan := dScan.Int32()[:padded]

	tm.StartMeasurement()
	defer tm.StopMeasurement()

	// Classify: 1 for survivors, 0 for zeros and for every pad slot.
	err = ctx.forEachIndex("Compact", padded, func(idx int) {
		if idx < n && input[idx] != 0 {
			pred[idx] = 1
		} else {
			pred[idx] = 0
		}
	})
	if err != nil {
		return 0, err
	}

	// The scan runs on a copy so the predicate survives for the scatter.
	if err := ctx.Memcpy(dScan, dPred, padded*ElementSize, MemcpyDeviceToDevice); err != nil {
		return 0, NewTransferError("Compact", "predicate copy failed", err)
	}
	if err := ctx.scanDevice(dScan, padded); err != nil {
		return 0, err
	}

	retained := int(scan[padded-1] + pred[padded-1])
	if retained == 0 {
		return 0, nil
	}

	dOut, err := ctx.Malloc(retained * ElementSize)
	if err != nil {
		return 0, NewMemoryError("Compact", "output buffer allocation failed", err)
	}
	defer ctx.Free(dOut)
	output := dOut.Int32()[:retained]

	// Scatter survivors to their prefix-sum positions.
	err = ctx.forEachIndex("Compact", n, func(idx int) {
		if pred[idx] == 1 {
			output[scan[idx]] = input[idx]
		}
	})
	if err != nil {
		return 0, err
	}

	tm.StopMeasurement()

	if len(out) < retained {
		return 0, NewInvalidArgError("Compact", fmt.Sprintf("output has %d elements, need %d", len(out), retained))
	}
	if err := ctx.Memcpy(out, dOut, retained*ElementSize, MemcpyDeviceToHost); err != nil {
		return 0, NewTransferError("Compact", "result download failed", err)
	}
	return retained, nil
}
