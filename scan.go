package sweep

import (
	"fmt"
)

// Scan computes the exclusive prefix sum of the first n elements of in and
// writes n results to out: out[0] = 0 and out[i] = in[0] + ... + in[i-1].
//
// The input is staged into a device buffer padded to the next power of two,
// the pad region is zero-filled, and the scan core runs in place. tm, if
// non-nil, brackets the scan core only — transfers are excluded.
//
// n = 0 succeeds and writes nothing. Negative n is an error.
func (ctx *Context) Scan(n int, out, in []int32, tm *Timer) error {
	if err := checkArgs("Scan", n, len(out), len(in)); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	padded := nextPowerOfTwo(n)

	dBuf, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return NewMemoryError("Scan", "device buffer allocation failed", err)
	}
	defer ctx.Free(dBuf)

	if err := ctx.Memcpy(dBuf, in, n*ElementSize, MemcpyHostToDevice); err != nil {
		return NewTransferError("Scan", "input upload failed", err)
	}
	if err := ctx.zeroFillDevice(dBuf, n, padded); err != nil {
		return err
	}

	tm.StartMeasurement()
	err = ctx.scanDevice(dBuf, padded)
	tm.StopMeasurement()
	if err != nil {
		return err
	}

	if err := ctx.Memcpy(out, dBuf, n*ElementSize, MemcpyDeviceToHost); err != nil {
		return NewTransferError("Scan", "result download failed", err)
	}
	return nil
}

// checkArgs validates the shared (n, out, in) calling convention of the
// top-level operations.
func checkArgs(op string, n, outLen, inLen int) error {
	if n < 0 {
		return NewInvalidArgError(op, fmt.Sprintf("element count must be non-negative, got %d", n))
	}
	if n > inLen {
		return NewInvalidArgError(op, fmt.Sprintf("input has %d elements, need %d", inLen, n))
	}
	if n > outLen {
		return NewInvalidArgError(op, fmt.Sprintf("output has %d elements, need %d", outLen, n))
	}
	return nil
}
