package sweep

import (
	"fmt"
)

// RadixSort sorts the first n elements of in ascending and writes n
// elements to out. Keys are compared by their raw 32-bit pattern treated as
// unsigned, so negative values order after all non-negative ones. Use
// RadixSortSigned for natural signed ordering.
//
// The sort runs one stable split pass per key bit, least significant bit
// first, each pass positioning elements with the scan core.
func (ctx *Context) RadixSort(n int, out, in []int32, tm *Timer) error {
	return ctx.radixSort(n, out, in, WordBits, false, tm)
}

// RadixSortBits sorts like RadixSort but only by the low bits of each key,
// running one split pass per bit. Keys that differ only above the given bit
// count keep their input order. bits must be in [1, 32].
func (ctx *Context) RadixSortBits(n int, out, in []int32, bits int, tm *Timer) error {
	if bits < 1 || bits > WordBits {
		return NewInvalidArgError("RadixSort", fmt.Sprintf("key width must be in [1, %d], got %d", WordBits, bits))
	}
	return ctx.radixSort(n, out, in, bits, false, tm)
}

// RadixSortSigned sorts ascending under signed integer ordering by
// complementing the sign bit in the final pass, so negative values come
// before non-negative ones.
func (ctx *Context) RadixSortSigned(n int, out, in []int32, tm *Timer) error {
	return ctx.radixSort(n, out, in, WordBits, true, tm)
}

// radixSort runs the LSB-first stable split passes. Per pass, with the
// current working buffer as cur and its partner as next:
//
//  1. e[idx] = 1 when bit i of cur[idx] is 0 ("low" elements move earlier);
//     every pad slot gets e = 0 so it counts as a tail-bound "high" that
//     never lands in [0, n).
//  2. f = exclusive scan of e, so f[idx] counts lows before idx.
//  3. totalFalse = e[padded-1] + f[padded-1], the low count of the whole
//     padded buffer (equal to the real low count since pads read high).
//  4. lows scatter to f[idx]; highs to idx - f[idx] + totalFalse, which
//     packs them after the lows in input order.
//
// The buffers then swap roles for the next bit.
func (ctx *Context) radixSort(n int, out, in []int32, bits int, signed bool, tm *Timer) error {
	if err := checkArgs("RadixSort", n, len(out), len(in)); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	padded := nextPowerOfTwo(n)

	dPing, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return NewMemoryError("RadixSort", "working buffer allocation failed", err)
	}
	defer ctx.Free(dPing)

	dPong, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return NewMemoryError("RadixSort", "working buffer allocation failed", err)
	}
	defer ctx.Free(dPong)

	dE, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return NewMemoryError("RadixSort", "predicate buffer allocation failed", err)
	}
	defer ctx.Free(dE)

	dF, err := ctx.Malloc(padded * ElementSize)
	if err != nil {
		return NewMemoryError("RadixSort", "scan buffer allocation failed", err)
	}
	defer ctx.Free(dF)

	dD, err := ctx.Malloc(n * ElementSize)
	if err != nil {
		return NewMemoryError("RadixSort", "destination buffer allocation failed", err)
	}
	defer ctx.Free(dD)

	if err := ctx.Memcpy(dPing, in, n*ElementSize, MemcpyHostToDevice); err != nil {
		return NewTransferError("RadixSort", "input upload failed", err)
	}

	e := dE.Int32()[:padded]
	f := dF.Int32()[:padded]
	dest := dD.Int32()[:n]

	cur, next := dPing, dPong

	tm.StartMeasurement()
	defer tm.StopMeasurement()

	for bit := 0; bit < bits; bit++ {
		src := cur.Int32()[:padded]
		dst := next.Int32()[:padded]

		// Complementing the sign bit flips which group counts as "low",
		// which is all signed ordering needs on the final pass.
		invert := signed && bit == WordBits-1

		// Classify, zero-filling the entire pad region every pass.
		err := ctx.forEachIndex("RadixSort", padded, func(idx int) {
			if idx >= n {
				e[idx] = 0
				return
			}
			b := int32((uint32(src[idx]) >> uint(bit)) & 1)
			if invert {
				e[idx] = b
			} else {
				e[idx] = 1 - b
			}
		})
		if err != nil {
			return err
		}

		if err := ctx.Memcpy(dF, dE, padded*ElementSize, MemcpyDeviceToDevice); err != nil {
			return NewTransferError("RadixSort", "predicate copy failed", err)
		}
		if err := ctx.scanDevice(dF, padded); err != nil {
			return err
		}

		totalFalse := e[padded-1] + f[padded-1]

		err = ctx.forEachIndex("RadixSort", n, func(idx int) {
			if e[idx] == 1 {
				dest[idx] = f[idx]
			} else {
				dest[idx] = int32(idx) - f[idx] + totalFalse
			}
		})
		if err != nil {
			return err
		}

		err = ctx.forEachIndex("RadixSort", n, func(idx int) {
			dst[dest[idx]] = src[idx]
		})
		if err != nil {
			return err
		}

		cur, next = next, cur
	}

	tm.StopMeasurement()

	if err := ctx.Memcpy(out, cur, n*ElementSize, MemcpyDeviceToHost); err != nil {
		return NewTransferError("RadixSort", "result download failed", err)
	}
	return nil
}
