package sweep

// Work-efficient exclusive scan over an implicit balanced binary tree
// (Blelloch up-sweep/down-sweep). The buffer length must be a power of two
// and every slot past the logical input must already hold the neutral
// element; Scan, Compact, and RadixSort all zero-fill their padding before
// calling in here.

// nextPowerOfTwo returns the smallest power of two >= n, with a floor of 1.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// log2Floor returns k such that 1<<k == length for power-of-two length.
func log2Floor(length int) int {
	k := 0
	for l := 1; l < length; l <<= 1 {
		k++
	}
	return k
}

// scanDevice transforms the first length elements of d, in place, into
// their exclusive prefix sum. length must be a power of two.
//
// Each tree level is one flat dispatch of exactly the active worker count,
// with direct strided addressing: level d owns every subtree of size
// 2^(d+1), worker w the subtree based at w<<(d+1). The dispatch helper
// synchronizes before returning, which is the device-wide barrier the
// level-to-level data dependency requires — level d+1 reads positions
// written by level d.
func (ctx *Context) scanDevice(d DevicePtr, length int) error {
	if length <= 1 {
		// Single-slot tree: the exclusive scan is just the identity value.
		return ctx.forEachIndex("ScanCore", length, func(idx int) {
			d.Int32()[idx] = 0
		})
	}

	buf := d.Int32()[:length]
	levels := log2Floor(length)

	// Up-sweep: partial sums climb the tree; afterwards buf[length-1]
	// holds the inclusive total.
	for lvl := 0; lvl < levels; lvl++ {
		stride := 1 << (lvl + 1)
		half := 1 << lvl
		active := length >> (lvl + 1)
		err := ctx.forEachIndex("ScanCore", active, func(w int) {
			base := w * stride
			buf[base+stride-1] += buf[base+half-1]
		})
		if err != nil {
			return err
		}
	}

	// Overwrite the root with the exclusive identity before descending.
	err := ctx.forEachIndex("ScanCore", 1, func(int) {
		buf[length-1] = 0
	})
	if err != nil {
		return err
	}

	// Down-sweep: each active worker swaps the child values and folds the
	// old left value into the right subtree.
	for lvl := levels - 1; lvl >= 0; lvl-- {
		stride := 1 << (lvl + 1)
		half := 1 << lvl
		active := length >> (lvl + 1)
		err := ctx.forEachIndex("ScanCore", active, func(w int) {
			base := w * stride
			t := buf[base+half-1]
			buf[base+half-1] = buf[base+stride-1]
			buf[base+stride-1] += t
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// zeroFillDevice clears d[from:to] so padding holds the neutral element.
// Freshly pooled memory may contain stale data from a previous call, so
// the fill is unconditional.
func (ctx *Context) zeroFillDevice(d DevicePtr, from, to int) error {
	if from >= to {
		return nil
	}
	buf := d.Int32()
	return ctx.forEachIndex("ZeroFill", to-from, func(idx int) {
		buf[from+idx] = 0
	})
}
