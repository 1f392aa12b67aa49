// Package sweep configuration constants
package sweep

// Thread and block dimensions
const (
	// Default block size for kernel launches
	DefaultBlockSize = 256

	// Maximum threads per block (CUDA compatibility)
	MaxThreadsPerBlock = 1024
)

// Element parameters
const (
	// ElementSize is the size in bytes of one buffer element
	ElementSize = 4

	// WordBits is the key width of the radix sort in bits
	WordBits = 32
)

// Memory pool parameters
const (
	// Memory alignment for allocations (cache line size)
	MemoryAlignment = 64
)
