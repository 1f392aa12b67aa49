package sweep

import (
	"math/rand"
	"testing"
)

// compactReference removes zeros sequentially, preserving order.
func compactReference(in []int32) []int32 {
	out := make([]int32, 0, len(in))
	for _, v := range in {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func TestCompactSmall(t *testing.T) {
	in := []int32{1, 0, 0, 3, 0, 5}
	out := make([]int32, len(in))

	count, err := Compact(len(in), out, in, nil)
	if err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("Retained count = %d, want 3", count)
	}
	want := []int32{1, 3, 5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestCompactAllRetained(t *testing.T) {
	in := []int32{4, 8, 15, 16, 23, 42}
	out := make([]int32, len(in))

	count, err := Compact(len(in), out, in, nil)
	if err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if count != len(in) {
		t.Fatalf("Retained count = %d, want %d", count, len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Already-dense input changed at %d: got %d, want %d", i, out[i], in[i])
		}
	}
}

func TestCompactAllZeros(t *testing.T) {
	in := make([]int32, 19)
	out := make([]int32, 19)

	count, err := Compact(len(in), out, in, nil)
	if err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Retained count = %d, want 0", count)
	}
}

// The retained-count formula reads the padded last slot; when n is already
// a power of two that slot is a real element, so exercise both dense sizes
// with a retained final element and ones with a dropped final element.
func TestCompactPowerOfTwoBoundary(t *testing.T) {
	cases := []struct {
		name string
		in   []int32
	}{
		{"last retained", []int32{0, 1, 0, 2, 0, 3, 0, 4}},
		{"last dropped", []int32{1, 2, 0, 3, 4, 5, 6, 0}},
		{"single retained", []int32{7}},
		{"single dropped", []int32{0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := make([]int32, len(tc.in))
			count, err := Compact(len(tc.in), out, tc.in, nil)
			if err != nil {
				t.Fatalf("Compact failed: %v", err)
			}
			want := compactReference(tc.in)
			if count != len(want) {
				t.Fatalf("Retained count = %d, want %d", count, len(want))
			}
			for i := range want {
				if out[i] != want[i] {
					t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
				}
			}
		})
	}
}

func TestCompactAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []int{1, 2, 3, 5, 8, 16, 17, 100, 256, 1000, 4097}

	for _, n := range sizes {
		in := make([]int32, n)
		for i := range in {
			// Roughly half zeros
			if rng.Intn(2) == 0 {
				in[i] = rng.Int31n(100) + 1
			}
		}

		out := make([]int32, n)
		count, err := Compact(n, out, in, nil)
		if err != nil {
			t.Fatalf("n=%d: Compact failed: %v", n, err)
		}

		want := compactReference(in)
		if count != len(want) {
			t.Fatalf("n=%d: retained count = %d, want %d", n, count, len(want))
		}
		for i := range want {
			if out[i] != want[i] {
				t.Fatalf("n=%d: out[%d] = %d, want %d (order not preserved?)", n, i, out[i], want[i])
			}
		}
	}
}

func TestCompactEmpty(t *testing.T) {
	count, err := Compact(0, nil, nil, nil)
	if err != nil {
		t.Fatalf("Compact of empty input failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Retained count = %d, want 0", count)
	}
}

func TestCompactInvalidArgs(t *testing.T) {
	in := []int32{1, 2, 3}

	if _, err := Compact(-1, nil, in, nil); err == nil {
		t.Error("Expected error for negative n")
	}
	if _, err := Compact(4, make([]int32, 4), in, nil); err == nil {
		t.Error("Expected error for n beyond input length")
	}
	// Output sized below the retained count
	if _, err := Compact(3, make([]int32, 1), in, nil); err == nil {
		t.Error("Expected error for short output")
	}
}

func BenchmarkCompact(b *testing.B) {
	const N = 1 << 20
	rng := rand.New(rand.NewSource(2))
	in := make([]int32, N)
	for i := range in {
		if rng.Intn(2) == 0 {
			in[i] = rng.Int31n(100) + 1
		}
	}
	out := make([]int32, N)

	b.SetBytes(N * ElementSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compact(N, out, in, nil); err != nil {
			b.Fatal(err)
		}
	}
}
