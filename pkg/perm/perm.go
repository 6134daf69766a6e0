// Package perm decodes flat indices into concrete orderings of n symbols
// using the factorial number system (Lehmer code).
//
// Nth is a bijection between [0, n!) and the n! orderings of {0..n-1}:
// iterating indices 0..n!-1 visits every ordering exactly once. Benchmark
// cases use this for exhaustive coverage of small access-order spaces.
package perm

import "fmt"

// MaxN is the largest n whose factorial fits in a uint64.
const MaxN = 20

// Factorial returns n!. Factorial(0) == 1.
//
// n > MaxN overflows uint64 and is a caller bug; it panics rather than
// returning a wrapped value.
func Factorial(n int) uint64 {
	if n < 0 || n > MaxN {
		panic(fmt.Sprintf("perm: factorial(%d) out of range [0, %d]", n, MaxN))
	}
	f := uint64(1)
	for i := 2; i <= n; i++ {
		f *= uint64(i)
	}
	return f
}

// Nth returns the index-th ordering of the symbols {0..n-1}.
//
// Position k is filled with the (index / (n-1-k)!)-th smallest symbol not
// yet placed, and index is reduced modulo that radix. index must be in
// [0, n!); violating the precondition panics.
func Nth(index uint64, n int) []int {
	out := make([]int, n)
	NthInto(index, out)
	return out
}

// NthInto is Nth without the allocation: it decodes index into out, whose
// length determines n. Benchmark bodies reuse one buffer across indices.
func NthInto(index uint64, out []int) {
	n := len(out)
	if total := Factorial(n); index >= total {
		panic(fmt.Sprintf("perm: index %d out of range [0, %d!)", index, n))
	}

	// remaining symbols in ascending order
	for i := range out {
		out[i] = i
	}

	for k := 0; k < n; k++ {
		radix := Factorial(n - 1 - k)
		ord := int(index / radix)
		index %= radix

		// take the ord-th remaining symbol, shifting the rest down
		sym := out[k+ord]
		copy(out[k+1:k+1+ord], out[k:k+ord])
		out[k] = sym
	}
}
