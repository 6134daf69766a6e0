// Package define models the tunable parameters of a benchmark case and
// the mixed-radix resolution that maps a flat run index to one concrete
// value per define.
//
// A define is either fixed (one permutation) or enumerable through a
// resolver callback over a range of local indices. A case's defines form
// an ordered sequence; the product of their permutation counts is the
// case's total permutation count, and every flat index in that range
// selects exactly one combination of values.
package define

import "fmt"

// Value is the numeric type all defines resolve to. Tunables are sizes,
// counts, and mode selectors, so a signed 64-bit integer covers them.
type Value = int64

// Resolver produces the value for local index i. It must be total over
// [0, permutations) and must not depend on anything but data and i, or
// runs stop being reproducible.
type Resolver func(data any, i int) Value

// Define is a single named tunable.
type Define struct {
	Name string

	// Resolve computes the value for a local index. A nil Resolve means
	// the define is a constant carried in Data.
	Resolve Resolver

	// Data is the opaque, immutable context handed back to Resolve.
	Data any

	// Permutations is the number of distinct local indices this define
	// admits. Zero is treated as one.
	Permutations int
}

// permutations returns the effective permutation count, normalizing the
// zero value of Define to a single permutation.
func (d Define) permutations() int {
	if d.Permutations < 1 {
		return 1
	}
	return d.Permutations
}

// Value resolves the define at local index i.
func (d Define) Value(i int) Value {
	if d.Resolve == nil {
		v, _ := d.Data.(Value)
		return v
	}
	return d.Resolve(d.Data, i)
}

// Const returns a fixed define. It is still re-resolved into the Set on
// every run like any other define; the value just never varies.
func Const(name string, v Value) Define {
	return Define{Name: name, Data: v, Permutations: 1}
}

// Enum returns a define enumerating the given values in order.
func Enum(name string, values ...Value) Define {
	vals := make([]Value, len(values))
	copy(vals, values)
	return Define{
		Name: name,
		Resolve: func(data any, i int) Value {
			return data.([]Value)[i]
		},
		Data:         vals,
		Permutations: len(vals),
	}
}

// Range returns a define enumerating start, start+step, ... up to but not
// including stop. step must be nonzero and move toward stop.
func Range(name string, start, stop, step Value) (Define, error) {
	if step == 0 {
		return Define{}, fmt.Errorf("define %s: range step must be nonzero", name)
	}
	n := 0
	if step > 0 && start < stop {
		n = int((stop - start + step - 1) / step)
	} else if step < 0 && start > stop {
		n = int((start - stop + (-step) - 1) / (-step))
	}
	if n == 0 {
		return Define{}, fmt.Errorf("define %s: empty range [%d, %d) step %d", name, start, stop, step)
	}
	d := Define{
		Name: name,
		Resolve: func(data any, i int) Value {
			r := data.([2]Value)
			return r[0] + Value(i)*r[1]
		},
		Data:         [2]Value{start, step},
		Permutations: n,
	}
	return d, nil
}

// Set holds the materialized values for one run, keyed by define name.
// It is rebuilt for every flat index; a Set from one run must not be
// carried into the next.
type Set map[string]Value

// Get returns the value for name, or def when the set has no such define.
func (s Set) Get(name string, def Value) Value {
	if v, ok := s[name]; ok {
		return v
	}
	return def
}

// Merge layers define sequences by name, later layers shadowing earlier
// ones. The position of a shadowed define is the position of its first
// (widest-scope) declaration, so digit significance in the flat index is
// stable no matter which layer supplies the value; names new to later
// layers append in declaration order.
func Merge(layers ...[]Define) []Define {
	var out []Define
	pos := make(map[string]int)
	for _, layer := range layers {
		for _, d := range layer {
			if i, ok := pos[d.Name]; ok {
				out[i] = d
				continue
			}
			pos[d.Name] = len(out)
			out = append(out, d)
		}
	}
	return out
}

// TotalPermutations returns the product of the defines' permutation
// counts. An empty sequence has exactly one permutation.
func TotalPermutations(defines []Define) uint64 {
	total := uint64(1)
	for _, d := range defines {
		total *= uint64(d.permutations())
	}
	return total
}

// ResolveCase decomposes flat into one local index per define and
// materializes every value into a fresh Set.
//
// The first define in the sequence is the fastest-varying digit: local
// index j is (flat / ∏ earlier counts) mod count_j. Resolution is a
// bijection between [0, TotalPermutations) and the Cartesian product of
// local index ranges, so iterating flat indices covers every combination
// exactly once. flat out of range is a caller bug and panics.
func ResolveCase(defines []Define, flat uint64) Set {
	if total := TotalPermutations(defines); flat >= total {
		panic(fmt.Sprintf("define: flat index %d out of range [0, %d)", flat, total))
	}

	set := make(Set, len(defines))
	remaining := flat
	for _, d := range defines {
		n := uint64(d.permutations())
		set[d.Name] = d.Value(int(remaining % n))
		remaining /= n
	}
	// remaining == 0 here by construction
	return set
}

// LocalIndices returns just the per-define local indices for flat,
// without invoking any resolvers. Reporting uses this to label runs.
func LocalIndices(defines []Define, flat uint64) []int {
	if total := TotalPermutations(defines); flat >= total {
		panic(fmt.Sprintf("define: flat index %d out of range [0, %d)", flat, total))
	}
	out := make([]int, len(defines))
	for j, d := range defines {
		n := uint64(d.permutations())
		out[j] = int(flat % n)
		flat /= n
	}
	return out
}
