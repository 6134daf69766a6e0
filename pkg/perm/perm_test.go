package perm

import (
	"fmt"
	"testing"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 6},
		{5, 120},
		{12, 479001600},
		{20, 2432902008176640000},
	}

	for _, tt := range tests {
		if got := Factorial(tt.n); got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFactorialRecurrence(t *testing.T) {
	for n := 1; n <= 20; n++ {
		if Factorial(n) != uint64(n)*Factorial(n-1) {
			t.Errorf("Factorial(%d) != %d * Factorial(%d)", n, n, n-1)
		}
	}
}

func TestFactorialPanics(t *testing.T) {
	for _, n := range []int{-1, 21} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Factorial(%d) should panic", n)
				}
			}()
			Factorial(n)
		}()
	}
}

func TestNthVectors(t *testing.T) {
	tests := []struct {
		index uint64
		n     int
		want  []int
	}{
		{0, 0, []int{}},
		{0, 1, []int{0}},
		{0, 3, []int{0, 1, 2}},
		{1, 3, []int{0, 2, 1}},
		{2, 3, []int{1, 0, 2}},
		{3, 3, []int{1, 2, 0}},
		{4, 3, []int{2, 0, 1}},
		{5, 3, []int{2, 1, 0}},
	}

	for _, tt := range tests {
		got := Nth(tt.index, tt.n)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("Nth(%d, %d) = %v, want %v", tt.index, tt.n, got, tt.want)
		}
	}
}

func TestNthBijective(t *testing.T) {
	const n = 4
	total := Factorial(n)

	seen := make(map[string]uint64, total)
	for i := uint64(0); i < total; i++ {
		p := Nth(i, n)

		// must be a permutation of {0..n-1}
		var present [n]bool
		for _, v := range p {
			if v < 0 || v >= n || present[v] {
				t.Fatalf("Nth(%d, %d) = %v is not a permutation", i, n, p)
			}
			present[v] = true
		}

		key := fmt.Sprint(p)
		if prev, dup := seen[key]; dup {
			t.Fatalf("Nth(%d, %d) duplicates Nth(%d, %d): %v", i, n, prev, n, p)
		}
		seen[key] = i
	}
	if len(seen) != int(total) {
		t.Errorf("covered %d orderings, want %d", len(seen), total)
	}
}

func TestNthIntoReuse(t *testing.T) {
	buf := make([]int, 3)
	NthInto(5, buf)
	NthInto(0, buf)
	if fmt.Sprint(buf) != fmt.Sprint([]int{0, 1, 2}) {
		t.Errorf("NthInto(0) into reused buffer = %v", buf)
	}
}

func TestNthPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Nth(6, 3) should panic")
		}
	}()
	Nth(6, 3)
}
