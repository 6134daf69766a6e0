package suites

import (
	"github.com/hweber/blockbench/pkg/bench"
	"github.com/hweber/blockbench/pkg/define"
	"github.com/hweber/blockbench/pkg/perm"
)

func init() {
	bench.Register(&bench.Suite{
		Name:   "kvwrite",
		Source: "pkg/suites/kvwrite.go",
		Defines: []define.Define{
			define.Enum(defCount, 64, 256),
			define.Const(defValSize, 64),
		},
		Cases: []*bench.Case{
			{
				Name:   "seq",
				Source: "pkg/suites/kvwrite.go",
				Run:    runWriteSeq,
			},
			{
				Name:   "rand",
				Source: "pkg/suites/kvwrite.go",
				Run:    runWriteRand,
			},
			{
				Name:   "order",
				Source: "pkg/suites/kvwrite.go",
				// exhaustive: one run per ordering of the five keys
				Defines: []define.Define{
					define.Const(defCount, 5),
					orderDefine(5),
				},
				Run: runWriteOrder,
			},
		},
	})
}

// runWriteSeq puts keys in ascending order.
func runWriteSeq(c *bench.Ctx) error {
	return runWrite(c, func(n int, out []int) {
		for i := range out {
			out[i] = i
		}
	})
}

// runWriteRand puts keys in a pseudo-random order drawn from the run's
// deterministic stream (Fisher-Yates over the identity order).
func runWriteRand(c *bench.Ctx) error {
	return runWrite(c, func(n int, out []int) {
		for i := range out {
			out[i] = i
		}
		for i := n - 1; i > 0; i-- {
			j := int(c.Rand.Uintn(uint32(i + 1)))
			out[i], out[j] = out[j], out[i]
		}
	})
}

// runWriteOrder puts keys in the exact ordering selected by the ORDER
// define, covering every ordering across the case's permutations.
func runWriteOrder(c *bench.Ctx) error {
	return runWrite(c, func(n int, out []int) {
		perm.NthInto(uint64(c.Get(defOrder, 0)), out)
	})
}

// runWrite is the shared body: build the key order, then measure the
// puts and a final flush.
func runWrite(c *bench.Ctx, orderFn func(n int, out []int)) error {
	e, err := c.Engine()
	if err != nil {
		return err
	}

	count := int(c.Get(defCount, 0))
	valSize := int(c.Get(defValSize, 0))

	order := make([]int, count)
	orderFn(count, order)

	val := make([]byte, valSize)
	c.Rand.Fill(val)

	c.Meter.Start("put", uint64(count), uint64(count*valSize))
	for _, i := range order {
		if err := e.Put(key(i), val); err != nil {
			return err
		}
	}
	if err := e.Flush(); err != nil {
		return err
	}
	c.Meter.Stop("put")

	c.Meter.Result("keys", uint64(count), uint64(count*valSize), int64(e.Keys()))
	if logical := uint64(count * valSize); logical > 0 {
		c.Meter.FResult("write_amp", uint64(count), logical,
			float64(c.Dev.Proged())/float64(logical))
	}
	return nil
}
