package suites

import (
	"github.com/hweber/blockbench/pkg/bench"
	"github.com/hweber/blockbench/pkg/define"
)

func init() {
	bench.Register(&bench.Suite{
		Name:   "kvread",
		Source: "pkg/suites/kvread.go",
		Defines: []define.Define{
			define.Enum(defCount, 64, 256),
			define.Const(defValSize, 64),
		},
		Cases: []*bench.Case{
			{
				Name:   "seq",
				Source: "pkg/suites/kvread.go",
				Run:    runReadSeq,
			},
			{
				Name:   "rand",
				Source: "pkg/suites/kvread.go",
				Run:    runReadRand,
			},
		},
	})
}

// runReadSeq reads every key back in insertion order. Population happens
// outside the measured region so only the gets are counted.
func runReadSeq(c *bench.Ctx) error {
	return runRead(c, func(n, i int) int { return i })
}

// runReadRand reads count keys in a pseudo-random order, with repeats.
func runReadRand(c *bench.Ctx) error {
	return runRead(c, func(n, i int) int {
		return int(c.Rand.Uintn(uint32(n)))
	})
}

func runRead(c *bench.Ctx, pick func(n, i int) int) error {
	e, err := c.Engine()
	if err != nil {
		return err
	}

	count := int(c.Get(defCount, 0))
	valSize := int(c.Get(defValSize, 0))

	val := make([]byte, valSize)
	c.Rand.Fill(val)
	for i := 0; i < count; i++ {
		if err := e.Put(key(i), val); err != nil {
			return err
		}
	}
	if err := e.Flush(); err != nil {
		return err
	}

	c.Meter.Start("get", uint64(count), uint64(count*valSize))
	for i := 0; i < count; i++ {
		if _, err := e.Get(key(pick(count, i))); err != nil {
			return err
		}
	}
	c.Meter.Stop("get")

	if logical := uint64(count * valSize); logical > 0 {
		c.Meter.FResult("read_amp", uint64(count), logical,
			float64(c.Dev.Readed())/float64(logical))
	}
	return nil
}
