package suites

import (
	"github.com/hweber/blockbench/pkg/bench"
	"github.com/hweber/blockbench/pkg/define"
	"github.com/hweber/blockbench/pkg/engine"
)

func init() {
	bench.Register(&bench.Suite{
		Name:   "devraw",
		Source: "pkg/suites/devraw.go",
		Defines: []define.Define{
			define.Enum(engine.DefBlockSize, 512, 4096),
		},
		Cases: []*bench.Case{
			{
				Name:   "progerase",
				Source: "pkg/suites/devraw.go",
				// raw device sweep used to sanity-check the accounting,
				// not a workload worth reporting by default
				Flags: bench.FlagInternal,
				Run:   runProgErase,
			},
		},
	})
}

// runProgErase programs every block end to end, then erases the device,
// bypassing the engine entirely.
func runProgErase(c *bench.Ctx) error {
	cfg := c.Dev.Config()
	buf := make([]byte, cfg.BlockSize)
	c.Rand.Fill(buf)

	size := c.Dev.Size()
	c.Meter.Start("prog", uint64(cfg.BlockCount), size)
	for b := uint32(0); b < cfg.BlockCount; b++ {
		if err := c.Dev.Prog(b, 0, buf); err != nil {
			return err
		}
	}
	c.Meter.Stop("prog")

	c.Meter.Start("erase", uint64(cfg.BlockCount), size)
	for b := uint32(0); b < cfg.BlockCount; b++ {
		if err := c.Dev.Erase(b); err != nil {
			return err
		}
	}
	c.Meter.Stop("erase")
	return nil
}
