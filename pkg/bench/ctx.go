package bench

import (
	"fmt"

	"github.com/hweber/blockbench/pkg/define"
	"github.com/hweber/blockbench/pkg/emu"
	"github.com/hweber/blockbench/pkg/engine"
	"github.com/hweber/blockbench/pkg/prng"
)

// Meter is the measurement interface case bodies call around engine
// operations. Implementations tag measured regions and explicit results
// with the iteration count and input size so throughput can be derived.
type Meter interface {
	// Start opens a measured region. iter and size describe the work the
	// region performs (operation count and total bytes).
	Start(meas string, iter, size uint64)

	// Stop closes the region opened by the matching Start and records
	// the device byte deltas and elapsed time.
	Stop(meas string)

	// Result records an explicit integer measurement outside any region.
	Result(meas string, iter, size uint64, v int64)

	// FResult records an explicit floating-point measurement.
	FResult(meas string, iter, size uint64, v float64)
}

// nopMeter records nothing; it backs runs without a recorder.
type nopMeter struct{}

func (nopMeter) Start(string, uint64, uint64)            {}
func (nopMeter) Stop(string)                             {}
func (nopMeter) Result(string, uint64, uint64, int64)    {}
func (nopMeter) FResult(string, uint64, uint64, float64) {}

// Ctx is everything one benchmark run receives: the resolved define set,
// the engine configuration built from it, a fresh instrumented device,
// a per-run deterministic PRNG stream, and the meter.
//
// A Ctx belongs to exactly one (case, flat index) pair. It is rebuilt
// before every run, discarding the previous run's resolved values, and
// exactly one Ctx is in flight per process.
type Ctx struct {
	Suite string
	Case  string
	Perm  uint64

	Set   define.Set
	Cfg   engine.Config
	Dev   *emu.Device
	Rand  prng.State
	Meter Meter
}

// newCtx resolves flat against the merged defines and materializes the
// run context. The device starts fully erased with zeroed counters.
func newCtx(s *Suite, c *Case, defines []define.Define, flat uint64, meter Meter) (*Ctx, error) {
	set := define.ResolveCase(defines, flat)

	cfg, err := engine.ConfigFromSet(set)
	if err != nil {
		return nil, fmt.Errorf("bench: %s:%s:%d: %w", s.Name, c.Name, flat, err)
	}
	dev, err := emu.New(emu.Config{
		BlockSize:  cfg.BlockSize,
		BlockCount: cfg.BlockCount,
		EraseValue: cfg.EraseValue,
	})
	if err != nil {
		return nil, fmt.Errorf("bench: %s:%s:%d: %w", s.Name, c.Name, flat, err)
	}
	if meter == nil {
		meter = nopMeter{}
	}
	return &Ctx{
		Suite: s.Name,
		Case:  c.Name,
		Perm:  flat,
		Set:   set,
		Cfg:   cfg,
		Dev:   dev,
		Rand:  runSeed(cfg.Seed, flat),
		Meter: meter,
	}, nil
}

// Engine mounts a fresh engine over the run's device.
func (c *Ctx) Engine() (*engine.Engine, error) {
	return engine.New(c.Cfg, c.Dev)
}

// Get returns the resolved value of a define, or def when the run's
// define sequence does not declare it.
func (c *Ctx) Get(name string, def define.Value) define.Value {
	return c.Set.Get(name, def)
}

// runSeed derives the per-run PRNG stream from the declared seed and the
// flat index, so every permutation gets its own reproducible stream.
func runSeed(seed uint32, flat uint64) prng.State {
	x := uint64(seed)*0x9e3779b97f4a7c15 + flat + 1
	x ^= x >> 33
	return prng.State(uint32(x) ^ uint32(x>>32))
}
