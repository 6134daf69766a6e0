package results

import (
	"fmt"
	"time"

	"github.com/hweber/blockbench/pkg/bench"
	"github.com/hweber/blockbench/pkg/emu"
	"github.com/hweber/blockbench/pkg/procstat"
)

// Meter implements bench.Meter against one run's device and a recorder.
// Start snapshots the device counters; Stop emits the deltas and the
// elapsed wall time. Distinct measurement names may overlap; reusing a
// name before stopping it is a case bug surfaced through Err.
type Meter struct {
	dev *emu.Device
	rec Recorder

	suite string
	kase  string
	perm  uint64

	open map[string]span
	err  error
}

type span struct {
	iter   uint64
	size   uint64
	readed uint64
	proged uint64
	erased uint64
	start  time.Time
}

var _ bench.Meter = (*Meter)(nil)

// NewMeter builds the meter for one run context, recording into rec.
func NewMeter(c *bench.Ctx, rec Recorder) *Meter {
	return &Meter{
		dev:   c.Dev,
		rec:   rec,
		suite: c.Suite,
		kase:  c.Case,
		perm:  c.Perm,
		open:  make(map[string]span),
	}
}

// Start opens the measured region meas.
func (m *Meter) Start(meas string, iter, size uint64) {
	if _, ok := m.open[meas]; ok {
		m.fail(fmt.Errorf("results: measurement %q started twice", meas))
		return
	}
	m.open[meas] = span{
		iter:   iter,
		size:   size,
		readed: m.dev.Readed(),
		proged: m.dev.Proged(),
		erased: m.dev.Erased(),
		start:  time.Now(),
	}
}

// Stop closes meas and records its deltas.
func (m *Meter) Stop(meas string) {
	sp, ok := m.open[meas]
	if !ok {
		m.fail(fmt.Errorf("results: stop of measurement %q that was never started", meas))
		return
	}
	delete(m.open, meas)

	m.record(Record{
		Meas:    meas,
		Kind:    KindMeasured,
		Iter:    sp.iter,
		Size:    sp.size,
		Readed:  m.dev.Readed() - sp.readed,
		Proged:  m.dev.Proged() - sp.proged,
		Erased:  m.dev.Erased() - sp.erased,
		Elapsed: time.Since(sp.start),
	})
}

// Result records an explicit integer measurement.
func (m *Meter) Result(meas string, iter, size uint64, v int64) {
	m.record(Record{Meas: meas, Kind: KindInt, Iter: iter, Size: size, IntValue: v})
}

// FResult records an explicit floating-point measurement.
func (m *Meter) FResult(meas string, iter, size uint64, v float64) {
	m.record(Record{Meas: meas, Kind: KindFloat, Iter: iter, Size: size, FloatValue: v})
}

// Err returns the first meter or sink failure, plus any measurement left
// open when the run finished.
func (m *Meter) Err() error {
	if m.err != nil {
		return m.err
	}
	for meas := range m.open {
		return fmt.Errorf("results: measurement %q never stopped", meas)
	}
	return nil
}

func (m *Meter) record(r Record) {
	r.Suite = m.suite
	r.Case = m.kase
	r.Perm = m.perm
	r.MaxRSS = procstat.MaxRSS().Bytes
	if err := m.rec.Record(r); err != nil {
		m.fail(err)
	}
}

func (m *Meter) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}
