// Package results records benchmark measurements.
//
// The meter here implements the measurement interface case bodies call
// (start/stop regions plus explicit results). Records flow to pluggable
// sinks: CSV for the analysis scripts, Parquet for columnar tooling,
// memory for tests. A finished results file can optionally be uploaded
// to S3.
package results

import "time"

// Kind distinguishes how a record was produced.
type Kind string

const (
	// KindMeasured is a start/stop region with device byte deltas.
	KindMeasured Kind = "meas"

	// KindInt is an explicit integer result.
	KindInt Kind = "result"

	// KindFloat is an explicit floating-point result.
	KindFloat Kind = "fresult"
)

// Record is one measurement row.
type Record struct {
	Suite string
	Case  string
	Perm  uint64

	Meas string
	Kind Kind

	// Iter and Size describe the work the measurement covers: operation
	// count and total input bytes.
	Iter uint64
	Size uint64

	// Device byte deltas over the measured region. Zero for explicit
	// results.
	Readed uint64
	Proged uint64
	Erased uint64

	// Elapsed is the wall time of the measured region.
	Elapsed time.Duration

	// IntValue / FloatValue carry explicit results.
	IntValue   int64
	FloatValue float64

	// MaxRSS is the process peak RSS sampled when the record was made;
	// zero when the platform has no probe.
	MaxRSS uint64
}

// Recorder is a sink for measurement records.
type Recorder interface {
	Record(Record) error
	Close() error
}

// MemRecorder keeps records in memory. Tests use it.
type MemRecorder struct {
	Records []Record
	closed  bool
}

func (m *MemRecorder) Record(r Record) error {
	m.Records = append(m.Records, r)
	return nil
}

func (m *MemRecorder) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MemRecorder) Closed() bool { return m.closed }

// MultiRecorder fans records out to several sinks.
type MultiRecorder []Recorder

func (mr MultiRecorder) Record(r Record) error {
	for _, rec := range mr {
		if err := rec.Record(r); err != nil {
			return err
		}
	}
	return nil
}

func (mr MultiRecorder) Close() error {
	var first error
	for _, rec := range mr {
		if err := rec.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
