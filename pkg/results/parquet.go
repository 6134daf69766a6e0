package results

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// parquetRecord mirrors Record with a flat schema. Durations are stored
// as nanoseconds so the file needs no logical-type support to read.
type parquetRecord struct {
	Suite      string  `parquet:"suite,dict"`
	Case       string  `parquet:"case,dict"`
	Perm       uint64  `parquet:"perm"`
	Meas       string  `parquet:"meas,dict"`
	Kind       string  `parquet:"kind,dict"`
	Iter       uint64  `parquet:"iter"`
	Size       uint64  `parquet:"size"`
	Readed     uint64  `parquet:"readed"`
	Proged     uint64  `parquet:"proged"`
	Erased     uint64  `parquet:"erased"`
	ElapsedNS  int64   `parquet:"elapsed_ns"`
	IntValue   int64   `parquet:"int_value"`
	FloatValue float64 `parquet:"float_value"`
	MaxRSS     uint64  `parquet:"maxrss"`
}

// ParquetRecorder buffers records and writes one Parquet file on Close.
type ParquetRecorder struct {
	path string
	rows []parquetRecord
}

// CreateParquet records into a Parquet file at path. The file is written
// atomically on Close via a temp file rename.
func CreateParquet(path string) *ParquetRecorder {
	return &ParquetRecorder{path: path}
}

func (p *ParquetRecorder) Record(r Record) error {
	p.rows = append(p.rows, parquetRecord{
		Suite:      r.Suite,
		Case:       r.Case,
		Perm:       r.Perm,
		Meas:       r.Meas,
		Kind:       string(r.Kind),
		Iter:       r.Iter,
		Size:       r.Size,
		Readed:     r.Readed,
		Proged:     r.Proged,
		Erased:     r.Erased,
		ElapsedNS:  r.Elapsed.Nanoseconds(),
		IntValue:   r.IntValue,
		FloatValue: r.FloatValue,
		MaxRSS:     r.MaxRSS,
	})
	return nil
}

func (p *ParquetRecorder) Close() error {
	tmp := p.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("results: create %s: %w", tmp, err)
	}

	w := parquet.NewGenericWriter[parquetRecord](f)
	if _, err := w.Write(p.rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("results: write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("results: close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("results: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("results: rename %s: %w", tmp, err)
	}
	return nil
}
