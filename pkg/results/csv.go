package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader is the column layout consumed by the plotting scripts.
var csvHeader = []string{
	"suite", "case", "perm", "meas", "kind", "iter", "size",
	"readed", "proged", "erased", "elapsed_ns",
	"int_value", "float_value", "maxrss",
}

// CSVRecorder streams records as CSV rows.
type CSVRecorder struct {
	w     *csv.Writer
	close io.Closer
}

// NewCSVRecorder writes CSV to w, emitting the header immediately.
func NewCSVRecorder(w io.Writer) (*CSVRecorder, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("results: write csv header: %w", err)
	}
	return &CSVRecorder{w: cw}, nil
}

// CreateCSV creates path and records into it; Close closes the file.
func CreateCSV(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("results: create %s: %w", path, err)
	}
	rec, err := NewCSVRecorder(f)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	rec.close = f
	return rec, nil
}

func (c *CSVRecorder) Record(r Record) error {
	row := []string{
		r.Suite,
		r.Case,
		strconv.FormatUint(r.Perm, 10),
		r.Meas,
		string(r.Kind),
		strconv.FormatUint(r.Iter, 10),
		strconv.FormatUint(r.Size, 10),
		strconv.FormatUint(r.Readed, 10),
		strconv.FormatUint(r.Proged, 10),
		strconv.FormatUint(r.Erased, 10),
		strconv.FormatInt(r.Elapsed.Nanoseconds(), 10),
		strconv.FormatInt(r.IntValue, 10),
		strconv.FormatFloat(r.FloatValue, 'g', -1, 64),
		strconv.FormatUint(r.MaxRSS, 10),
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("results: write csv row: %w", err)
	}
	return nil
}

func (c *CSVRecorder) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		if c.close != nil {
			c.close.Close()
		}
		return fmt.Errorf("results: flush csv: %w", err)
	}
	if c.close != nil {
		if err := c.close.Close(); err != nil {
			return fmt.Errorf("results: close csv: %w", err)
		}
	}
	return nil
}
