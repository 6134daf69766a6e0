package results

import (
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestParquetRecorderRoundTrip(t *testing.T) {
	path := t.TempDir() + "/results.parquet"

	rec := CreateParquet(path)
	r := sampleRecord()
	if err := rec.Record(r); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, err := parquet.ReadFile[parquetRecord](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("read %d rows, want 1", len(rows))
	}
	got := rows[0]
	if got.Suite != r.Suite || got.Meas != r.Meas || got.Proged != r.Proged {
		t.Errorf("row = %+v, want fields of %+v", got, r)
	}
	if got.ElapsedNS != r.Elapsed.Nanoseconds() {
		t.Errorf("elapsed_ns = %d, want %d", got.ElapsedNS, r.Elapsed.Nanoseconds())
	}
}
