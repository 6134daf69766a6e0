package engine

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/hweber/blockbench/pkg/emu"
)

func newEngine(t *testing.T, cfg Config) (*Engine, *emu.Device) {
	t.Helper()
	dev, err := emu.New(emu.Config{BlockSize: cfg.BlockSize, BlockCount: cfg.BlockCount})
	if err != nil {
		t.Fatalf("emu.New: %v", err)
	}
	e, err := New(cfg, dev)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, dev
}

func testConfig() Config {
	return Config{
		ReadSize:   16,
		ProgSize:   16,
		BlockSize:  256,
		BlockCount: 16,
		CacheSize:  64,
		Seed:       1,
	}
}

func TestNewGeometryMismatch(t *testing.T) {
	dev, err := emu.New(emu.Config{BlockSize: 128, BlockCount: 4})
	if err != nil {
		t.Fatalf("emu.New: %v", err)
	}
	if _, err := New(testConfig(), dev); err == nil {
		t.Error("mismatched geometry should error")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	e, _ := newEngine(t, testConfig())

	want := map[string][]byte{}
	for i := 0; i < 20; i++ {
		k := fmt.Sprintf("key%03d", i)
		v := bytes.Repeat([]byte{byte(i + 1)}, 10+i)
		want[k] = v
		if err := e.Put(k, v); err != nil {
			t.Fatalf("Put(%s): %v", k, err)
		}
	}

	for k, v := range want {
		got, err := e.Get(k)
		if err != nil {
			t.Fatalf("Get(%s): %v", k, err)
		}
		if !bytes.Equal(got, v) {
			t.Errorf("Get(%s) = %v, want %v", k, got, v)
		}
	}
	if e.Keys() != len(want) {
		t.Errorf("Keys = %d, want %d", e.Keys(), len(want))
	}
}

func TestGetMissing(t *testing.T) {
	e, _ := newEngine(t, testConfig())
	if _, err := e.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get of missing key = %v, want ErrNotFound", err)
	}
}

func TestPutShadowsEarlier(t *testing.T) {
	e, _ := newEngine(t, testConfig())
	if err := e.Put("k", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := e.Put("k", []byte("new")); err != nil {
		t.Fatal(err)
	}
	got, err := e.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}
	if e.Keys() != 1 {
		t.Errorf("Keys = %d, want 1", e.Keys())
	}
}

func TestFlushAlignsToProgSize(t *testing.T) {
	e, dev := newEngine(t, testConfig())

	if err := e.Put("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}
	if dev.Proged()%16 != 0 {
		t.Errorf("Proged = %d, want multiple of PROG_SIZE 16", dev.Proged())
	}
	if dev.Proged() == 0 {
		t.Error("flush programmed nothing")
	}
}

func TestReadSizeWidensReads(t *testing.T) {
	small := testConfig()
	small.ReadSize = 1
	big := testConfig()
	big.ReadSize = 64

	read := func(cfg Config) uint64 {
		e, dev := newEngine(t, cfg)
		if err := e.Put("k", []byte("v")); err != nil {
			t.Fatal(err)
		}
		if _, err := e.Get("k"); err != nil {
			t.Fatal(err)
		}
		return dev.Readed()
	}

	if rs, rb := read(small), read(big); rb <= rs {
		t.Errorf("READ_SIZE 64 read %d bytes, READ_SIZE 1 read %d; want widening", rb, rs)
	}
}

func TestRecordTooLarge(t *testing.T) {
	e, _ := newEngine(t, testConfig())
	if err := e.Put("k", make([]byte, 512)); err == nil {
		t.Error("record above block size should error")
	}
}

func TestDeviceFull(t *testing.T) {
	cfg := testConfig()
	cfg.BlockCount = 2
	e, _ := newEngine(t, cfg)

	val := make([]byte, 100)
	var err error
	for i := 0; i < 100; i++ {
		if err = e.Put(fmt.Sprintf("key%03d", i), val); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrFull) {
		t.Errorf("filling device = %v, want ErrFull", err)
	}
}
