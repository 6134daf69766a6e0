package emu

import (
	"bytes"
	"testing"
)

func newDevice(t *testing.T) *Device {
	t.Helper()
	d, err := New(Config{BlockSize: 64, BlockCount: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{BlockSize: 0, BlockCount: 4}); err == nil {
		t.Error("zero block size should error")
	}
	if _, err := New(Config{BlockSize: 64, BlockCount: 0}); err == nil {
		t.Error("zero block count should error")
	}
}

func TestReadBackAndCounters(t *testing.T) {
	d := newDevice(t)

	data := []byte("hello, device")
	if err := d.Prog(1, 8, data); err != nil {
		t.Fatalf("Prog: %v", err)
	}

	buf := make([]byte, len(data))
	if err := d.Read(1, 8, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf, data) {
		t.Errorf("read back %q, want %q", buf, data)
	}

	if d.Proged() != uint64(len(data)) {
		t.Errorf("Proged = %d, want %d", d.Proged(), len(data))
	}
	if d.Readed() != uint64(len(data)) {
		t.Errorf("Readed = %d, want %d", d.Readed(), len(data))
	}
	if d.Erased() != 0 {
		t.Errorf("Erased = %d, want 0", d.Erased())
	}
}

func TestFreshDeviceReadsEraseValue(t *testing.T) {
	d := newDevice(t)
	buf := make([]byte, 16)
	if err := d.Read(0, 0, buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, b := range buf {
		if b != DefaultEraseValue {
			t.Fatalf("byte %d = %#x, want erase value %#x", i, b, DefaultEraseValue)
		}
	}
}

func TestProgRequiresErased(t *testing.T) {
	d := newDevice(t)

	if err := d.Prog(0, 0, []byte{1, 2, 3}); err != nil {
		t.Fatalf("first Prog: %v", err)
	}
	if err := d.Prog(0, 0, []byte{4}); err == nil {
		t.Error("Prog over programmed bytes should error")
	}

	if err := d.Erase(0); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if err := d.Prog(0, 0, []byte{4}); err != nil {
		t.Errorf("Prog after erase: %v", err)
	}
}

func TestEraseCounters(t *testing.T) {
	d := newDevice(t)
	if err := d.Erase(2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if d.Erased() != 64 {
		t.Errorf("Erased = %d, want block size 64", d.Erased())
	}
}

func TestBounds(t *testing.T) {
	d := newDevice(t)
	buf := make([]byte, 8)

	if err := d.Read(4, 0, buf); err == nil {
		t.Error("read past last block should error")
	}
	if err := d.Prog(0, 60, buf); err == nil {
		t.Error("prog across block end should error")
	}
	if err := d.Erase(4); err == nil {
		t.Error("erase past last block should error")
	}
}

func TestSize(t *testing.T) {
	d := newDevice(t)
	if d.Size() != 256 {
		t.Errorf("Size = %d, want 256", d.Size())
	}
}
