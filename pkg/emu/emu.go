// Package emu provides a RAM-backed emulated block device that counts
// the bytes read, programmed, and erased through it.
//
// The counters are the raw material for benchmark measurements: a meter
// snapshots them before a measured region and reports the deltas after.
// The device enforces flash-like discipline: programs may only touch
// erased bytes, so engine bugs show up as errors instead of silently
// skewing the counts.
package emu

import "fmt"

// DefaultEraseValue is the byte value an erased block reads back as.
const DefaultEraseValue byte = 0xff

// Config describes the device geometry.
type Config struct {
	// BlockSize is the erase unit in bytes.
	BlockSize uint32

	// BlockCount is the number of erase blocks.
	BlockCount uint32

	// EraseValue is the byte value of erased storage. Zero means
	// DefaultEraseValue.
	EraseValue byte
}

// Device is an in-memory block device with I/O accounting.
type Device struct {
	cfg     Config
	data    []byte
	readed  uint64
	proged  uint64
	erasedB uint64
}

// New creates a device with every block in the erased state.
func New(cfg Config) (*Device, error) {
	if cfg.BlockSize == 0 || cfg.BlockCount == 0 {
		return nil, fmt.Errorf("emu: geometry %dx%d blocks invalid", cfg.BlockSize, cfg.BlockCount)
	}
	if cfg.EraseValue == 0 {
		cfg.EraseValue = DefaultEraseValue
	}
	d := &Device{
		cfg:  cfg,
		data: make([]byte, uint64(cfg.BlockSize)*uint64(cfg.BlockCount)),
	}
	for i := range d.data {
		d.data[i] = cfg.EraseValue
	}
	return d, nil
}

// Config returns the device geometry.
func (d *Device) Config() Config { return d.cfg }

// Size returns the device capacity in bytes.
func (d *Device) Size() uint64 {
	return uint64(d.cfg.BlockSize) * uint64(d.cfg.BlockCount)
}

// Read copies len(buf) bytes from the given block offset into buf.
func (d *Device) Read(block, off uint32, buf []byte) error {
	if err := d.bounds("read", block, off, len(buf)); err != nil {
		return err
	}
	base := uint64(block)*uint64(d.cfg.BlockSize) + uint64(off)
	copy(buf, d.data[base:])
	d.readed += uint64(len(buf))
	return nil
}

// Prog writes buf at the given block offset. The target range must still
// be in the erased state; programming over programmed bytes is an error.
func (d *Device) Prog(block, off uint32, buf []byte) error {
	if err := d.bounds("prog", block, off, len(buf)); err != nil {
		return err
	}
	base := uint64(block)*uint64(d.cfg.BlockSize) + uint64(off)
	for i := range buf {
		if d.data[base+uint64(i)] != d.cfg.EraseValue {
			return fmt.Errorf("emu: prog of unerased byte at block %d offset %d", block, off+uint32(i))
		}
	}
	copy(d.data[base:], buf)
	d.proged += uint64(len(buf))
	return nil
}

// Erase resets a whole block to the erase value.
func (d *Device) Erase(block uint32) error {
	if block >= d.cfg.BlockCount {
		return fmt.Errorf("emu: erase of block %d beyond %d", block, d.cfg.BlockCount)
	}
	base := uint64(block) * uint64(d.cfg.BlockSize)
	for i := uint64(0); i < uint64(d.cfg.BlockSize); i++ {
		d.data[base+i] = d.cfg.EraseValue
	}
	d.erasedB += uint64(d.cfg.BlockSize)
	return nil
}

// Readed returns the cumulative bytes read since New.
func (d *Device) Readed() uint64 { return d.readed }

// Proged returns the cumulative bytes programmed since New.
func (d *Device) Proged() uint64 { return d.proged }

// Erased returns the cumulative bytes erased since New.
func (d *Device) Erased() uint64 { return d.erasedB }

func (d *Device) bounds(op string, block, off uint32, n int) error {
	if block >= d.cfg.BlockCount {
		return fmt.Errorf("emu: %s of block %d beyond %d", op, block, d.cfg.BlockCount)
	}
	if uint64(off)+uint64(n) > uint64(d.cfg.BlockSize) {
		return fmt.Errorf("emu: %s of %d bytes at offset %d exceeds block size %d", op, n, off, d.cfg.BlockSize)
	}
	return nil
}
