package engine

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hweber/blockbench/pkg/emu"
)

// ErrFull is returned when the device has no room for another record.
var ErrFull = errors.New("engine: device full")

// ErrNotFound is returned by Get for keys that were never put.
var ErrNotFound = errors.New("engine: key not found")

// recHeaderSize is the encoded record header: u16 key length, u32 value
// length.
const recHeaderSize = 6

type location struct {
	block uint32
	off   uint32
	vlen  uint32
	klen  uint16
}

// Engine is an append-log key-value store. Records are buffered up to
// CacheSize bytes and programmed in PROG_SIZE-aligned writes; lookups
// read back in READ_SIZE-aligned chunks. It exists to turn benchmark
// case bodies into realistic device traffic.
type Engine struct {
	cfg Config
	dev *emu.Device

	block uint32 // block the cache will be programmed into
	off   uint32 // programmed bytes in the current block

	cache   []byte
	pending []pendingRec

	index map[string]location
}

type pendingRec struct {
	key string
	off uint32 // offset of the record inside cache
}

// New mounts an engine over dev. The device geometry must match the
// configuration.
func New(cfg Config, dev *emu.Device) (*Engine, error) {
	dcfg := dev.Config()
	if dcfg.BlockSize != cfg.BlockSize || dcfg.BlockCount != cfg.BlockCount {
		return nil, fmt.Errorf("engine: config geometry %dx%d does not match device %dx%d",
			cfg.BlockSize, cfg.BlockCount, dcfg.BlockSize, dcfg.BlockCount)
	}
	if cfg.CacheSize > cfg.BlockSize {
		cfg.CacheSize = cfg.BlockSize
	}
	return &Engine{
		cfg:   cfg,
		dev:   dev,
		cache: make([]byte, 0, cfg.CacheSize),
		index: make(map[string]location),
	}, nil
}

// Put appends a record for key. Later puts for the same key shadow
// earlier ones; space is never reclaimed.
func (e *Engine) Put(key string, val []byte) error {
	rec := recHeaderSize + len(key) + len(val)
	if rec > int(e.cfg.BlockSize) {
		return fmt.Errorf("engine: record for %q (%d bytes) exceeds block size %d", key, rec, e.cfg.BlockSize)
	}
	if len(e.cache)+rec > int(e.cfg.CacheSize) {
		if err := e.Flush(); err != nil {
			return err
		}
	}

	e.pending = append(e.pending, pendingRec{key: key, off: uint32(len(e.cache))})

	var hdr [recHeaderSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(len(key)))
	binary.LittleEndian.PutUint32(hdr[2:6], uint32(len(val)))
	e.cache = append(e.cache, hdr[:]...)
	e.cache = append(e.cache, key...)
	e.cache = append(e.cache, val...)

	// a record larger than the cache goes straight to the device
	if len(e.cache) >= int(e.cfg.CacheSize) {
		return e.Flush()
	}
	return nil
}

// Get reads the value for key back from the device. Buffered records are
// flushed first so every hit costs real read traffic.
func (e *Engine) Get(key string) ([]byte, error) {
	if err := e.Flush(); err != nil {
		return nil, err
	}
	loc, ok := e.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}

	rec := uint32(recHeaderSize) + uint32(loc.klen) + loc.vlen
	buf, err := e.readAligned(loc.block, loc.off, rec)
	if err != nil {
		return nil, err
	}
	val := make([]byte, loc.vlen)
	copy(val, buf[recHeaderSize+uint32(loc.klen):rec])
	return val, nil
}

// Flush programs any buffered records, padding the write up to the next
// PROG_SIZE boundary.
func (e *Engine) Flush() error {
	if len(e.cache) == 0 {
		return nil
	}

	padded := alignUp(uint32(len(e.cache)), e.cfg.ProgSize)
	if e.off+padded > e.cfg.BlockSize {
		if e.block+1 >= e.cfg.BlockCount {
			return ErrFull
		}
		e.block++
		e.off = 0
	}

	buf := make([]byte, padded)
	copy(buf, e.cache)
	if err := e.dev.Prog(e.block, e.off, buf); err != nil {
		return fmt.Errorf("engine: flush: %w", err)
	}

	for _, p := range e.pending {
		klen := binary.LittleEndian.Uint16(e.cache[p.off : p.off+2])
		vlen := binary.LittleEndian.Uint32(e.cache[p.off+2 : p.off+6])
		e.index[p.key] = location{
			block: e.block,
			off:   e.off + p.off,
			klen:  klen,
			vlen:  vlen,
		}
	}

	e.off += padded
	e.cache = e.cache[:0]
	e.pending = e.pending[:0]
	return nil
}

// Keys returns the number of distinct keys stored.
func (e *Engine) Keys() int { return len(e.index) }

// readAligned reads n bytes starting at (block, off), widening the read
// to READ_SIZE-aligned chunks the way a real cache-line read would.
func (e *Engine) readAligned(block, off, n uint32) ([]byte, error) {
	start := alignDown(off, e.cfg.ReadSize)
	end := alignUp(off+n, e.cfg.ReadSize)
	if end > e.cfg.BlockSize {
		end = e.cfg.BlockSize
	}
	buf := make([]byte, end-start)
	if err := e.dev.Read(block, start, buf); err != nil {
		return nil, fmt.Errorf("engine: read: %w", err)
	}
	return buf[off-start:], nil
}

func alignUp(v, a uint32) uint32 {
	return (v + a - 1) / a * a
}

func alignDown(v, a uint32) uint32 {
	return v / a * a
}
