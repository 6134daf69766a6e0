// Package engine provides the storage engine the shipped benchmark
// suites exercise: a small append-log key-value store over an emulated
// block device.
//
// The harness core treats the engine as opaque: it only materializes a
// Config from resolved defines and hands it to the case body. The engine
// here is a stand-in collaborator so that suites produce real read,
// program, and erase traffic.
package engine

import (
	"fmt"

	"github.com/hweber/blockbench/pkg/define"
)

// Names of the implicit defines every case inherits. Suites and cases
// may shadow any of them, and -D overrides shadow both.
const (
	DefReadSize   = "READ_SIZE"
	DefProgSize   = "PROG_SIZE"
	DefBlockSize  = "BLOCK_SIZE"
	DefBlockCount = "BLOCK_COUNT"
	DefDiskSize   = "DISK_SIZE"
	DefCacheSize  = "CACHE_SIZE"
	DefEraseValue = "ERASE_VALUE"
	DefSeed       = "SEED"
)

// Default values for the implicit defines.
const (
	DefaultReadSize   = 1
	DefaultProgSize   = 1
	DefaultBlockSize  = 4096
	DefaultDiskSize   = 1024 * 1024
	DefaultCacheSize  = 64
	DefaultEraseValue = 0xff
	DefaultSeed       = 42
)

// ImplicitDefines returns the lowest-precedence define layer. BLOCK_COUNT
// is derived from DISK_SIZE/BLOCK_SIZE at resolution time when left at
// its zero default.
func ImplicitDefines() []define.Define {
	return []define.Define{
		define.Const(DefReadSize, DefaultReadSize),
		define.Const(DefProgSize, DefaultProgSize),
		define.Const(DefBlockSize, DefaultBlockSize),
		define.Const(DefDiskSize, DefaultDiskSize),
		define.Const(DefBlockCount, 0),
		define.Const(DefCacheSize, DefaultCacheSize),
		define.Const(DefEraseValue, DefaultEraseValue),
		define.Const(DefSeed, DefaultSeed),
	}
}

// Config is the engine configuration a case body receives, materialized
// from one resolved define set.
type Config struct {
	ReadSize   uint32
	ProgSize   uint32
	BlockSize  uint32
	BlockCount uint32
	CacheSize  uint32
	EraseValue byte
	Seed       uint32
}

// ConfigFromSet builds a Config from resolved defines, applying the
// DISK_SIZE derivation for BLOCK_COUNT and validating the geometry.
func ConfigFromSet(set define.Set) (Config, error) {
	erase := set.Get(DefEraseValue, DefaultEraseValue)
	if erase < 0 || erase > 0xff {
		return Config{}, fmt.Errorf("engine: ERASE_VALUE %d does not fit a byte", erase)
	}
	cfg := Config{
		ReadSize:   uint32(set.Get(DefReadSize, DefaultReadSize)),
		ProgSize:   uint32(set.Get(DefProgSize, DefaultProgSize)),
		BlockSize:  uint32(set.Get(DefBlockSize, DefaultBlockSize)),
		BlockCount: uint32(set.Get(DefBlockCount, 0)),
		CacheSize:  uint32(set.Get(DefCacheSize, DefaultCacheSize)),
		EraseValue: byte(erase),
		Seed:       uint32(set.Get(DefSeed, DefaultSeed)),
	}
	if cfg.BlockCount == 0 {
		disk := uint64(set.Get(DefDiskSize, DefaultDiskSize))
		if cfg.BlockSize == 0 {
			return Config{}, fmt.Errorf("engine: BLOCK_SIZE must be positive")
		}
		cfg.BlockCount = uint32(disk / uint64(cfg.BlockSize))
	}
	if cfg.ReadSize == 0 || cfg.ProgSize == 0 {
		return Config{}, fmt.Errorf("engine: READ_SIZE and PROG_SIZE must be positive")
	}
	if cfg.BlockSize%cfg.ProgSize != 0 {
		return Config{}, fmt.Errorf("engine: BLOCK_SIZE %d not a multiple of PROG_SIZE %d", cfg.BlockSize, cfg.ProgSize)
	}
	if cfg.BlockCount == 0 {
		return Config{}, fmt.Errorf("engine: zero block count (DISK_SIZE below BLOCK_SIZE?)")
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = cfg.ProgSize
	}
	return cfg, nil
}
