package bench

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hweber/blockbench/internal/logctx"
	"github.com/hweber/blockbench/pkg/define"
)

// Filter restricts the traversal to a suite, a case within it, or one
// specific permutation of that case.
type Filter struct {
	Suite string
	Case  string // empty: every case in the suite
	Perm  int64  // -1: every permutation
}

// ParseFilter parses "suite", "suite:case", or "suite:case:perm".
func ParseFilter(s string) (Filter, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return Filter{}, fmt.Errorf("filter %q: want suite[:case[:perm]]", s)
	}
	f := Filter{Suite: parts[0], Perm: -1}
	if len(parts) > 1 {
		if parts[1] == "" {
			return Filter{}, fmt.Errorf("filter %q: empty case name", s)
		}
		f.Case = parts[1]
	}
	if len(parts) > 2 {
		perm, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || perm < 0 {
			return Filter{}, fmt.Errorf("filter %q: bad permutation index", s)
		}
		f.Perm = perm
	}
	return f, nil
}

func (f Filter) matchesSuite(s *Suite) bool {
	return f.Suite == s.Name
}

func (f Filter) matchesCase(s *Suite, c *Case) bool {
	return f.Suite == s.Name && (f.Case == "" || f.Case == c.Name)
}

// namesCase reports whether the filter singles the case out by name,
// which is what lets internal cases run without --internal.
func (f Filter) namesCase(s *Suite, c *Case) bool {
	return f.Suite == s.Name && f.Case == c.Name
}

// Options configures one traversal of the catalog.
type Options struct {
	// Filters restricts which suites/cases/permutations run. Empty
	// means the whole catalog.
	Filters []Filter

	// Base is the lowest-precedence define layer every case inherits
	// (the engine's implicit defines).
	Base []define.Define

	// Overrides is the outermost define layer, shadowing suite and case
	// defines by name (the -D flags).
	Overrides []define.Define

	// Internal includes FlagInternal cases that no filter names
	// explicitly.
	Internal bool

	// NewMeter builds the meter for one run, after the run context is
	// resolved. Nil leaves runs unmetered.
	NewMeter func(*Ctx) Meter
}

// Summary is what one traversal did.
type Summary struct {
	Cases   int // cases whose permutations were enumerated
	Runs    int // run bodies invoked
	Skipped int // cases excluded by eligibility or flags
	Failed  int // run bodies that returned an error
	Elapsed time.Duration
}

// Run enumerates the catalog in registration order: suites, then cases,
// then flat indices 0..TotalPermutations-1. Each eligible flat index is
// resolved exactly once and run exactly once, in order; runs are never
// batched or reordered. Case failures are logged and counted but do not
// stop the traversal.
func Run(ctx context.Context, opts Options) (Summary, error) {
	log := logctx.FromContext(ctx)
	start := time.Now()

	var sum Summary
	for _, s := range Suites() {
		if !suiteSelected(s, opts.Filters) {
			continue
		}
		for _, c := range s.Cases {
			selected, explicit := caseSelected(s, c, opts.Filters)
			if !selected {
				continue
			}
			if c.Flags&FlagInternal != 0 && !opts.Internal && !explicit {
				continue
			}

			clog := log.With().Str("suite", s.Name).Str("case", c.Name).Logger()

			// eligibility is evaluated once per case, independent of
			// define values
			if c.If != nil && !c.If() {
				clog.Debug().Msg("case not eligible, skipping")
				sum.Skipped++
				continue
			}

			defines := s.EffectiveDefines(c, opts.Base, opts.Overrides)
			total := define.TotalPermutations(defines)

			first, last := uint64(0), total
			if perm, ok := permFilter(s, c, opts.Filters); ok {
				if perm >= total {
					return sum, fmt.Errorf("bench: %s:%s has %d permutations, index %d out of range",
						s.Name, c.Name, total, perm)
				}
				first, last = perm, perm+1
			}

			clog.Debug().Uint64("permutations", total).Msg("running case")
			sum.Cases++

			for flat := first; flat < last; flat++ {
				if err := ctx.Err(); err != nil {
					return sum, err
				}
				if err := runOne(s, c, defines, flat, opts.NewMeter); err != nil {
					clog.Error().Err(err).Uint64("perm", flat).Msg("run failed")
					sum.Failed++
					continue
				}
				sum.Runs++
			}
		}
	}

	sum.Elapsed = time.Since(start)
	if sum.Failed > 0 {
		return sum, fmt.Errorf("bench: %d of %d runs failed", sum.Failed, sum.Failed+sum.Runs)
	}
	return sum, nil
}

// runOne resolves one flat index and invokes the case body once.
func runOne(s *Suite, c *Case, defines []define.Define, flat uint64, newMeter func(*Ctx) Meter) error {
	rctx, err := newCtx(s, c, defines, flat, nil)
	if err != nil {
		return err
	}
	if newMeter != nil {
		if m := newMeter(rctx); m != nil {
			rctx.Meter = m
		}
	}
	if err := c.Run(rctx); err != nil {
		return fmt.Errorf("%s:%s:%d: %w", s.Name, c.Name, flat, err)
	}
	// meters surface unbalanced start/stop and sink failures after the
	// body returns
	if m, ok := rctx.Meter.(interface{ Err() error }); ok {
		if err := m.Err(); err != nil {
			return fmt.Errorf("%s:%s:%d: %w", s.Name, c.Name, flat, err)
		}
	}
	return nil
}

func suiteSelected(s *Suite, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f.matchesSuite(s) {
			return true
		}
	}
	return false
}

func caseSelected(s *Suite, c *Case, filters []Filter) (selected, explicit bool) {
	if len(filters) == 0 {
		return true, false
	}
	for _, f := range filters {
		if f.matchesCase(s, c) {
			selected = true
			if f.namesCase(s, c) {
				explicit = true
			}
		}
	}
	return selected, explicit
}

// permFilter returns the single permutation index requested for this
// case, if any filter pins one.
func permFilter(s *Suite, c *Case, filters []Filter) (uint64, bool) {
	for _, f := range filters {
		if f.namesCase(s, c) && f.Perm >= 0 {
			return uint64(f.Perm), true
		}
	}
	return 0, false
}
