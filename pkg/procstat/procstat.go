// Package procstat reads per-process statistics recorded alongside each
// benchmark run.
//
// Platform-specific sources live behind build tags; unsupported
// platforms report an unreliable zero rather than failing the run.
package procstat

// Result holds one probed statistic.
type Result struct {
	// Bytes is the probed value.
	Bytes uint64

	// Reliable is false when the platform has no probe and the value is
	// a fallback zero.
	Reliable bool
}

// MaxRSS returns the peak resident set size of this process.
func MaxRSS() Result {
	bytes, ok := maxRSSBytes()
	if !ok {
		return Result{}
	}
	return Result{Bytes: bytes, Reliable: true}
}
