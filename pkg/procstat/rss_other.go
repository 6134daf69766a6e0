//go:build !linux && !darwin

package procstat

// maxRSSBytes has no probe on this platform.
func maxRSSBytes() (uint64, bool) {
	return 0, false
}
