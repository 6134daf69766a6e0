//go:build linux

package procstat

import "golang.org/x/sys/unix"

// maxRSSBytes reads peak RSS via getrusage. Linux reports ru_maxrss in
// kilobytes.
func maxRSSBytes() (uint64, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, false
	}
	return uint64(ru.Maxrss) * 1024, true
}
