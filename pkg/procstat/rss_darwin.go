//go:build darwin

package procstat

import "golang.org/x/sys/unix"

// maxRSSBytes reads peak RSS via getrusage. Darwin reports ru_maxrss in
// bytes.
func maxRSSBytes() (uint64, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, false
	}
	return uint64(ru.Maxrss), true
}
