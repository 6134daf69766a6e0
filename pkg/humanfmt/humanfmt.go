// Package humanfmt formats byte counts, durations, and throughput for
// the run summary table.
package humanfmt

import (
	"fmt"
	"time"
)

var units = []struct {
	scale  float64
	suffix string
}{
	{1 << 40, "TiB"},
	{1 << 30, "GiB"},
	{1 << 20, "MiB"},
	{1 << 10, "KiB"},
}

// Bytes formats a byte count with IEC binary units, like "1.23 GiB".
func Bytes(b uint64) string {
	f := float64(b)
	for _, u := range units {
		if f >= u.scale {
			return fmt.Sprintf("%.2f %s", f/u.scale, u.suffix)
		}
	}
	return fmt.Sprintf("%d B", b)
}

// Throughput formats bytes moved over a duration as a rate, like
// "123.45 MiB/s".
func Throughput(b uint64, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	rate := float64(b) / d.Seconds()
	for _, u := range units {
		if rate >= u.scale {
			return fmt.Sprintf("%.2f %s/s", rate/u.scale, u.suffix)
		}
	}
	return fmt.Sprintf("%.0f B/s", rate)
}

// Duration formats a duration compactly: sub-second values keep their
// natural unit, anything longer is printed in seconds.
func Duration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d >= time.Millisecond {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d >= time.Microsecond {
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	}
	return fmt.Sprintf("%dns", d.Nanoseconds())
}
