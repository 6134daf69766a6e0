package procstat

import (
	"runtime"
	"testing"
)

func TestMaxRSS(t *testing.T) {
	res := MaxRSS()

	switch runtime.GOOS {
	case "linux", "darwin":
		if !res.Reliable {
			t.Fatalf("MaxRSS unreliable on %s", runtime.GOOS)
		}
		if res.Bytes == 0 {
			t.Error("MaxRSS = 0 for a running process")
		}
	default:
		if res.Reliable || res.Bytes != 0 {
			t.Errorf("unsupported platform should report unreliable zero, got %+v", res)
		}
	}
}
