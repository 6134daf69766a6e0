package results

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hweber/blockbench/pkg/humanfmt"
)

// WriteSummary prints a per-measurement table of the given records:
// device byte deltas, elapsed time, and derived throughput for measured
// regions; raw values for explicit results.
func WriteSummary(w io.Writer, records []Record) error {
	tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "suite:case:perm\tmeas\treaded\tproged\terased\ttime\tthroughput")

	for _, r := range records {
		id := fmt.Sprintf("%s:%s:%d", r.Suite, r.Case, r.Perm)
		switch r.Kind {
		case KindMeasured:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				id, r.Meas,
				humanfmt.Bytes(r.Readed),
				humanfmt.Bytes(r.Proged),
				humanfmt.Bytes(r.Erased),
				humanfmt.Duration(r.Elapsed),
				humanfmt.Throughput(r.Size, r.Elapsed))
		case KindInt:
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t%d\n", id, r.Meas, r.IntValue)
		case KindFloat:
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t%.4f\n", id, r.Meas, r.FloatValue)
		}
	}
	return tw.Flush()
}
