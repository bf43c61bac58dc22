// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Result kinds.
const (
	KindThroughput = "throughput"
	KindRoundTrip  = "rtt"
)

// Result is the timing of one run.
type Result struct {
	Queue   string
	Kind    string
	Ops     uint64
	Elapsed time.Duration
}

// OpsPerMs returns operations completed per millisecond.
func (r Result) OpsPerMs() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) * float64(time.Millisecond) / float64(r.Elapsed)
}

// NsPerOp returns the mean time per operation. For a round-trip run this
// is the mean round-trip latency.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

func (r Result) String() string {
	if r.Kind == KindRoundTrip {
		return fmt.Sprintf("%s %s: %.2f ns round trip", r.Queue, r.Kind, r.NsPerOp())
	}
	return fmt.Sprintf("%s %s: %.0f ops/ms, %.2f ns/op", r.Queue, r.Kind, r.OpsPerMs(), r.NsPerOp())
}

// Report writes results as an aligned table.
func Report(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUEUE\tRUN\tOPS\tELAPSED\tOPS/MS\tNS/OP")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%.0f\t%.2f\n",
			r.Queue, r.Kind, r.Ops, r.Elapsed.Round(time.Microsecond), r.OpsPerMs(), r.NsPerOp())
	}
	return tw.Flush()
}
