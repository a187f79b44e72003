// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selftest

import (
	"fmt"
	"io"
	"time"

	"github.com/aristanetworks/xhash"
	"github.com/dustin/go-humanize"
	plog "github.com/phuslu/log"
)

// Result describes one finished scenario or workload.
type Result struct {
	Name  string
	Stats xhash.Stats
	// Elapsed and Allocated cover the whole step, checks included.
	Elapsed   time.Duration
	Allocated uint64
}

// Report collects the results of a Run in execution order.
type Report struct {
	Results []Result
}

func (r *Report) add(log *plog.Logger, res Result) {
	r.Results = append(r.Results, res)
	if log == nil {
		return
	}
	log.Info().Str("step", res.Name).
		Int("count", res.Stats.Count).
		Int("buckets", res.Stats.Buckets).
		Int("resizes", res.Stats.Resizes).
		Dur("elapsed", res.Elapsed).
		Msg("passed")
}

// Format writes one line per result to w.
func (r *Report) Format(w io.Writer) error {
	for _, res := range r.Results {
		s := res.Stats
		_, err := fmt.Fprintf(w,
			"%-16s entries=%s buckets=%s load=%.3f chains=%s longest=%d resizes=%d alloc=%s elapsed=%s\n",
			res.Name,
			humanize.Comma(int64(s.Count)),
			humanize.Comma(int64(s.Buckets)),
			s.LoadFactor,
			humanize.Comma(int64(s.UsedBuckets)),
			s.LongestChain,
			s.Resizes,
			humanize.Bytes(res.Allocated),
			res.Elapsed.Round(time.Microsecond),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
