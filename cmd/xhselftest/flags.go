// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
)

func flagSet(w io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet("xhselftest", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			"usage: xhselftest [-config <path>] [-v]",
			"",
			"flags:",
			"-config <path>: YAML workload configuration "+
				"(default: built-in workload)",
			"-v: log map growth at debug level",
		)
	}
	return flags
}

func writeLines(w io.Writer, lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
