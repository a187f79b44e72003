// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xhselftest runs the xhash self-test and prints a report.
//
//	usage: xhselftest [-config <path>] [-v]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aristanetworks/xhash/internal/selftest"
	plog "github.com/phuslu/log"
)

func main() {
	os.Exit(run(os.Stdout, os.Args))
}

func run(w io.Writer, args []string) int {
	flags := flagSet(w)
	configPath := flags.String("config", "", "")
	verbose := flags.Bool("v", false, "")
	if err := flags.Parse(args[1:]); err != nil {
		// flags will automatically call .Usage()
		return 2
	}

	cfg := selftest.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			fmt.Fprintf(w, "reading config: %v\n", err)
			return 1
		}
		cfg, err = selftest.Load(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", *configPath, err)
			return 1
		}
	}

	log := plog.Logger{
		Level:      plog.InfoLevel,
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &plog.IOWriter{Writer: w},
	}
	if *verbose {
		log.Level = plog.DebugLevel
	}

	fmt.Fprintln(w, "---- xhash test started ----")
	rep, err := selftest.Run(cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("self-test failed")
		return 1
	}
	if err := rep.Format(w); err != nil {
		return 1
	}
	fmt.Fprintln(w, "---- xhash test successfully finished ----")
	return 0
}
