// elPrep: a high-performance tool for analyzing SAM/BAM files.
// Copyright (c) 2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

// pairhmm-testcases reads a whitespace-delimited testcase file (spec
// §6) and writes one log10-likelihood per line to stdout, following
// elPrep's own flag-based CLI convention (cmd/filter.go).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exascience/pairhmm/batch"
	"github.com/exascience/pairhmm/kernel"
	"github.com/exascience/pairhmm/testcaseio"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		maxConcurrency int
		featureMask    uint
	)
	flag.IntVar(&maxConcurrency, "max-concurrency", 0, "maximum number of OS threads to use (0 = leave GOMAXPROCS unchanged)")
	flag.UintVar(&featureMask, "feature-mask", uint(kernel.FeatureAll), "kernel feature mask (bit0=narrow-A, bit1=narrow-B, bit2=wide)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] <testcases-file>", os.Args[0])
	}

	if err := kernel.Init(uint8(featureMask)); err != nil {
		return fmt.Errorf("pairhmm-testcases: %w", err)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	testcases, err := testcaseio.Parse(f)
	if err != nil {
		return err
	}

	out := make([]float64, len(testcases))
	if err := batch.ComputeBatch(testcases, out, maxConcurrency); err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, v := range out {
		fmt.Fprintf(w, "%.6f\n", v)
	}
	return nil
}
