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

// pairhmm-bench runs a testcase file through the batch driver
// repeatedly and reports elapsed time, with an opt-in CPU/memory
// profiling mode gated behind -cpuprofile/-memprofile, following the
// profile.Start/Stop pattern read from shenwei356-wfa/benchmark/wfa-go.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"

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
		iterations     int
		cpuProfile     bool
		memProfile     bool
	)
	flag.IntVar(&maxConcurrency, "max-concurrency", 0, "maximum number of OS threads to use (0 = leave GOMAXPROCS unchanged)")
	flag.UintVar(&featureMask, "feature-mask", uint(kernel.FeatureAll), "kernel feature mask (bit0=narrow-A, bit1=narrow-B, bit2=wide)")
	flag.IntVar(&iterations, "iterations", 1, "number of times to run the whole batch")
	flag.BoolVar(&cpuProfile, "cpuprofile", false, "enable CPU profiling (writes cpu.pprof to the working directory)")
	flag.BoolVar(&memProfile, "memprofile", false, "enable memory profiling (writes mem.pprof to the working directory)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: %s [flags] <testcases-file>", os.Args[0])
	}

	if err := kernel.Init(uint8(featureMask)); err != nil {
		return fmt.Errorf("pairhmm-bench: %w", err)
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

	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if memProfile {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := batch.ComputeBatch(testcases, out, maxConcurrency); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("%d testcases x %d iterations in %v (%.0f testcases/sec)\n",
		len(testcases), iterations, elapsed, float64(len(testcases)*iterations)/elapsed.Seconds())
	return nil
}
