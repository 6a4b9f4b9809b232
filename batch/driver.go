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

// Package batch implements the Batch Driver & Parallel Loop of spec
// §4.8: it distributes an array of independent pair-HMM testcases over
// a bounded number of parallel workers and writes one log10-likelihood
// per testcase into a caller-supplied output slice.
package batch

import (
	"fmt"
	"runtime"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/pairhmm/kernel"
	"github.com/exascience/pairhmm/pairhmm"
)

// chunkSize is the dynamic-scheduling grain size pargo's parallel.Range
// uses to hand out work to worker goroutines, chosen per spec §4.8 as
// "measured best for typical read lengths".
const chunkSize = 10000

// ComputeBatch runs every testcase through the hybrid dispatcher and
// writes its log10-likelihood into the matching out slot. testcases and
// out must have equal length (an empty batch is a no-op); out is owned by the caller and
// only this call's own goroutines write to it, each to a disjoint index,
// so no further synchronization is required (spec §5).
//
// maxConcurrency bounds how many OS threads pargo's worker pool may use
// for the duration of this call, generalizing elPrep's own
// "--nr-of-threads"-driven runtime.GOMAXPROCS(n) (cmd/filter.go) from a
// process-lifetime flag to a single call's scope: the previous
// GOMAXPROCS value is restored before ComputeBatch returns. A
// maxConcurrency <= 0 leaves GOMAXPROCS untouched (use whatever the
// process is already configured with).
func ComputeBatch(testcases []pairhmm.Testcase, out []float64, maxConcurrency int) error {
	if len(testcases) != len(out) {
		return fmt.Errorf("batch: len(testcases)=%d != len(out)=%d", len(testcases), len(out))
	}
	if len(testcases) == 0 {
		return nil
	}

	if maxConcurrency > 0 {
		previous := runtime.GOMAXPROCS(maxConcurrency)
		defer runtime.GOMAXPROCS(previous)
	}

	parallel.Range(0, len(testcases), chunkSize, func(low, high int) {
		for i := low; i < high; i++ {
			out[i] = kernel.RunHybrid(&testcases[i])
		}
	})
	return nil
}
