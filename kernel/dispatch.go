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

package kernel

import (
	"math"

	"github.com/exascience/pairhmm/hapmask"
	"github.com/exascience/pairhmm/pairhmm"
)

// CInit64 and CInit32 are the pre-scaling constants of spec §3/§4.5: a
// power-of-two factor applied to the initial deletion row to keep
// intermediate products away from underflow, subtracted as log10 at the
// end. The two precisions use different exponents because float32's
// dynamic range is far narrower than float64's.
var (
	CInit64      = math.Pow(2, 1020)
	CInit32      = float32(math.Pow(2, 120))
	log10CInit64 = math.Log10(CInit64)
	log10CInit32 = math.Log10(float64(CInit32))
)

// singleUnderflowThreshold is the calibrated lower bound on
// single-precision reliability given the 2^120 pre-scaling constant
// (spec §4.6). It must be preserved exactly: changing it changes which
// testcases fall back to double precision.
const singleUnderflowThreshold = 1e-28

// RunHybrid is the hybrid dispatcher of spec §4.6: it runs the
// single-precision kernel first, and only re-runs in double precision
// when the single-precision result lands in the unreliable underflow
// range. hapmask.Build is run once per call and shared between the
// single- and (if needed) double-precision attempts, since the
// haplotype bit-masks do not depend on precision.
func RunHybrid(tc *pairhmm.Testcase) float64 {
	d := current()
	masks := hapmask.Build(tc.Haplotype)

	s := d.single(tc, masks)
	if float64(s) < singleUnderflowThreshold {
		dbl := d.double(tc, masks)
		return math.Log10(dbl) - log10CInit64
	}
	return math.Log10(float64(s)) - log10CInit32
}

// RunOne is the external convenience single-shot entry point of spec
// §6.3, an alias for RunHybrid. Init must have completed successfully
// before the first call; a dispatcher accessed before Init panics
// (programmer error, not a runtime condition -- this package otherwise
// has no error path on the hot path).
func RunOne(tc *pairhmm.Testcase) float64 {
	return RunHybrid(tc)
}
