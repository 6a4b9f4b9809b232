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
	"github.com/exascience/pairhmm/hapmask"
	"github.com/exascience/pairhmm/pairhmm"
)

// ForwardScalar is the §4.9 scalar reference kernel: a direct,
// un-vectorized double-precision implementation of the same recurrence
// the striped kernels compute, used as the correctness oracle (spec P1)
// and as the fallback when no SIMD-width kernel is installed. It is a
// straight generalization of elPrep's own row-major, sync.Pool-recycled
// M/X/Y matrix recurrence in filters/pairhmm.go from a single
// tandem-repeat-derived gap model to this package's four independent
// per-position quality arrays.
func ForwardScalar(tc *pairhmm.Testcase, masks *hapmask.Masks) float64 {
	rows := pairhmm.BuildTransitions[float64](tc, pairhmm.Float64Ops{})
	prior := pairhmm.BuildPrior[float64](tc, pairhmm.Float64Ops{})

	r := tc.ReadLength()
	h := tc.HaplotypeLength()

	p := getMatrices64()
	defer putMatrices64(p)
	p.ensureSize(r+1, h+1)

	initial := CInit64 / float64(h)
	deletion0 := p.deletion.rowView(0)
	for c := range deletion0 {
		deletion0[c] = initial
	}

	for row := 1; row <= r; row++ {
		matchPrev := p.match.rowView(row - 1)
		matchCur := p.match.rowView(row)
		insPrev := p.insertion.rowView(row - 1)
		insCur := p.insertion.rowView(row)
		delPrev := p.deletion.rowView(row - 1)
		delCur := p.deletion.rowView(row)

		readClass := tc.Read[row-1]
		for c := 1; c <= h; c++ {
			var distm float64
			if matchesClass(masks, readClass, c) {
				distm = 1 - prior[row]
			} else {
				distm = prior[row] / 3
			}
			matchCur[c] = distm * (matchPrev[c-1]*rows.MM[row] +
				insPrev[c-1]*rows.GapM[row] +
				delPrev[c-1]*rows.GapM[row])
			insCur[c] = matchPrev[c]*rows.MX[row] + insPrev[c]*rows.XX[row]
			delCur[c] = matchCur[c-1]*rows.MY[row] + delCur[c-1]*rows.YY[row]
		}
		// X[row][0] = X[row-1][0] * XX[row]; M[row][0] and Y[row][0]
		// stay at the zero the pooled matrix was cleared to.
		insCur[0] = insPrev[0] * rows.XX[row]
	}

	var sum float64
	matchEnd := p.match.rowView(r)
	insEnd := p.insertion.rowView(r)
	for c := 1; c <= h; c++ {
		sum += matchEnd[c] + insEnd[c]
	}
	return sum
}
