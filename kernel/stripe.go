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
	"github.com/exascience/pairhmm/encode"
	"github.com/exascience/pairhmm/hapmask"
	"github.com/exascience/pairhmm/pairhmm"
)

// Lane widths for the striped kernel, per precision. Wide mirrors a
// 256-bit SIMD register, narrow a 128-bit one; both are plain Go slices
// here (see DESIGN.md for why no hand-written assembly backs these --
// the only assembly-backed SIMD file found anywhere in the retrieval
// pack is a signature-only stub with no .s body).
const (
	WideSingleLanes   = 8
	WideDoubleLanes   = 4
	NarrowSingleLanes = 4
	NarrowDoubleLanes = 2
	// ScalarSingleLanes degenerates the striped kernel to one lane at a
	// time; it exists so the hybrid dispatcher always has a single-
	// precision kernel available even at the scalar dispatch level.
	ScalarSingleLanes = 1
)

// matchesClass reports whether haplotype column col belongs to the
// given read-base class, consuming the haplotype bit-mask one machine
// word at a time rather than testing a byte array, per spec §4.4: "the
// kernel requests (word_index, read_base_class) and receives a word to
// shift one bit per column." An ambiguous read base matches every
// column.
func matchesClass(m *hapmask.Masks, class byte, col int) bool {
	if encode.IsAmbiguous(class) {
		return true
	}
	wordIdx := (col - 1) / hapmask.WordBits
	bitPos := (col - 1) % hapmask.WordBits
	word := m.Word(class, wordIdx)
	shift := uint(hapmask.WordBits - 1 - bitPos)
	return (word>>shift)&1 == 1
}

// forward runs the striped forward recurrence of spec §3 over a
// testcase's rows, grouped into stripes of `width` lanes that are walked
// column by column (lanes in row order within each column), and returns the raw (pre-log) probability Sum_c(M[R][c] + X[R][c]).
//
// Rather than a dense (R+1)x(H+1) matrix, only two full boundary rows
// (the last row completed by the previous stripe, and the row under
// construction by the current one) and the `width`-wide lane vectors
// for the stripe in flight are kept live -- this is the "three rolling
// arrays" shift-register mechanism of spec §4.5, realized as full rows
// rather than a compressed length-(R+H+L) buffer, since a boundary row
// only ever needs to supply the single row directly above a stripe.
//
// The output does not depend on width: every width value walks the
// exact same recurrence, just grouped into different-sized stripes, so
// wide, narrow, and scalar-degenerate (width=1) kernels agree exactly
// (spec P6).
func forward[F pairhmm.Float](width int, tc *pairhmm.Testcase, rows pairhmm.TransitionRows[F], prior []F, masks *hapmask.Masks, cInit F) F {
	r := tc.ReadLength()
	h := tc.HaplotypeLength()

	boundaryM := make([]F, h+1)
	boundaryX := make([]F, h+1)
	boundaryY := make([]F, h+1)
	initY := cInit / F(h)
	for c := 0; c <= h; c++ {
		boundaryY[c] = initY
	}

	buildingM := make([]F, h+1)
	buildingX := make([]F, h+1)
	buildingY := make([]F, h+1)

	laneM := make([]F, width)
	laneX := make([]F, width)
	laneY := make([]F, width)
	prevM := make([]F, width)
	prevX := make([]F, width)
	prevY := make([]F, width)

	var accum F

	for base := 0; base < r; base += width {
		lanes := width
		if base+lanes > r {
			lanes = r - base
		}

		for l := 0; l < lanes; l++ {
			row := base + l + 1
			var xprev F
			if l == 0 {
				xprev = boundaryX[0]
			} else {
				xprev = laneX[l-1]
			}
			laneX[l] = xprev * rows.XX[row]
			laneM[l] = 0
			laneY[l] = 0
		}
		buildingM[0], buildingX[0], buildingY[0] = 0, laneX[lanes-1], 0
		copy(prevM, laneM)
		copy(prevX, laneX)
		copy(prevY, laneY)

		for c := 1; c <= h; c++ {
			for l := 0; l < lanes; l++ {
				row := base + l + 1

				var mdiag, xdiag, ydiag F
				if l == 0 {
					mdiag, xdiag, ydiag = boundaryM[c-1], boundaryX[c-1], boundaryY[c-1]
				} else {
					mdiag, xdiag, ydiag = prevM[l-1], prevX[l-1], prevY[l-1]
				}

				var distm F
				if matchesClass(masks, tc.Read[row-1], c) {
					distm = 1 - prior[row]
				} else {
					distm = prior[row] / 3
				}
				m := distm * (rows.MM[row]*mdiag + rows.GapM[row]*xdiag + rows.GapM[row]*ydiag)

				var xsrcM, xsrcX F
				if l == 0 {
					xsrcM, xsrcX = boundaryM[c], boundaryX[c]
				} else {
					xsrcM, xsrcX = laneM[l-1], laneX[l-1]
				}
				x := rows.MX[row]*xsrcM + rows.XX[row]*xsrcX

				y := rows.MY[row]*prevM[l] + rows.YY[row]*prevY[l]

				laneM[l], laneX[l], laneY[l] = m, x, y

				if row == r {
					accum += m + x
				}
			}
			buildingM[c], buildingX[c], buildingY[c] = laneM[lanes-1], laneX[lanes-1], laneY[lanes-1]
			copy(prevM, laneM)
			copy(prevX, laneX)
			copy(prevY, laneY)
		}

		boundaryM, buildingM = buildingM, boundaryM
		boundaryX, buildingX = buildingX, boundaryX
		boundaryY, buildingY = buildingY, boundaryY
	}

	return accum
}

// singleKernelFunc and doubleKernelFunc build the transition/prior rows
// for their precision and run forward at a fixed lane width; these are
// the "function pointers" the runtime selector installs.
type singleKernelFunc func(tc *pairhmm.Testcase, masks *hapmask.Masks) float32
type doubleKernelFunc func(tc *pairhmm.Testcase, masks *hapmask.Masks) float64

func stripedSingle(width int) singleKernelFunc {
	return func(tc *pairhmm.Testcase, masks *hapmask.Masks) float32 {
		rows := pairhmm.BuildTransitions[float32](tc, pairhmm.Float32Ops{})
		prior := pairhmm.BuildPrior[float32](tc, pairhmm.Float32Ops{})
		return forward(width, tc, rows, prior, masks, CInit32)
	}
}

func stripedDouble(width int) doubleKernelFunc {
	return func(tc *pairhmm.Testcase, masks *hapmask.Masks) float64 {
		rows := pairhmm.BuildTransitions[float64](tc, pairhmm.Float64Ops{})
		prior := pairhmm.BuildPrior[float64](tc, pairhmm.Float64Ops{})
		return forward(width, tc, rows, prior, masks, CInit64)
	}
}

// WideSingleKernel, WideDoubleKernel, NarrowSingleKernel, and
// NarrowDoubleKernel are the striped kernel instantiations spec §4.5
// calls out by name. ScalarSingleKernel degenerates the same algorithm
// to one lane at a time, and ForwardScalar (scalar.go) is the dedicated
// §4.9 oracle used as the scalar level's double-precision kernel.
var (
	WideSingleKernel   = stripedSingle(WideSingleLanes)
	WideDoubleKernel   = stripedDouble(WideDoubleLanes)
	NarrowSingleKernel = stripedSingle(NarrowSingleLanes)
	NarrowDoubleKernel = stripedDouble(NarrowDoubleLanes)
	ScalarSingleKernel = stripedSingle(ScalarSingleLanes)
)
