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

// Package kernel implements the vectorized forward recurrence, the
// hybrid single/double precision dispatcher, and the runtime kernel
// selector.
package kernel

import (
	"sync"

	"github.com/exascience/pairhmm/pairhmm"
)

// matrix is a row-major DP buffer, generic over the same precision as the
// transition/prior rows it is driven by. It generalizes elPrep's
// float64Matrix (filters/pairhmm.go) from a fixed float64 element type to
// either float32 or float64, since the hybrid dispatcher needs both.
type matrix[F pairhmm.Float] struct {
	cols  int
	array []F
}

func (m *matrix[F]) ensureSize(rows, cols int) {
	m.cols = cols
	total := rows * cols
	if total <= cap(m.array) {
		m.array = m.array[:total]
		for i := range m.array {
			m.array[i] = 0
		}
	} else {
		m.array = make([]F, total)
	}
}

func (m *matrix[F]) rowView(row int) []F {
	offset := row * m.cols
	return m.array[offset : offset+m.cols]
}

// matrices bundles the three DP planes the recurrence needs (spec §3's
// M/I/D lattice), recycled through a sync.Pool exactly as
// filters/pairhmm.go recycles its pairHMMMatrices, since a batch run
// drives this allocation pattern once per worker goroutine rather than
// once per testcase.
type matrices[F pairhmm.Float] struct {
	match, insertion, deletion matrix[F]
}

func (p *matrices[F]) ensureSize(rows, cols int) {
	p.match.ensureSize(rows, cols)
	p.insertion.ensureSize(rows, cols)
	p.deletion.ensureSize(rows, cols)
}

var matrices64Pool = sync.Pool{New: func() any { return new(matrices[float64]) }}

func getMatrices64() *matrices[float64]  { return matrices64Pool.Get().(*matrices[float64]) }
func putMatrices64(m *matrices[float64]) { matrices64Pool.Put(m) }
