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

// Package pairhmm holds the pair-HMM data model: the testcase record
// that the kernels consume, and the per-testcase transition and prior
// rows derived from it. It intentionally has no dependency on the kernel
// package, so that the kernel can depend on this package without an
// import cycle.
package pairhmm

import (
	"fmt"

	"github.com/exascience/pairhmm/encode"
)

// Testcase is one (read, haplotype) pair together with the read's
// per-position quality arrays. Read and Haplotype must already be
// encoded (see the encode package). Testcase memory is owned by the
// caller and must not be mutated while a kernel call that references it
// is in flight.
type Testcase struct {
	Read       []byte // encoded read bases, length R
	Haplotype  []byte // encoded haplotype bases, length H
	BaseQual   []byte // q[i]: base-call quality, length R
	InsertOpen []byte // ins_open[i]: insertion gap-open quality, length R
	DeleteOpen []byte // del_open[i]: deletion gap-open quality, length R
	GapCont    []byte // gap_cont[i]: gap-continuation quality, length R
}

// ReadLength returns R, the length of the read.
func (tc *Testcase) ReadLength() int { return len(tc.Read) }

// HaplotypeLength returns H, the length of the haplotype.
func (tc *Testcase) HaplotypeLength() int { return len(tc.Haplotype) }

// Validate checks the invariants every testcase must satisfy before it
// can be handed to a kernel: R>=1, H>=1, and all four quality arrays the
// same length as the read. It does not validate the byte alphabet of Read
// and Haplotype, since by this point they are assumed already encoded.
func (tc *Testcase) Validate() error {
	r := len(tc.Read)
	if r == 0 {
		return fmt.Errorf("pairhmm: read length must be >= 1")
	}
	if len(tc.Haplotype) == 0 {
		return fmt.Errorf("pairhmm: haplotype length must be >= 1")
	}
	for name, arr := range map[string][]byte{
		"BaseQual":   tc.BaseQual,
		"InsertOpen": tc.InsertOpen,
		"DeleteOpen": tc.DeleteOpen,
		"GapCont":    tc.GapCont,
	} {
		if len(arr) != r {
			return fmt.Errorf("pairhmm: %s has length %d, want %d (read length)", name, len(arr), r)
		}
	}
	return nil
}

// NewTestcase encodes raw (unencoded) read and haplotype bases and
// bundles them with the four quality arrays into a Testcase, validating
// the result. This is the entry point for callers that have not already
// run the bases through the encode package themselves.
func NewTestcase(readBases, haplotypeBases []byte, baseQual, insertOpen, deleteOpen, gapCont []byte) (Testcase, error) {
	tc := Testcase{
		Read:       encode.Sequence(readBases),
		Haplotype:  encode.Sequence(haplotypeBases),
		BaseQual:   baseQual,
		InsertOpen: insertOpen,
		DeleteOpen: deleteOpen,
		GapCont:    gapCont,
	}
	if err := tc.Validate(); err != nil {
		return Testcase{}, err
	}
	return tc, nil
}
