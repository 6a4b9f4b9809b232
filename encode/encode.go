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

// Package encode maps the five recognized nucleotide base characters to
// small ordinals consumed by the rest of the pair-HMM engine.
package encode

// Ordinals for the recognized alphabet. Ambiguous is the sentinel for any
// byte outside {A,C,G,T,N}; it compares equal only to itself.
const (
	A         byte = 0
	C         byte = 1
	G         byte = 2
	T         byte = 3
	N         byte = 4
	Ambiguous byte = N
)

// NumClasses is the number of distinct ordinals produced by Base,
// including the ambiguity class.
const NumClasses = 5

var table [256]byte

func init() {
	for i := range table {
		table[i] = Ambiguous
	}
	table['A'] = A
	table['a'] = A
	table['C'] = C
	table['c'] = C
	table['G'] = G
	table['g'] = G
	table['T'] = T
	table['t'] = T
	table['N'] = N
	table['n'] = N
}

// Base maps a single base character to its ordinal in [0,4]. Bytes
// outside the recognized alphabet map to Ambiguous.
func Base(b byte) byte {
	return table[b]
}

// Sequence maps every byte of seq to its ordinal, returning a freshly
// allocated slice of the same length; seq itself is left unchanged.
func Sequence(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		out[i] = table[b]
	}
	return out
}

// IsAmbiguous reports whether an already-encoded ordinal is the
// ambiguity class.
func IsAmbiguous(encoded byte) bool {
	return encoded == Ambiguous
}
