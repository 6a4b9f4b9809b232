package hapmask

import (
	"testing"

	"github.com/exascience/pairhmm/encode"
)

func TestBuildSimple(t *testing.T) {
	hap := encode.Sequence([]byte("ACGTN"))
	m := Build(hap)

	if m.HaplotypeLength() != 5 {
		t.Fatalf("HaplotypeLength() = %v, want 5", m.HaplotypeLength())
	}

	for col, class := range map[int]byte{1: encode.A, 2: encode.C, 3: encode.G, 4: encode.T} {
		if !m.Test(class, col) {
			t.Errorf("column %d should test positive for its own class", col)
		}
		for c := byte(0); c < encode.NumClasses; c++ {
			if c != class && c != encode.N && m.Test(c, col) {
				t.Errorf("column %d should test negative for class %d", col, c)
			}
		}
	}

	// column 5 is N: every class matches it (ambiguity matches all).
	for c := byte(0); c < encode.NumClasses; c++ {
		if !m.Test(c, 5) {
			t.Errorf("ambiguous column should test positive for class %d", c)
		}
	}
}

func TestWordBitOrdering(t *testing.T) {
	hap := encode.Sequence([]byte("A"))
	m := Build(hap)
	word := m.Word(encode.A, 0)
	wantBit := uint64(1) << (WordBits - 1)
	if word != wantBit {
		t.Errorf("Word(A,0) = %064b, want %064b (MSB set for column 1)", word, wantBit)
	}
}

func TestCrossWordBoundary(t *testing.T) {
	bases := make([]byte, WordBits+3)
	for i := range bases {
		bases[i] = 'A'
	}
	// Put a C exactly at the first column of the second word.
	bases[WordBits] = 'C'
	hap := encode.Sequence(bases)
	m := Build(hap)

	if m.NumWords() != 2 {
		t.Fatalf("NumWords() = %v, want 2", m.NumWords())
	}
	if !m.Test(encode.C, WordBits+1) {
		t.Error("expected column WordBits+1 to test positive for C")
	}
	wantBit := uint64(1) << (WordBits - 1)
	if got := m.Word(encode.C, 1); got != wantBit {
		t.Errorf("Word(C,1) = %064b, want %064b", got, wantBit)
	}
}
