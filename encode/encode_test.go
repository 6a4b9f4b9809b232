package encode

import "testing"

func TestBase(t *testing.T) {
	cases := map[byte]byte{
		'A': A, 'a': A,
		'C': C, 'c': C,
		'G': G, 'g': G,
		'T': T, 't': T,
		'N': N, 'n': N,
		'X': Ambiguous, '?': Ambiguous, 0: Ambiguous,
	}
	for in, want := range cases {
		if got := Base(in); got != want {
			t.Errorf("Base(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSequence(t *testing.T) {
	got := Sequence([]byte("ACGTN"))
	want := []byte{A, C, G, T, N}
	if len(got) != len(want) {
		t.Fatalf("len = %v, want %v", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sequence()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIsAmbiguous(t *testing.T) {
	if !IsAmbiguous(N) {
		t.Error("IsAmbiguous(N) = false, want true")
	}
	if IsAmbiguous(A) {
		t.Error("IsAmbiguous(A) = true, want false")
	}
}
