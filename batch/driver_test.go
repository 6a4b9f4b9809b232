package batch

import (
	"math"
	"testing"

	"github.com/exascience/pairhmm/kernel"
	"github.com/exascience/pairhmm/pairhmm"
)

func init() {
	if err := kernel.Init(kernel.FeatureAll); err != nil {
		panic(err)
	}
}

func syntheticTestcases(n int) []pairhmm.Testcase {
	bases := []byte("ACGT")
	out := make([]pairhmm.Testcase, n)
	for i := range out {
		r := 20 + i%15
		h := 30 + i%20
		read := make([]byte, r)
		hap := make([]byte, h)
		for j := range read {
			read[j] = bases[(j+i)%4]
		}
		for j := range hap {
			hap[j] = bases[(j+i)%4]
		}
		q := func(v byte) []byte {
			s := make([]byte, r)
			for j := range s {
				s[j] = v
			}
			return s
		}
		tc, err := pairhmm.NewTestcase(read, hap, q(30), q(40), q(40), q(10))
		if err != nil {
			panic(err)
		}
		out[i] = tc
	}
	return out
}

func TestComputeBatchMismatchedLengths(t *testing.T) {
	tcs := syntheticTestcases(3)
	out := make([]float64, 2)
	if err := ComputeBatch(tcs, out, 1); err == nil {
		t.Fatal("expected an error for mismatched slice lengths")
	}
}

func TestComputeBatchEmpty(t *testing.T) {
	if err := ComputeBatch(nil, nil, 1); err != nil {
		t.Fatalf("ComputeBatch(nil, nil, _) = %v, want nil", err)
	}
}

func TestComputeBatchMatchesRunOne(t *testing.T) {
	tcs := syntheticTestcases(25)
	out := make([]float64, len(tcs))
	if err := ComputeBatch(tcs, out, 2); err != nil {
		t.Fatalf("ComputeBatch: %v", err)
	}
	for i := range tcs {
		want := kernel.RunOne(&tcs[i])
		if math.Abs(out[i]-want) > 1e-9 {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want)
		}
	}
}

// TestComputeBatchDeterministic verifies P7: the output does not depend
// on max_concurrency.
func TestComputeBatchDeterministic(t *testing.T) {
	tcs := syntheticTestcases(200)

	out1 := make([]float64, len(tcs))
	if err := ComputeBatch(tcs, out1, 1); err != nil {
		t.Fatalf("ComputeBatch(maxConcurrency=1): %v", err)
	}
	out8 := make([]float64, len(tcs))
	if err := ComputeBatch(tcs, out8, 8); err != nil {
		t.Fatalf("ComputeBatch(maxConcurrency=8): %v", err)
	}

	for i := range out1 {
		if math.Abs(out1[i]-out8[i]) > 1e-5 {
			t.Errorf("out[%d] differs by max_concurrency: 1->%v 8->%v", i, out1[i], out8[i])
		}
	}
}
