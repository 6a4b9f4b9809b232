package testcaseio

import (
	"strings"
	"testing"
)

func TestParseLineBasic(t *testing.T) {
	tc, err := ParseLine("ACGT ACGT IIII ++++ ++++ ++++")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if tc.ReadLength() != 4 || tc.HaplotypeLength() != 4 {
		t.Fatalf("got R=%d H=%d, want R=4 H=4", tc.ReadLength(), tc.HaplotypeLength())
	}
	for _, q := range tc.BaseQual {
		if q != 40 {
			t.Errorf("BaseQual = %v, want 40 ('I'-33)", q)
		}
	}
	for _, q := range tc.InsertOpen {
		if q != 10 {
			t.Errorf("InsertOpen = %v, want 10 ('+'-33)", q)
		}
	}
}

func TestParseLineAppliesBaseQualityFloor(t *testing.T) {
	// '#' = 35, 35-33 = 2, below the floor of 6.
	tc, err := ParseLine("ACGT ACGT #### ++++ ++++ ++++")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	for _, q := range tc.BaseQual {
		if q != minBaseQuality {
			t.Errorf("BaseQual = %v, want floor %v", q, minBaseQuality)
		}
	}
}

func TestParseLineDoesNotFloorGapQualities(t *testing.T) {
	// '!' = 33, 33-33 = 0: gap qualities are left unclamped per spec §6.
	tc, err := ParseLine("ACGT ACGT IIII !!!! !!!! !!!!")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	for _, q := range tc.InsertOpen {
		if q != 0 {
			t.Errorf("InsertOpen = %v, want 0 (unclamped)", q)
		}
	}
	for _, q := range tc.DeleteOpen {
		if q != 0 {
			t.Errorf("DeleteOpen = %v, want 0 (unclamped)", q)
		}
	}
	for _, q := range tc.GapCont {
		if q != 0 {
			t.Errorf("GapCont = %v, want 0 (unclamped)", q)
		}
	}
}

func TestParseLineWrongFieldCount(t *testing.T) {
	if _, err := ParseLine("ACGT ACGT IIII"); err == nil {
		t.Fatal("expected an error for too few fields")
	}
}

func TestParseLineMismatchedQualityLength(t *testing.T) {
	if _, err := ParseLine("ACGT ACGT III ++++ ++++ ++++"); err == nil {
		t.Fatal("expected an error for a quality string shorter than the read")
	}
}

func TestParseMultipleRecordsAndBlankLines(t *testing.T) {
	input := "ACGT ACGT IIII ++++ ++++ ++++\n\nACGTA ACGTA IIIII +++++ +++++ +++++\n"
	tcs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tcs) != 2 {
		t.Fatalf("got %d testcases, want 2", len(tcs))
	}
}

func TestParseReportsOffendingLine(t *testing.T) {
	input := "ACGT ACGT IIII ++++ ++++ ++++\nACGT ACGT IIII\n"
	_, err := Parse(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error")
	}
	tcErr, ok := err.(*TestcaseError)
	if !ok {
		t.Fatalf("error type = %T, want *TestcaseError", err)
	}
	if tcErr.Line != 2 {
		t.Errorf("TestcaseError.Line = %d, want 2", tcErr.Line)
	}
}
