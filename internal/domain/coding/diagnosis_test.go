package coding

import "testing"

func suggestionCodes(sugs []DiagnosisSuggestion) []string {
	codes := make([]string, 0, len(sugs))
	for _, s := range sugs {
		codes = append(codes, s.Code)
	}
	return codes
}

func TestSuggestDiagnoses_SpecificBeatsGeneric(t *testing.T) {
	sugs := suggestDiagnoses([]string{"Uncontrolled type 2 diabetes, A1C trending up"})
	if len(sugs) != 1 {
		t.Fatalf("expected 1 suggestion, got %v", suggestionCodes(sugs))
	}
	if sugs[0].Code != "E11.65" {
		t.Errorf("expected E11.65, got %s", sugs[0].Code)
	}
	if sugs[0].Confidence != ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", sugs[0].Confidence)
	}
}

func TestSuggestDiagnoses_FamilySuppression(t *testing.T) {
	// Graves emits the specific E05 entry; the generic hyperthyroid match in
	// the same family must not add E05.90.
	sugs := suggestDiagnoses([]string{"Graves disease with hyperthyroid symptoms"})
	codes := suggestionCodes(sugs)
	if len(codes) != 1 || codes[0] != "E05.00" {
		t.Errorf("expected only E05.00, got %v", codes)
	}
}

func TestSuggestDiagnoses_MultipleFamilies(t *testing.T) {
	lines := []string{
		"1. Uncontrolled diabetes",
		"2. Hypertension, stable",
		"3. Hyperlipidemia",
	}
	want := []string{"E11.65", "I10", "E78.5"}
	got := suggestionCodes(suggestDiagnoses(lines))
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSuggestDiagnoses_SymptomCodeLowConfidence(t *testing.T) {
	sugs := suggestDiagnoses([]string{"Fatigue, workup unrevealing"})
	if len(sugs) != 1 || sugs[0].Code != "R53.83" {
		t.Fatalf("expected R53.83, got %v", suggestionCodes(sugs))
	}
	if sugs[0].Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %s", sugs[0].Confidence)
	}
}

func TestSuggestDiagnoses_Empty(t *testing.T) {
	if got := suggestDiagnoses(nil); got != nil {
		t.Errorf("expected nil, got %v", suggestionCodes(got))
	}
	if got := suggestDiagnoses([]string{"  ", ""}); got != nil {
		t.Errorf("expected nil for blank assessment, got %v", suggestionCodes(got))
	}
}

func TestSuggestDiagnoses_NoMatches(t *testing.T) {
	if got := suggestDiagnoses([]string{"Annual wellness visit, no concerns"}); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestionCodes(got))
	}
}
