package coding

import "testing"

func TestAssessRisk_MinimalForEmptyInput(t *testing.T) {
	if got := assessRisk(EncounterInput{}, 0); got != LevelMinimal {
		t.Errorf("expected minimal, got %s", got)
	}
}

func TestAssessRisk_Hospitalization(t *testing.T) {
	in := EncounterInput{Transcript: "Recently hospitalized for pneumonia."}
	if got := assessRisk(in, 0); got != LevelLow {
		t.Errorf("expected low for hospitalization alone, got %s", got)
	}
}

func TestAssessRisk_RecentDischargeRequiresHospitalization(t *testing.T) {
	// The discharge-timing bonus only applies on top of a hospitalization
	// mention.
	withHosp := EncounterInput{Transcript: "Hospitalized last week, discharged 3 days ago."}
	if got := riskScore(withHosp, 0); got != hospitalizationPoints+recentDischargePoints {
		t.Errorf("expected %d, got %d", hospitalizationPoints+recentDischargePoints, got)
	}

	oldDischarge := EncounterInput{Transcript: "Hospitalized last year, discharged 30 days ago."}
	if got := riskScore(oldDischarge, 0); got != hospitalizationPoints {
		t.Errorf("expected %d without recent-discharge bonus, got %d", hospitalizationPoints, got)
	}
}

func TestRiskScore_LifeThreatGroupsCapped(t *testing.T) {
	in := EncounterInput{Transcript: "History of MI and stroke complicated by sepsis."}
	want := lifeThreatPoints * lifeThreatGroupCap
	if got := riskScore(in, 0); got != want {
		t.Errorf("expected cap at %d, got %d", want, got)
	}
}

func TestRiskScore_MedicationSignalsCombine(t *testing.T) {
	in := EncounterInput{
		MedicationChangeLines: []string{
			"Started insulin glargine 10 units nightly",
			"Increase metformin to 1000 mg",
			"Add atorvastatin 20 mg",
		},
	}
	// high-risk med (insulin) + new medication started + >=3 changes
	want := highRiskMedPoints + newMedicationPoints + manyMedChangesPoints
	if got := riskScore(in, 3); got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestRiskScore_NewMedicationStartedAnyTableEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"ace inhibitor", "Start lisinopril 10 mg daily"},
		{"statin", "Started atorvastatin 20 mg"},
		{"glp-1", "Initiating ozempic 0.25 mg weekly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := EncounterInput{MedicationChangeLines: []string{tt.line}}
			if got := riskScore(in, 1); got != newMedicationPoints {
				t.Errorf("riskScore() = %d, want %d", got, newMedicationPoints)
			}
		})
	}
}

func TestRiskScore_SeverityLanguage(t *testing.T) {
	in := EncounterInput{AssessmentLines: []string{"Uncontrolled diabetes"}}
	// severity (2) + chronic burden of one condition (0)
	if got := riskScore(in, 0); got != severityLanguagePoints {
		t.Errorf("expected %d, got %d", severityLanguagePoints, got)
	}
}

func TestRiskScore_ChronicBurden(t *testing.T) {
	three := EncounterInput{AssessmentLines: []string{"diabetes, hypertension, hyperlipidemia"}}
	if got := riskScore(three, 0); got != 1 {
		t.Errorf("expected 1 for three chronic conditions, got %d", got)
	}

	four := EncounterInput{AssessmentLines: []string{"diabetes, hypertension, hyperlipidemia, asthma"}}
	if got := riskScore(four, 0); got != 2 {
		t.Errorf("expected 2 for four chronic conditions, got %d", got)
	}
}

func TestRiskScore_CriticalLabValues(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       int
	}{
		{"critical a1c", "A1C came back at 11.2 today", 2},
		{"subcritical a1c", "A1C came back at 8.4 today", 0},
		{"critical glucose", "glucose of 450 in office", 2},
		{"critical creatinine", "creatinine is 2.4, worsening", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := EncounterInput{Transcript: tt.transcript}
			if got := riskScore(in, 0); got != tt.want {
				t.Errorf("riskScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRiskScore_Vitals(t *testing.T) {
	in := EncounterInput{Vitals: map[string]string{
		"glucose": "320",
		"bp":      "192/98",
		"hr":      "135",
	}}
	// glucose > 300 (1) + systolic > 180 (1) + hr > 120 (1)
	if got := riskScore(in, 0); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestRiskScore_VitalsIgnoreUnparseable(t *testing.T) {
	in := EncounterInput{Vitals: map[string]string{
		"glucose": "not recorded",
		"bp":      "refused",
	}}
	if got := riskScore(in, 0); got != 0 {
		t.Errorf("expected 0 for unparseable vitals, got %d", got)
	}
}

func TestAssessRisk_HighForAcuteStack(t *testing.T) {
	in := EncounterInput{
		Transcript: "Admitted to the hospital for DKA last month. Resuming insulin sliding scale.",
	}
	// hospitalization (3) + metabolic emergency (3) + high-risk med (2) = 8
	if got := assessRisk(in, 0); got != LevelHigh {
		t.Errorf("expected high, got %s", got)
	}
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"142/88", 142, true},
		{"9.4%", 9.4, true},
		{" 120 ", 120, true},
		{"refused", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingNumber(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("leadingNumber(%q) = %v,%v want %v,%v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
