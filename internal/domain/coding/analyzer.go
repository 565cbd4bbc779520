package coding

import "strings"

// Analyzer derives a visit-complexity classification and billing-code
// recommendation from one clinical encounter. It is stateless: every call
// works from the immutable pattern library and input-local accumulators, so
// a single Analyzer is safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs every extractor over the encounter and assembles the final
// recommendation. Pure and synchronous: no I/O, no retained state, identical
// input yields identical output. Malformed or empty input degrades to
// minimal counts and the lowest-confidence minimal-visit code.
func (az *Analyzer) Analyze(in EncounterInput) *AnalysisResult {
	medChanges := countMedicationChanges(in.MedicationChangeLines, in.Transcript)

	analysis := ComplexityAnalysis{
		TimeSpentMinutes:      extractTimeSpent(in.Transcript),
		ProblemCount:          countProblems(in.AssessmentLines),
		DataPoints:            countDataPoints(in.PlanLines, in.Transcript),
		MedicationChangeCount: medChanges,
		RiskLevel:             assessRisk(in, medChanges),
		ChronicConditionCount: countChronicConditions(append(in.AssessmentLines, in.Transcript)...),
	}
	analysis.ComplexityLevel = combineComplexity(
		analysis.ProblemCount, analysis.DataPoints, analysis.RiskLevel, analysis.MedicationChangeCount)

	procedures := detectProcedures(in)
	sig := assessEMSignificance(analysis, len(procedures) > 0)
	if sig.IsSignificant && len(procedures) > 0 {
		markModifier25(procedures)
	}

	flags := documentationFlags{
		hasChiefComplaint: anyMatch(chiefComplaintPatterns, in.Transcript),
		hasAssessment:     hasText(in.AssessmentLines),
		hasPlan:           hasText(in.PlanLines),
		hasFollowUp:       anyMatch(followUpPatterns, in.Transcript+"\n"+strings.Join(in.PlanLines, "\n")),
		hasProcedure:      len(procedures) > 0,
	}

	return &AnalysisResult{
		Analysis:             analysis,
		Procedures:           procedures,
		EMSignificance:       sig,
		Recommendation:       recommendCode(analysis, sig, flags),
		DiagnosisSuggestions: suggestDiagnoses(in.AssessmentLines),
	}
}

// markModifier25 suggests modifier -25 on the E/M side when the visit
// supports separately billable E/M work alongside procedures.
func markModifier25(procedures []ProcedureFinding) {
	mod := "-25 on E/M code"
	for i := range procedures {
		procedures[i].ModifierSuggested = &mod
	}
}
