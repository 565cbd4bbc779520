package coding

import "fmt"

// Established-patient office visit codes.
type visitCode struct {
	code        string
	description string
	timeLabel   string
}

var (
	codeMinimal = visitCode{"99211", "Office visit, established patient, minimal presenting problems", "typically under 10 minutes"}
	codeLevel2  = visitCode{"99212", "Office visit, established patient, straightforward MDM", "10-19 minutes"}
	codeLevel3  = visitCode{"99213", "Office visit, established patient, low complexity MDM", "20-29 minutes"}
	codeLevel4  = visitCode{"99214", "Office visit, established patient, moderate complexity MDM", "30-39 minutes"}
	codeLevel5  = visitCode{"99215", "Office visit, established patient, high complexity MDM", "40-54 minutes"}
	codeProlong = visitCode{"99417", "Prolonged office visit services, each additional 15 minutes", "55 minutes or more"}
)

var complexityToCode = map[Level]visitCode{
	LevelMinimal:  codeMinimal,
	LevelLow:      codeLevel3,
	LevelModerate: codeLevel4,
	LevelHigh:     codeLevel5,
}

// billingPath is the terminal state of the recommendation decision table.
// Precedence is fixed: procedure gate, then documented time, then complexity.
type billingPath int

const (
	pathProcedureMinimal billingPath = iota
	pathTimeBased
	pathComplexityBased
)

// documentationFlags describes which note elements were present, passed to
// the recommender by the orchestrator.
type documentationFlags struct {
	hasChiefComplaint bool
	hasAssessment     bool
	hasPlan           bool
	hasFollowUp       bool
	hasProcedure      bool
}

// recommendCode selects the primary billing code. It never fails: malformed
// or empty input degrades to the lowest-confidence minimal-visit code.
func recommendCode(a ComplexityAnalysis, sig EMSignificance, flags documentationFlags) CodeRecommendation {
	evidence := SupportingEvidence{
		TimeDocumented:        a.TimeSpentMinutes != nil,
		ChiefComplaintPresent: flags.hasChiefComplaint,
		AssessmentPresent:     flags.hasAssessment,
		PlanPresent:           flags.hasPlan,
		FollowUpPresent:       flags.hasFollowUp,
	}

	switch selectPath(a, sig, flags) {
	case pathProcedureMinimal:
		return procedureMinimalRecommendation(a, sig, evidence)
	case pathTimeBased:
		return timeBasedRecommendation(a, evidence)
	default:
		return complexityBasedRecommendation(a, evidence)
	}
}

func selectPath(a ComplexityAnalysis, sig EMSignificance, flags documentationFlags) billingPath {
	if flags.hasProcedure && !sig.IsSignificant {
		return pathProcedureMinimal
	}
	if a.TimeSpentMinutes != nil {
		return pathTimeBased
	}
	return pathComplexityBased
}

func procedureMinimalRecommendation(a ComplexityAnalysis, sig EMSignificance, ev SupportingEvidence) CodeRecommendation {
	just := []string{
		"Procedure-focused encounter: E/M component not separately significant",
		sig.Reason,
	}
	just = append(just, countJustification(a)...)
	return CodeRecommendation{
		PrimaryCode:        codeMinimal.code,
		PrimaryDescription: codeMinimal.description,
		TimeRangeLabel:     codeMinimal.timeLabel,
		Complexity:         a.ComplexityLevel,
		AlternativeCodes: []AlternativeCode{
			{
				Code:        "procedure-only",
				Description: "Bill the documented procedure code without an E/M code",
				Reason:      "E/M work did not meet the separately-identifiable threshold",
			},
		},
		SupportingEvidence:  ev,
		ConfidenceScore:     70,
		JustificationPoints: just,
	}
}

// Time bands for the preferred time-based selection.
func timeBasedRecommendation(a ComplexityAnalysis, ev SupportingEvidence) CodeRecommendation {
	minutes := *a.TimeSpentMinutes

	var selected visitCode
	confidence := 95
	switch {
	case minutes >= 55:
		selected = codeLevel5
		confidence = 90
	case minutes >= 40:
		selected = codeLevel5
		confidence = 92
	case minutes >= 30:
		selected = codeLevel4
	case minutes >= 20:
		selected = codeLevel3
	case minutes >= 10:
		selected = codeLevel2
	default:
		selected = codeMinimal
		confidence = 90
	}

	just := []string{fmt.Sprintf("Documented visit time: %d minutes (%s)", minutes, selected.timeLabel)}
	just = append(just, countJustification(a)...)

	rec := CodeRecommendation{
		PrimaryCode:         selected.code,
		PrimaryDescription:  selected.description,
		TimeRangeLabel:      selected.timeLabel,
		Complexity:          a.ComplexityLevel,
		AlternativeCodes:    timeAlternatives(minutes, a.ComplexityLevel),
		SupportingEvidence:  ev,
		ConfidenceScore:     confidence,
		JustificationPoints: just,
	}
	return rec
}

func timeAlternatives(minutes int, complexity Level) []AlternativeCode {
	if minutes >= 55 {
		return []AlternativeCode{{
			Code:        codeProlong.code,
			Description: codeProlong.description,
			Reason:      fmt.Sprintf("%d minutes documented; add prolonged-service code on top of 99215", minutes),
		}}
	}
	byComplexity := complexityToCode[complexity]
	var alts []AlternativeCode
	if byComplexity.code != timeBandCode(minutes).code {
		alts = append(alts, AlternativeCode{
			Code:        byComplexity.code,
			Description: byComplexity.description,
			Reason:      fmt.Sprintf("Supported by %s medical decision making if time documentation is challenged", complexity),
		})
	}
	if next, ok := nextTimeBand(minutes); ok && (len(alts) == 0 || alts[0].Code != next.code) {
		alts = append(alts, AlternativeCode{
			Code:        next.code,
			Description: next.description,
			Reason:      fmt.Sprintf("Applies if total time reaches %s", next.timeLabel),
		})
	}
	if len(alts) > 2 {
		alts = alts[:2]
	}
	return alts
}

func timeBandCode(minutes int) visitCode {
	switch {
	case minutes >= 40:
		return codeLevel5
	case minutes >= 30:
		return codeLevel4
	case minutes >= 20:
		return codeLevel3
	case minutes >= 10:
		return codeLevel2
	default:
		return codeMinimal
	}
}

func nextTimeBand(minutes int) (visitCode, bool) {
	switch {
	case minutes >= 40:
		return codeProlong, true
	case minutes >= 30:
		return codeLevel5, true
	case minutes >= 20:
		return codeLevel4, true
	case minutes >= 10:
		return codeLevel3, true
	default:
		return codeLevel2, true
	}
}

// Complexity fallback confidence is strictly below the time-based path.
var complexityConfidence = map[Level]int{
	LevelMinimal:  60,
	LevelLow:      65,
	LevelModerate: 70,
	LevelHigh:     75,
}

func complexityBasedRecommendation(a ComplexityAnalysis, ev SupportingEvidence) CodeRecommendation {
	selected := complexityToCode[a.ComplexityLevel]

	just := []string{"No visit time documented; code selected by medical decision-making complexity"}
	just = append(just, countJustification(a)...)

	return CodeRecommendation{
		PrimaryCode:         selected.code,
		PrimaryDescription:  selected.description,
		TimeRangeLabel:      selected.timeLabel,
		Complexity:          a.ComplexityLevel,
		AlternativeCodes:    complexityAlternatives(a.ComplexityLevel),
		SupportingEvidence:  ev,
		ConfidenceScore:     complexityConfidence[a.ComplexityLevel],
		JustificationPoints: just,
	}
}

func complexityAlternatives(level Level) []AlternativeCode {
	var alts []AlternativeCode
	if level < LevelHigh {
		up := complexityToCode[level+1]
		alts = append(alts, AlternativeCode{
			Code:        up.code,
			Description: up.description,
			Reason:      "Supported if additional documented work raises the complexity one level",
		})
	}
	if level > LevelMinimal {
		down := complexityToCode[level-1]
		alts = append(alts, AlternativeCode{
			Code:        down.code,
			Description: down.description,
			Reason:      "Conservative option if any extracted signal is not separately documented",
		})
	}
	return alts
}

// countJustification emits the audit trail of underlying counts in a fixed
// order: problems, data, risk, medication changes, chronic conditions.
func countJustification(a ComplexityAnalysis) []string {
	return []string{
		fmt.Sprintf("Problems addressed: %d", a.ProblemCount),
		fmt.Sprintf("Data points reviewed/ordered: %d", a.DataPoints),
		fmt.Sprintf("Risk level: %s", a.RiskLevel),
		fmt.Sprintf("Medication changes: %d", a.MedicationChangeCount),
		fmt.Sprintf("Chronic conditions managed: %d", a.ChronicConditionCount),
	}
}
