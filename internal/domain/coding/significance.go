package coding

import (
	"fmt"
	"strings"
)

// assessEMSignificance decides whether the evaluation-and-management work is
// separately billable when a procedure was performed. A simple majority-style
// gate over five factors, not a weighted score.
func assessEMSignificance(a ComplexityAnalysis, hasProcedure bool) EMSignificance {
	if !hasProcedure {
		return EMSignificance{
			IsSignificant:     true,
			Reason:            "No procedure performed; standard E/M billing applies",
			SuggestedApproach: "Bill E/M code alone",
		}
	}

	var met []string
	if a.ProblemCount >= 2 {
		met = append(met, fmt.Sprintf("%d problems addressed beyond the procedure", a.ProblemCount))
	}
	if a.MedicationChangeCount >= 1 {
		met = append(met, fmt.Sprintf("%d medication change(s)", a.MedicationChangeCount))
	}
	if a.ChronicConditionCount >= 2 {
		met = append(met, fmt.Sprintf("%d chronic conditions managed", a.ChronicConditionCount))
	}
	if a.RiskLevel >= LevelModerate {
		met = append(met, fmt.Sprintf("%s risk level", a.RiskLevel))
	}
	if a.DataPoints >= 3 {
		met = append(met, fmt.Sprintf("%d data points reviewed", a.DataPoints))
	}

	if len(met) >= 2 {
		return EMSignificance{
			IsSignificant:     true,
			Reason:            "Significant separately identifiable E/M: " + strings.Join(met, "; "),
			SuggestedApproach: "Bill E/M with modifier -25 plus the procedure code",
		}
	}

	reason := "E/M work does not stand apart from the procedure"
	if len(met) == 1 {
		reason = "Only one significance factor present: " + met[0]
	}
	return EMSignificance{
		IsSignificant:     false,
		Reason:            reason,
		SuggestedApproach: "Bill the procedure alone, or a minimal E/M code if any separate service was provided",
	}
}
