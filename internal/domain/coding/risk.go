package coding

import (
	"regexp"
	"strconv"
	"strings"
)

// Risk category weights.
const (
	hospitalizationPoints  = 3
	recentDischargePoints  = 2
	lifeThreatPoints       = 3
	lifeThreatGroupCap     = 2
	highRiskMedPoints      = 2
	newMedicationPoints    = 1
	manyMedChangesPoints   = 1
	severityLanguagePoints = 2
)

// Score thresholds for the final ordinal mapping.
const (
	riskHighThreshold     = 8
	riskModerateThreshold = 5
	riskLowThreshold      = 2
)

// assessRisk scores acute and chronic risk indicators into an ordinal level.
// The running score is accumulated across every category before the final
// mapping; no category short-circuits the others.
func assessRisk(in EncounterInput, medChangeCount int) Level {
	score := riskScore(in, medChangeCount)
	switch {
	case score >= riskHighThreshold:
		return LevelHigh
	case score >= riskModerateThreshold:
		return LevelModerate
	case score >= riskLowThreshold:
		return LevelLow
	default:
		return LevelMinimal
	}
}

func riskScore(in EncounterInput, medChangeCount int) int {
	text := strings.Join(in.AssessmentLines, "\n") + "\n" +
		strings.Join(in.MedicationChangeLines, "\n") + "\n" + in.Transcript

	counted := newCategoryAccumulator()
	score := 0

	// Hospitalization, then post-discharge timing gated on it.
	if anyMatch(hospitalizationPatterns, text) && counted.Mark("hospitalization") {
		score += hospitalizationPoints
		if withinWeekOfDischarge(text) && counted.Mark("recent discharge") {
			score += recentDischargePoints
		}
	}

	// Life-threatening event groups, capped so a long problem list cannot
	// stack this category without bound.
	threatGroups := 0
	for _, g := range lifeThreatGroups {
		if threatGroups >= lifeThreatGroupCap {
			break
		}
		if g.matches(text) && counted.Mark("event:"+g.name) {
			score += lifeThreatPoints
			threatGroups++
		}
	}

	// Medication risk. The three signals combine; they are not exclusive.
	if anyMatch(highRiskMedPatterns, text) && counted.Mark("high-risk medication") {
		score += highRiskMedPoints
	}
	if newMedicationStarted(text) && counted.Mark("new medication") {
		score += newMedicationPoints
	}
	if medChangeCount >= 3 && counted.Mark("multiple medication changes") {
		score += manyMedChangesPoints
	}

	if anyMatch(severityPatterns, text) && counted.Mark("severity language") {
		score += severityLanguagePoints
	}

	// Chronic-condition burden.
	switch burden := countChronicConditions(text); {
	case burden >= 4:
		if counted.Mark("chronic burden") {
			score += 2
		}
	case burden == 3:
		if counted.Mark("chronic burden") {
			score += 1
		}
	}

	// Critical lab values captured from free text.
	if valueAtLeast(a1cValuePattern, text, 10) && counted.Mark("critical a1c") {
		score += 2
	}
	if valueAtLeast(glucoseValuePattern, text, 400) && counted.Mark("critical glucose") {
		score += 2
	}
	if valueAtLeast(creatinineValuePattern, text, 2.0) && counted.Mark("critical creatinine") {
		score += 2
	}

	// Structured vital thresholds.
	score += vitalsScore(in.Vitals, counted)

	return score
}

var newMedicationPattern = regexp.MustCompile(`(?i)\b(?:start(?:ed|ing)?|new|initiat\w*|add(?:ed|ing)?)\b.{0,40}\b(?:medication|med|therapy|` + strings.Join(medicationNames, "|") + `)\b`)

func newMedicationStarted(text string) bool {
	return newMedicationPattern.MatchString(text)
}

func withinWeekOfDischarge(text string) bool {
	if anyMatch(recentDischargePatterns, text) {
		return true
	}
	if m := recentDischargeDaysPattern.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil && days <= 7 {
			return true
		}
	}
	return false
}

func valueAtLeast(p *regexp.Regexp, text string, threshold float64) bool {
	for _, m := range p.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= threshold {
			return true
		}
	}
	return false
}

func vitalsScore(vitals map[string]string, counted *categoryAccumulator) int {
	score := 0
	for name, raw := range vitals {
		v, ok := leadingNumber(raw)
		if !ok {
			continue
		}
		switch normalizeVitalName(name) {
		case "glucose":
			if v > 300 && counted.Mark("vital glucose") {
				score++
			}
		case "a1c":
			if v > 10 && counted.Mark("vital a1c") {
				score += 2
			}
		case "systolic":
			if v > 180 && counted.Mark("vital systolic") {
				score++
			}
		case "heartrate":
			if (v > 120 || v < 50) && counted.Mark("vital heart rate") {
				score++
			}
		}
	}
	return score
}

func normalizeVitalName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(n)
	switch n {
	case "glucose", "bloodsugar", "bg":
		return "glucose"
	case "a1c", "hba1c":
		return "a1c"
	case "systolic", "systolicbp", "sbp", "bp", "bloodpressure":
		return "systolic"
	case "heartrate", "hr", "pulse":
		return "heartrate"
	}
	return n
}

// leadingNumber parses the first number in a reading, so "142/88" yields the
// systolic component and "9.4%" yields 9.4. Unparseable readings are skipped.
func leadingNumber(raw string) (float64, bool) {
	m := leadingNumberPattern.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var leadingNumberPattern = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`)
