package coding

import (
	"regexp"
	"strings"
)

type dxPattern struct {
	pattern     *regexp.Regexp
	code        string
	description string
	family      string
	confidence  string
}

func dx(pat, code, description, family, confidence string) dxPattern {
	return dxPattern{
		pattern:     regexp.MustCompile(`(?i)` + pat),
		code:        code,
		description: description,
		family:      family,
		confidence:  confidence,
	}
}

// Specific patterns are evaluated before generic ones; a matched family
// suppresses every later entry in the same family.
var dxSpecificPatterns = []dxPattern{
	dx(`uncontrolled (?:type 2 )?diabetes|poorly controlled (?:type 2 )?diabetes|diabetes.{0,30}uncontrolled`, "E11.65", "Type 2 diabetes mellitus with hyperglycemia", "E11", ConfidenceHigh),
	dx(`diabet(?:es|ic).{0,30}neuropathy|diabetic peripheral neuropathy`, "E11.42", "Type 2 diabetes mellitus with diabetic polyneuropathy", "E11", ConfidenceHigh),
	dx(`type 1 diabetes|\bt1dm\b`, "E10.9", "Type 1 diabetes mellitus without complications", "E10", ConfidenceHigh),
	dx(`morbid obesity|severe obesity|\bbmi\b\D{0,6}4[0-9]`, "E66.01", "Morbid (severe) obesity due to excess calories", "E66", ConfidenceHigh),
	dx(`ckd stage 3|chronic kidney disease,? stage 3`, "N18.3", "Chronic kidney disease, stage 3", "N18", ConfidenceHigh),
	dx(`hashimoto`, "E06.3", "Autoimmune thyroiditis", "E06", ConfidenceHigh),
	dx(`graves`, "E05.00", "Thyrotoxicosis with diffuse goiter", "E05", ConfidenceHigh),
}

var dxGenericPatterns = []dxPattern{
	dx(`type 2 diabetes|\bt2dm\b|\bdm2\b|\bdiabetes\b`, "E11.9", "Type 2 diabetes mellitus without complications", "E11", ConfidenceMedium),
	dx(`prediabetes|impaired fasting glucose`, "R73.03", "Prediabetes", "R73", ConfidenceMedium),
	dx(`hypertension|\bhtn\b`, "I10", "Essential (primary) hypertension", "I10", ConfidenceMedium),
	dx(`hyperlipidemia|dyslipidemia|high cholesterol`, "E78.5", "Hyperlipidemia, unspecified", "E78", ConfidenceMedium),
	dx(`hypothyroid`, "E03.9", "Hypothyroidism, unspecified", "E03", ConfidenceMedium),
	dx(`hyperthyroid`, "E05.90", "Thyrotoxicosis, unspecified", "E05", ConfidenceMedium),
	dx(`thyroid nodule`, "E04.1", "Nontoxic single thyroid nodule", "E04", ConfidenceMedium),
	dx(`obes(?:e|ity)`, "E66.9", "Obesity, unspecified", "E66", ConfidenceMedium),
	dx(`chronic kidney disease|\bckd\b`, "N18.9", "Chronic kidney disease, unspecified", "N18", ConfidenceMedium),
	dx(`\bpcos\b|polycystic ovar`, "E28.2", "Polycystic ovarian syndrome", "E28", ConfidenceMedium),
	dx(`vitamin d deficiency`, "E55.9", "Vitamin D deficiency, unspecified", "E55", ConfidenceMedium),
	dx(`osteoporosis`, "M81.0", "Age-related osteoporosis without current pathological fracture", "M81", ConfidenceMedium),
	dx(`depression`, "F32.9", "Major depressive disorder, single episode, unspecified", "F32", ConfidenceMedium),
	dx(`anxiety`, "F41.9", "Anxiety disorder, unspecified", "F41", ConfidenceMedium),
	dx(`fatigue|\btired\b|malaise`, "R53.83", "Other fatigue", "R53", ConfidenceLow),
}

// suggestDiagnoses maps assessment text to ICD-10 suggestions. Specific
// entries run first so "uncontrolled type 2 diabetes" emits E11.65 and
// suppresses the generic E11.9 from the same family.
func suggestDiagnoses(assessmentLines []string) []DiagnosisSuggestion {
	text := strings.Join(assessmentLines, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	families := newCategoryAccumulator()
	var out []DiagnosisSuggestion

	for _, entry := range dxSpecificPatterns {
		if entry.pattern.MatchString(text) && families.Mark(entry.family) {
			out = append(out, DiagnosisSuggestion{
				Code:        entry.code,
				Description: entry.description,
				Confidence:  entry.confidence,
			})
		}
	}
	for _, entry := range dxGenericPatterns {
		if families.Has(entry.family) {
			continue
		}
		if entry.pattern.MatchString(text) && families.Mark(entry.family) {
			out = append(out, DiagnosisSuggestion{
				Code:        entry.code,
				Description: entry.description,
				Confidence:  entry.confidence,
			})
		}
	}
	return out
}
