package coding

import (
	"regexp"
	"strings"
)

var (
	thyroidUSPattern   = regexp.MustCompile(`(?i)thyroid (?:ultrasound|us\b|sonogram)|ultrasound of the thyroid`)
	fnaPattern         = regexp.MustCompile(`(?i)fine[- ]needle aspiration|\bfna\b|thyroid (?:nodule )?biopsy|biopsy of (?:the )?thyroid`)
	fnaGuidancePattern = regexp.MustCompile(`(?i)(?:ultrasound|us|image)[- ]guid(?:ed|ance)`)
	ekgPattern         = regexp.MustCompile(`(?i)\bekg\b|\becg\b|electrocardiogram`)
	ekgInterpPattern   = regexp.MustCompile(`(?i)(?:ekg|ecg|electrocardiogram)\s*(?:was\s+)?(?:showed|shows|interpret|read|reviewed|demonstrat)|interpret(?:ed|ation)\s+(?:of\s+)?(?:the\s+)?(?:ekg|ecg)`)
	cgmPattern         = regexp.MustCompile(`(?i)(?:\bcgm\b|continuous glucose monitor|dexcom|libre).{0,40}?(?:set ?up|setup|placement|placed|insert|applied|start|initiat|train)`)
	pumpPattern        = regexp.MustCompile(`(?i)insulin pump.{0,40}?(?:program|adjust|setting|initiat|train|download)`)
	spirometryPattern  = regexp.MustCompile(`(?i)spirometry|pulmonary function test|\bpft\b`)
)

// detectProcedures scans the encounter text for known in-office procedures.
// Each procedure is tested independently; distinct procedures may co-occur.
func detectProcedures(in EncounterInput) []ProcedureFinding {
	text := in.Transcript + "\n" +
		strings.Join(in.PlanLines, "\n") + "\n" +
		strings.Join(in.AssessmentLines, "\n")

	var findings []ProcedureFinding

	if mentionsPerformed(text, thyroidUSPattern) {
		findings = append(findings, ProcedureFinding{
			Code:        "76536",
			Description: "Ultrasound, soft tissues of head and neck (thyroid)",
			Note:        "Thyroid ultrasound documented in encounter",
			Confidence:  ConfidenceHigh,
		})
	}

	if mentionsPerformed(text, fnaPattern) {
		if fnaGuidancePattern.MatchString(text) {
			findings = append(findings, ProcedureFinding{
				Code:        "10005",
				Description: "Fine needle aspiration biopsy, including ultrasound guidance",
				Note:        "FNA with imaging guidance documented",
				Confidence:  ConfidenceHigh,
			})
		} else {
			findings = append(findings, ProcedureFinding{
				Code:        "10021",
				Description: "Fine needle aspiration biopsy, without imaging guidance",
				Note:        "FNA documented; no imaging guidance language found",
				Confidence:  ConfidenceMedium,
			})
		}
	}

	if mentionsPerformed(text, ekgPattern) {
		if ekgInterpPattern.MatchString(text) {
			findings = append(findings, ProcedureFinding{
				Code:        "93000",
				Description: "Electrocardiogram, complete with interpretation and report",
				Note:        "EKG performed and interpreted in office",
				Confidence:  ConfidenceHigh,
			})
		} else {
			findings = append(findings, ProcedureFinding{
				Code:        "93005",
				Description: "Electrocardiogram, tracing only",
				Note:        "EKG performed; no interpretation language found",
				Confidence:  ConfidenceMedium,
			})
		}
	}

	if mentionsPerformed(text, cgmPattern) {
		findings = append(findings, ProcedureFinding{
			Code:        "95249",
			Description: "CGM startup and training, patient-provided equipment",
			Note:        "Continuous glucose monitor setup documented",
			Confidence:  ConfidenceMedium,
		})
	}

	if mentionsPerformed(text, pumpPattern) {
		findings = append(findings, ProcedureFinding{
			Code:        "98960",
			Description: "Insulin pump programming and self-management training",
			Note:        "Insulin pump programming documented",
			Confidence:  ConfidenceMedium,
		})
	}

	if mentionsPerformed(text, spirometryPattern) {
		findings = append(findings, ProcedureFinding{
			Code:        "94010",
			Description: "Spirometry, including graphic record",
			Note:        "Spirometry performed in office",
			Confidence:  ConfidenceMedium,
		})
	}

	return findings
}

// mentionsPerformed reports whether the pattern appears in a sentence that
// is not just an order or referral, so "order EKG" in the plan does not read
// as an EKG performed today.
func mentionsPerformed(text string, p *regexp.Regexp) bool {
	for _, seg := range splitSentences(text) {
		if p.MatchString(seg) && !orderedOnlyPattern.MatchString(seg) {
			return true
		}
	}
	return false
}

var orderedOnlyPattern = regexp.MustCompile(`(?i)\b(?:order(?:ed|ing)?|will (?:get|obtain|schedule)|schedule[d]?|refer(?:red|ral)?|pending)\b`)
