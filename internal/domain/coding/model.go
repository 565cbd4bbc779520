package coding

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Level is the ordinal scale shared by risk and visit complexity.
type Level int

const (
	LevelMinimal Level = iota
	LevelLow
	LevelModerate
	LevelHigh
)

var levelNames = [...]string{"minimal", "low", "moderate", "high"}

func (l Level) String() string {
	if l < LevelMinimal || l > LevelHigh {
		return "minimal"
	}
	return levelNames[l]
}

// ParseLevel maps a level name back to its ordinal. Unknown names map to
// minimal rather than erroring, matching the degrade-to-defaults contract.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if s == name {
			return Level(i)
		}
	}
	return LevelMinimal
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("level must be a string: %w", err)
	}
	*l = ParseLevel(s)
	return nil
}

// Finding confidence labels.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// EncounterInput is the plain-data boundary with the dictation and
// note-structuring pipelines. It is never mutated by the engine.
type EncounterInput struct {
	Transcript            string            `json:"transcript"`
	AssessmentLines       []string          `json:"assessment_lines"`
	PlanLines             []string          `json:"plan_lines"`
	MedicationChangeLines []string          `json:"medication_change_lines"`
	Vitals                map[string]string `json:"vitals"`
}

// ComplexityAnalysis holds the structured signals extracted from one
// encounter. Produced once per Analyze call and read-only downstream.
type ComplexityAnalysis struct {
	TimeSpentMinutes      *int  `json:"time_spent_minutes,omitempty"`
	ProblemCount          int   `json:"problem_count"`
	DataPoints            int   `json:"data_points"`
	RiskLevel             Level `json:"risk_level"`
	MedicationChangeCount int   `json:"medication_change_count"`
	ChronicConditionCount int   `json:"chronic_condition_count"`
	ComplexityLevel       Level `json:"complexity_level"`
}

// ProcedureFinding is one in-office procedure detected in the encounter text.
type ProcedureFinding struct {
	Code              string  `json:"code"`
	Description       string  `json:"description"`
	ModifierSuggested *string `json:"modifier_suggested,omitempty"`
	Note              string  `json:"note"`
	Confidence        string  `json:"confidence"`
}

// DiagnosisSuggestion is one ICD-10 code suggested from assessment text.
type DiagnosisSuggestion struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
}

// AlternativeCode is an adjacent billing option with a one-line reason.
type AlternativeCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// SupportingEvidence records which documentation elements were present,
// for audit defense of the selected code.
type SupportingEvidence struct {
	TimeDocumented        bool `json:"time_documented"`
	ChiefComplaintPresent bool `json:"chief_complaint_present"`
	AssessmentPresent     bool `json:"assessment_present"`
	PlanPresent           bool `json:"plan_present"`
	FollowUpPresent       bool `json:"follow_up_present"`
}

// CodeRecommendation is the terminal billing artifact. Constructed once,
// never mutated after return.
type CodeRecommendation struct {
	PrimaryCode         string             `json:"primary_code"`
	PrimaryDescription  string             `json:"primary_description"`
	TimeRangeLabel      string             `json:"time_range_label"`
	Complexity          Level              `json:"complexity"`
	AlternativeCodes    []AlternativeCode  `json:"alternative_codes"`
	SupportingEvidence  SupportingEvidence `json:"supporting_evidence"`
	ConfidenceScore     int                `json:"confidence_score"`
	JustificationPoints []string           `json:"justification_points"`
}

// EMSignificance is the outcome of the separately-billable E/M gate for
// procedure-bundled encounters.
type EMSignificance struct {
	IsSignificant     bool   `json:"is_significant"`
	Reason            string `json:"reason"`
	SuggestedApproach string `json:"suggested_approach"`
}

// AnalysisResult bundles everything one Analyze call produces.
type AnalysisResult struct {
	Analysis             ComplexityAnalysis    `json:"analysis"`
	Procedures           []ProcedureFinding    `json:"procedures"`
	EMSignificance       EMSignificance        `json:"em_significance"`
	Recommendation       CodeRecommendation    `json:"recommendation"`
	DiagnosisSuggestions []DiagnosisSuggestion `json:"diagnosis_suggestions"`
}

// Review statuses for a stored analysis.
const (
	StatusPendingReview = "pending-review"
	StatusAccepted      = "accepted"
	StatusOverridden    = "overridden"
)

// CodingAnalysis maps to the coding_analysis table: one engine run retained
// for provider review and audit.
type CodingAnalysis struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	PatientID        *uuid.UUID      `db:"patient_id" json:"patient_id,omitempty"`
	EncounterID      *uuid.UUID      `db:"encounter_id" json:"encounter_id,omitempty"`
	PrimaryCode      string          `db:"primary_code" json:"primary_code"`
	ComplexityLevel  Level           `db:"complexity_level" json:"complexity_level"`
	RiskLevel        Level           `db:"risk_level" json:"risk_level"`
	TimeSpentMinutes *int            `db:"time_spent_minutes" json:"time_spent_minutes,omitempty"`
	ConfidenceScore  int             `db:"confidence_score" json:"confidence_score"`
	Status           string          `db:"status" json:"status"`
	Result           *AnalysisResult `db:"result" json:"result"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// CodingAnalysisReview maps to the coding_analysis_review table: a provider's
// accept/override decision on a stored recommendation.
type CodingAnalysisReview struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AnalysisID uuid.UUID `db:"analysis_id" json:"analysis_id"`
	ReviewerID uuid.UUID `db:"reviewer_id" json:"reviewer_id"`
	Action     string    `db:"action" json:"action"`
	BilledCode *string   `db:"billed_code" json:"billed_code,omitempty"`
	Comment    *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
