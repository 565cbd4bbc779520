package coding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AnalyzeRequest carries the encounter text plus optional record references
// for stored analyses.
type AnalyzeRequest struct {
	PatientID   *uuid.UUID     `json:"patient_id,omitempty"`
	EncounterID *uuid.UUID     `json:"encounter_id,omitempty"`
	Encounter   EncounterInput `json:"encounter"`
}

type Service struct {
	analyzer *Analyzer
	repo     AnalysisRepository
}

func NewService(analyzer *Analyzer, repo AnalysisRepository) *Service {
	return &Service{analyzer: analyzer, repo: repo}
}

// Analyze runs the engine without persisting anything. Used by the note
// editor for live previews while the provider is still dictating.
func (s *Service) Analyze(in EncounterInput) *AnalysisResult {
	return s.analyzer.Analyze(in)
}

// CreateAnalysis runs the engine and stores the result pending provider
// review. The engine itself cannot fail; only persistence can.
func (s *Service) CreateAnalysis(ctx context.Context, req *AnalyzeRequest) (*CodingAnalysis, error) {
	result := s.analyzer.Analyze(req.Encounter)

	record := &CodingAnalysis{
		PatientID:        req.PatientID,
		EncounterID:      req.EncounterID,
		PrimaryCode:      result.Recommendation.PrimaryCode,
		ComplexityLevel:  result.Analysis.ComplexityLevel,
		RiskLevel:        result.Analysis.RiskLevel,
		TimeSpentMinutes: result.Analysis.TimeSpentMinutes,
		ConfidenceScore:  result.Recommendation.ConfidenceScore,
		Status:           StatusPendingReview,
		Result:           result,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}
	return record, nil
}

func (s *Service) GetAnalysis(ctx context.Context, id uuid.UUID) (*CodingAnalysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAnalyses(ctx context.Context, limit, offset int) ([]*CodingAnalysis, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListAnalysesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CodingAnalysis, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

var validReviewActions = map[string]bool{
	StatusAccepted:   true,
	StatusOverridden: true,
}

// ReviewAnalysis records a provider's accept/override decision and moves the
// stored analysis out of pending-review. Overrides must say which code was
// actually billed.
func (s *Service) ReviewAnalysis(ctx context.Context, rev *CodingAnalysisReview) error {
	if rev.AnalysisID == uuid.Nil {
		return fmt.Errorf("analysis_id is required")
	}
	if rev.ReviewerID == uuid.Nil {
		return fmt.Errorf("reviewer_id is required")
	}
	if !validReviewActions[rev.Action] {
		return fmt.Errorf("invalid action: %s", rev.Action)
	}
	if rev.Action == StatusOverridden && (rev.BilledCode == nil || *rev.BilledCode == "") {
		return fmt.Errorf("billed_code is required when overriding")
	}
	if _, err := s.repo.GetByID(ctx, rev.AnalysisID); err != nil {
		return fmt.Errorf("analysis not found")
	}
	if err := s.repo.AddReview(ctx, rev); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, rev.AnalysisID, rev.Action)
}

func (s *Service) GetReviews(ctx context.Context, analysisID uuid.UUID) ([]*CodingAnalysisReview, error) {
	return s.repo.GetReviews(ctx, analysisID)
}
