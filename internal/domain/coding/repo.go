package coding

import (
	"context"

	"github.com/google/uuid"
)

type AnalysisRepository interface {
	Create(ctx context.Context, a *CodingAnalysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*CodingAnalysis, error)
	List(ctx context.Context, limit, offset int) ([]*CodingAnalysis, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CodingAnalysis, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// Reviews
	AddReview(ctx context.Context, r *CodingAnalysisReview) error
	GetReviews(ctx context.Context, analysisID uuid.UUID) ([]*CodingAnalysisReview, error)
}
