package coding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type analysisRepoPG struct{ pool *pgxpool.Pool }

func NewAnalysisRepoPG(pool *pgxpool.Pool) AnalysisRepository {
	return &analysisRepoPG{pool: pool}
}

const analysisCols = `id, patient_id, encounter_id, primary_code, complexity_level,
	risk_level, time_spent_minutes, confidence_score, status, result, created_at, updated_at`

func (r *analysisRepoPG) scanAnalysis(row pgx.Row) (*CodingAnalysis, error) {
	var (
		a          CodingAnalysis
		complexity string
		risk       string
		result     []byte
	)
	err := row.Scan(&a.ID, &a.PatientID, &a.EncounterID, &a.PrimaryCode, &complexity,
		&risk, &a.TimeSpentMinutes, &a.ConfidenceScore, &a.Status, &result,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ComplexityLevel = ParseLevel(complexity)
	a.RiskLevel = ParseLevel(risk)
	if len(result) > 0 {
		var res AnalysisResult
		if err := json.Unmarshal(result, &res); err != nil {
			return nil, fmt.Errorf("decode stored result: %w", err)
		}
		a.Result = &res
	}
	return &a, nil
}

func (r *analysisRepoPG) Create(ctx context.Context, a *CodingAnalysis) error {
	a.ID = uuid.New()
	result, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO coding_analysis (id, patient_id, encounter_id, primary_code,
			complexity_level, risk_level, time_spent_minutes, confidence_score, status, result)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.EncounterID, a.PrimaryCode,
		a.ComplexityLevel.String(), a.RiskLevel.String(), a.TimeSpentMinutes,
		a.ConfidenceScore, a.Status, result).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *analysisRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CodingAnalysis, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+analysisCols+` FROM coding_analysis WHERE id = $1`, id)
	return r.scanAnalysis(row)
}

func (r *analysisRepoPG) List(ctx context.Context, limit, offset int) ([]*CodingAnalysis, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coding_analysis`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+analysisCols+` FROM coding_analysis
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	return items, total, err
}

func (r *analysisRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*CodingAnalysis, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM coding_analysis WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+analysisCols+` FROM coding_analysis WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	return items, total, err
}

func (r *analysisRepoPG) collect(rows pgx.Rows) ([]*CodingAnalysis, error) {
	var items []*CodingAnalysis
	for rows.Next() {
		a, err := r.scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *analysisRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coding_analysis SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("analysis %s not found", id)
	}
	return nil
}

func (r *analysisRepoPG) AddReview(ctx context.Context, rev *CodingAnalysisReview) error {
	rev.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO coding_analysis_review (id, analysis_id, reviewer_id, action, billed_code, comment)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		rev.ID, rev.AnalysisID, rev.ReviewerID, rev.Action, rev.BilledCode, rev.Comment).
		Scan(&rev.CreatedAt)
}

func (r *analysisRepoPG) GetReviews(ctx context.Context, analysisID uuid.UUID) ([]*CodingAnalysisReview, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, analysis_id, reviewer_id, action, billed_code, comment, created_at
		FROM coding_analysis_review WHERE analysis_id = $1 ORDER BY created_at`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CodingAnalysisReview
	for rows.Next() {
		var rev CodingAnalysisReview
		if err := rows.Scan(&rev.ID, &rev.AnalysisID, &rev.ReviewerID, &rev.Action,
			&rev.BilledCode, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &rev)
	}
	return items, rows.Err()
}
