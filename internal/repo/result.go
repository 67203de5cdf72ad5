package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssessmentResult é o registro persistido de uma aplicação concluída
// do teste de atenção.
type AssessmentResult struct {
	ID                  uuid.UUID
	PatientID           uuid.UUID
	ProfessionalID      uuid.UUID
	RunID               uuid.UUID
	TargetType          int
	TotalTiles          int
	TotalTargets        int
	CorrectlySelected   int
	IncorrectlySelected int
	MissedTargets       int
	TotalSelections     int
	AccuracyPercent     float64
	ElapsedSeconds      int
	TimeLimitSeconds    int
	AppliedAt           time.Time
}

func CreateAssessmentResult(ctx context.Context, pool *pgxpool.Pool, r *AssessmentResult) error {
	return pool.QueryRow(ctx, `
		INSERT INTO assessment_results (patient_id, professional_id, run_id, target_type,
			total_tiles, total_targets, correctly_selected, incorrectly_selected,
			missed_targets, total_selections, accuracy_percent,
			elapsed_seconds, time_limit_seconds, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, r.PatientID, r.ProfessionalID, r.RunID, r.TargetType,
		r.TotalTiles, r.TotalTargets, r.CorrectlySelected, r.IncorrectlySelected,
		r.MissedTargets, r.TotalSelections, r.AccuracyPercent,
		r.ElapsedSeconds, r.TimeLimitSeconds, r.AppliedAt).Scan(&r.ID)
}

func AssessmentResultsByPatient(ctx context.Context, pool *pgxpool.Pool, patientID, professionalID uuid.UUID) ([]AssessmentResult, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, patient_id, professional_id, run_id, target_type,
		       total_tiles, total_targets, correctly_selected, incorrectly_selected,
		       missed_targets, total_selections, accuracy_percent,
		       elapsed_seconds, time_limit_seconds, applied_at
		FROM assessment_results
		WHERE patient_id = $1 AND professional_id = $2
		ORDER BY applied_at DESC
	`, patientID, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []AssessmentResult
	for rows.Next() {
		var r AssessmentResult
		if err := rows.Scan(&r.ID, &r.PatientID, &r.ProfessionalID, &r.RunID, &r.TargetType,
			&r.TotalTiles, &r.TotalTargets, &r.CorrectlySelected, &r.IncorrectlySelected,
			&r.MissedTargets, &r.TotalSelections, &r.AccuracyPercent,
			&r.ElapsedSeconds, &r.TimeLimitSeconds, &r.AppliedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func AssessmentResultByID(ctx context.Context, pool *pgxpool.Pool, id, professionalID uuid.UUID) (*AssessmentResult, error) {
	var r AssessmentResult
	err := pool.QueryRow(ctx, `
		SELECT id, patient_id, professional_id, run_id, target_type,
		       total_tiles, total_targets, correctly_selected, incorrectly_selected,
		       missed_targets, total_selections, accuracy_percent,
		       elapsed_seconds, time_limit_seconds, applied_at
		FROM assessment_results
		WHERE id = $1 AND professional_id = $2
	`, id, professionalID).Scan(&r.ID, &r.PatientID, &r.ProfessionalID, &r.RunID, &r.TargetType,
		&r.TotalTiles, &r.TotalTargets, &r.CorrectlySelected, &r.IncorrectlySelected,
		&r.MissedTargets, &r.TotalSelections, &r.AccuracyPercent,
		&r.ElapsedSeconds, &r.TimeLimitSeconds, &r.AppliedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
