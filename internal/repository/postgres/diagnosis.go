package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

const diagnosisColumns = `
	dg.id, dg.hospital_id, dg.appointment_id, dg.doctor_id,
	dg.symptoms, dg.notes, dg.prescription, dg.created_at, dg.updated_at,
	p.name AS patient_name, doc.name AS doctor_name, a.date AS date
`

const diagnosisJoins = `
	FROM diagnoses dg
	JOIN appointments a ON a.id = dg.appointment_id
	JOIN patients p ON p.id = a.patient_id
	JOIN accounts doc ON doc.id = dg.doctor_id
`

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *model.Diagnosis) error {
	query := `
		INSERT INTO diagnoses (
			id, hospital_id, appointment_id, doctor_id,
			symptoms, notes, prescription, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	diagnosis.ID = uuid.New()
	diagnosis.CreatedAt = time.Now()
	diagnosis.UpdatedAt = diagnosis.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		diagnosis.ID,
		diagnosis.HospitalID,
		diagnosis.AppointmentID,
		diagnosis.DoctorID,
		diagnosis.Symptoms,
		diagnosis.Notes,
		diagnosis.Prescription,
		diagnosis.CreatedAt,
		diagnosis.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create diagnosis: %w", err)
	}
	return nil
}

func (r *diagnosisRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Diagnosis, error) {
	query := `SELECT ` + diagnosisColumns + diagnosisJoins + ` WHERE dg.hospital_id = $1 AND dg.id = $2`

	var diagnosis model.Diagnosis
	err := r.db.GetContext(ctx, &diagnosis, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("diagnosis", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnosis: %w", err)
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) GetByAppointment(ctx context.Context, hospitalID, appointmentID uuid.UUID) (*model.Diagnosis, error) {
	query := `SELECT ` + diagnosisColumns + diagnosisJoins + `
		WHERE dg.hospital_id = $1 AND dg.appointment_id = $2`

	var diagnosis model.Diagnosis
	err := r.db.GetContext(ctx, &diagnosis, query, hospitalID, appointmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("diagnosis", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnosis: %w", err)
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Diagnosis, error) {
	query := `SELECT ` + diagnosisColumns + diagnosisJoins + `
		WHERE dg.hospital_id = $1 ORDER BY dg.created_at`

	var diagnoses []*model.Diagnosis
	if err := r.db.SelectContext(ctx, &diagnoses, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.Diagnosis, error) {
	query := `SELECT ` + diagnosisColumns + diagnosisJoins + `
		WHERE dg.hospital_id = $1 AND dg.doctor_id = $2 ORDER BY dg.created_at`

	var diagnoses []*model.Diagnosis
	if err := r.db.SelectContext(ctx, &diagnoses, query, hospitalID, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor diagnoses: %w", err)
	}
	return diagnoses, nil
}
