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

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, hospital_id, name, email, mobile,
			gender, age, address, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.HospitalID,
		patient.Name,
		patient.Email,
		patient.Mobile,
		patient.Gender,
		patient.Age,
		patient.Address,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, hospital_id, name, email, mobile,
		       gender, age, address, created_at, updated_at
		FROM patients
		WHERE hospital_id = $1 AND id = $2
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByContact(ctx context.Context, hospitalID uuid.UUID, email, mobile string) (*model.Patient, error) {
	query := `
		SELECT id, hospital_id, name, email, mobile,
		       gender, age, address, created_at, updated_at
		FROM patients
		WHERE hospital_id = $1 AND (email = $2 OR mobile = $3)
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, hospitalID, email, mobile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, mobile = $3, gender = $4,
		    age = $5, address = $6, updated_at = $7
		WHERE hospital_id = $8 AND id = $9
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Email,
		patient.Mobile,
		patient.Gender,
		patient.Age,
		patient.Address,
		patient.UpdatedAt,
		patient.HospitalID,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Patient, error) {
	query := `
		SELECT id, hospital_id, name, email, mobile,
		       gender, age, address, created_at, updated_at
		FROM patients
		WHERE hospital_id = $1
		ORDER BY created_at
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
