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

func (r *availabilityRepository) Get(ctx context.Context, hospitalID, doctorID uuid.UUID) (*model.DoctorAvailability, error) {
	query := `
		SELECT id, hospital_id, doctor_id, dates, created_at, updated_at
		FROM doctor_availability
		WHERE hospital_id = $1 AND doctor_id = $2
	`
	var availability model.DoctorAvailability
	err := r.db.GetContext(ctx, &availability, query, hospitalID, doctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("availability record", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return &availability, nil
}

func (r *availabilityRepository) Create(ctx context.Context, availability *model.DoctorAvailability) error {
	query := `
		INSERT INTO doctor_availability (
			id, hospital_id, doctor_id, dates, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	availability.ID = uuid.New()
	availability.CreatedAt = time.Now()
	availability.UpdatedAt = availability.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		availability.ID,
		availability.HospitalID,
		availability.DoctorID,
		availability.Dates,
		availability.CreatedAt,
		availability.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Update(ctx context.Context, availability *model.DoctorAvailability) error {
	query := `
		UPDATE doctor_availability
		SET dates = $1, updated_at = $2
		WHERE hospital_id = $3 AND doctor_id = $4
	`
	availability.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		availability.Dates,
		availability.UpdatedAt,
		availability.HospitalID,
		availability.DoctorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability record", nil)
	}
	return nil
}
