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

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	query := `
		INSERT INTO departments (id, hospital_id, name, fees, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	department.ID = uuid.New()
	department.CreatedAt = time.Now()
	department.UpdatedAt = department.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		department.ID,
		department.HospitalID,
		department.Name,
		department.Fees,
		department.CreatedAt,
		department.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Department, error) {
	query := `
		SELECT id, hospital_id, name, fees, created_at, updated_at
		FROM departments
		WHERE hospital_id = $1 AND id = $2
	`
	var department model.Department
	err := r.db.GetContext(ctx, &department, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("department", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &department, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Department, error) {
	query := `
		SELECT id, hospital_id, name, fees, created_at, updated_at
		FROM departments
		WHERE hospital_id = $1 AND name = $2
	`
	var department model.Department
	err := r.db.GetContext(ctx, &department, query, hospitalID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("department", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	query := `
		UPDATE departments
		SET name = $1, fees = $2, updated_at = $3
		WHERE hospital_id = $4 AND id = $5
	`
	department.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		department.Name,
		department.Fees,
		department.UpdatedAt,
		department.HospitalID,
		department.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("department", nil)
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM departments WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("department", nil)
	}
	return nil
}

func (r *departmentRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Department, error) {
	query := `
		SELECT id, hospital_id, name, fees, created_at, updated_at
		FROM departments
		WHERE hospital_id = $1
		ORDER BY created_at
	`
	var departments []*model.Department
	if err := r.db.SelectContext(ctx, &departments, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
