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

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	query := `
		INSERT INTO roles (id, hospital_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	role.ID = uuid.New()
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		role.ID,
		role.HospitalID,
		role.Name,
		role.CreatedAt,
		role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *roleRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Role, error) {
	query := `
		SELECT id, hospital_id, name, created_at, updated_at
		FROM roles
		WHERE hospital_id = $1 AND id = $2
	`
	var role model.Role
	err := r.db.GetContext(ctx, &role, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("role", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Role, error) {
	query := `
		SELECT id, hospital_id, name, created_at, updated_at
		FROM roles
		WHERE hospital_id = $1 AND name = $2
	`
	var role model.Role
	err := r.db.GetContext(ctx, &role, query, hospitalID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("role", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	query := `
		UPDATE roles
		SET name = $1, updated_at = $2
		WHERE hospital_id = $3 AND id = $4
	`
	role.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		role.Name,
		role.UpdatedAt,
		role.HospitalID,
		role.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("role", nil)
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM roles WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("role", nil)
	}
	return nil
}

func (r *roleRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Role, error) {
	query := `
		SELECT id, hospital_id, name, created_at, updated_at
		FROM roles
		WHERE hospital_id = $1
		ORDER BY created_at
	`
	var roles []*model.Role
	if err := r.db.SelectContext(ctx, &roles, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
