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

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	query := `
		INSERT INTO hospitals (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	hospital.ID = uuid.New()
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = hospital.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		hospital.ID,
		hospital.Name,
		hospital.CreatedAt,
		hospital.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	query := `SELECT id, name, created_at, updated_at FROM hospitals WHERE id = $1`

	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("hospital", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *hospitalRepository) GetByName(ctx context.Context, name string) (*model.Hospital, error) {
	query := `SELECT id, name, created_at, updated_at FROM hospitals WHERE name = $1`

	var hospital model.Hospital
	err := r.db.GetContext(ctx, &hospital, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("hospital", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}
