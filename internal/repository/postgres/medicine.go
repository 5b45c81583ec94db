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

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	query := `
		INSERT INTO medicines (
			id, hospital_id, name, price, stock, discount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	medicine.ID = uuid.New()
	medicine.CreatedAt = time.Now()
	medicine.UpdatedAt = medicine.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		medicine.ID,
		medicine.HospitalID,
		medicine.Name,
		medicine.Price,
		medicine.Stock,
		medicine.Discount,
		medicine.CreatedAt,
		medicine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (r *medicineRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Medicine, error) {
	query := `
		SELECT id, hospital_id, name, price, stock, discount, created_at, updated_at
		FROM medicines
		WHERE hospital_id = $1 AND id = $2
	`
	var medicine model.Medicine
	err := r.db.GetContext(ctx, &medicine, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("medicine", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return &medicine, nil
}

func (r *medicineRepository) GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Medicine, error) {
	query := `
		SELECT id, hospital_id, name, price, stock, discount, created_at, updated_at
		FROM medicines
		WHERE hospital_id = $1 AND name = $2
	`
	var medicine model.Medicine
	err := r.db.GetContext(ctx, &medicine, query, hospitalID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("medicine", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return &medicine, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, price = $2, stock = $3, discount = $4, updated_at = $5
		WHERE hospital_id = $6 AND id = $7
	`
	medicine.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		medicine.Name,
		medicine.Price,
		medicine.Stock,
		medicine.Discount,
		medicine.UpdatedAt,
		medicine.HospitalID,
		medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medicine: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("medicine", nil)
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM medicines WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("medicine", nil)
	}
	return nil
}

func (r *medicineRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Medicine, error) {
	query := `
		SELECT id, hospital_id, name, price, stock, discount, created_at, updated_at
		FROM medicines
		WHERE hospital_id = $1
		ORDER BY created_at
	`
	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) ListInStock(ctx context.Context, hospitalID uuid.UUID) ([]*model.Medicine, error) {
	query := `
		SELECT id, hospital_id, name, price, stock, discount, created_at, updated_at
		FROM medicines
		WHERE hospital_id = $1 AND stock > 0
		ORDER BY name
	`
	var medicines []*model.Medicine
	if err := r.db.SelectContext(ctx, &medicines, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list medicines in stock: %w", err)
	}
	return medicines, nil
}

// DecrementStock refuses to go below zero: the WHERE clause guards the
// remaining quantity so concurrent settlements cannot oversell.
func (r *medicineRepository) DecrementStock(ctx context.Context, hospitalID, id uuid.UUID, quantity int) error {
	query := `
		UPDATE medicines
		SET stock = stock - $1, updated_at = $2
		WHERE hospital_id = $3 AND id = $4 AND stock >= $1
	`
	result, err := r.db.ExecContext(ctx, query, quantity, time.Now(), hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.Conflict("insufficient stock", nil)
	}
	return nil
}
