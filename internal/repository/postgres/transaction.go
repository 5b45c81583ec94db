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

const transactionColumns = `
	t.id, t.hospital_id, t.bill_id, t.amount, t.payment_mode,
	t.created_at, t.updated_at,
	p.name AS patient_name, a.date AS date
`

const transactionJoins = `
	FROM transactions t
	JOIN bills b ON b.id = t.bill_id
	JOIN appointments a ON a.id = b.appointment_id
	JOIN patients p ON p.id = a.patient_id
`

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, hospital_id, bill_id, amount, payment_mode, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	transaction.ID = uuid.New()
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.HospitalID,
		transaction.BillID,
		transaction.Amount,
		transaction.PaymentMode,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionJoins + `
		WHERE t.hospital_id = $1 AND t.id = $2`

	var transaction model.Transaction
	err := r.db.GetContext(ctx, &transaction, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("transaction", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

func (r *transactionRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionJoins + `
		WHERE t.hospital_id = $1 ORDER BY t.created_at`

	var transactions []*model.Transaction
	if err := r.db.SelectContext(ctx, &transactions, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
