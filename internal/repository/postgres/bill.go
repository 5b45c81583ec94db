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

const billColumns = `
	b.id, b.hospital_id, b.appointment_id, b.lines, b.fees, b.total, b.paid,
	b.created_at, b.updated_at,
	p.name AS patient_name,
	COALESCE(doc.name, '') AS doctor_name,
	a.date AS date
`

const billJoins = `
	FROM bills b
	JOIN appointments a ON a.id = b.appointment_id
	JOIN patients p ON p.id = a.patient_id
	LEFT JOIN accounts doc ON doc.id = a.doctor_id
`

func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	query := `
		INSERT INTO bills (
			id, hospital_id, appointment_id, lines, fees, total, paid,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	bill.ID = uuid.New()
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = bill.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.HospitalID,
		bill.AppointmentID,
		bill.Lines,
		bill.Fees,
		bill.Total,
		bill.Paid,
		bill.CreatedAt,
		bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

func (r *billRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Bill, error) {
	query := `SELECT ` + billColumns + billJoins + ` WHERE b.hospital_id = $1 AND b.id = $2`

	var bill model.Bill
	err := r.db.GetContext(ctx, &bill, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("bill", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) GetByAppointment(ctx context.Context, hospitalID, appointmentID uuid.UUID) (*model.Bill, error) {
	query := `SELECT ` + billColumns + billJoins + `
		WHERE b.hospital_id = $1 AND b.appointment_id = $2`

	var bill model.Bill
	err := r.db.GetContext(ctx, &bill, query, hospitalID, appointmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("bill", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

// MarkPaid flips the paid flag exactly once. A second settlement of the
// same bill finds no unpaid row and reports a conflict.
func (r *billRepository) MarkPaid(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `
		UPDATE bills
		SET paid = TRUE, updated_at = $1
		WHERE hospital_id = $2 AND id = $3 AND paid = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to mark bill paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.Conflict("bill already paid", nil)
	}
	return nil
}

func (r *billRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Bill, error) {
	query := `SELECT ` + billColumns + billJoins + `
		WHERE b.hospital_id = $1 ORDER BY b.created_at`

	var bills []*model.Bill
	if err := r.db.SelectContext(ctx, &bills, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}
