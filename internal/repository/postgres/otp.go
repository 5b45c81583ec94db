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

// Upsert keeps one code per account: issuing a new code replaces any
// outstanding one.
func (r *otpRepository) Upsert(ctx context.Context, otp *model.PasswordOTP) error {
	query := `
		INSERT INTO password_otps (id, account_id, code, issued_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id)
		DO UPDATE SET code = EXCLUDED.code, issued_at = EXCLUDED.issued_at
	`
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	if otp.IssuedAt.IsZero() {
		otp.IssuedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, otp.ID, otp.AccountID, otp.Code, otp.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert otp: %w", err)
	}
	return nil
}

func (r *otpRepository) Get(ctx context.Context, accountID uuid.UUID) (*model.PasswordOTP, error) {
	query := `SELECT id, account_id, code, issued_at FROM password_otps WHERE account_id = $1`

	var otp model.PasswordOTP
	err := r.db.GetContext(ctx, &otp, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("otp", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}
	return &otp, nil
}
