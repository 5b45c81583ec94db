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

const accountColumns = `
	a.id, a.hospital_id, a.role_id, a.department_id,
	a.name, a.email, a.mobile, a.password,
	a.created_at, a.updated_at,
	r.name AS role_name, d.name AS department_name, h.name AS hospital_name
`

const accountJoins = `
	FROM accounts a
	JOIN roles r ON r.id = a.role_id
	JOIN departments d ON d.id = a.department_id
	JOIN hospitals h ON h.id = a.hospital_id
`

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, hospital_id, role_id, department_id,
			name, email, mobile, password,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.HospitalID,
		account.RoleID,
		account.DepartmentID,
		account.Name,
		account.Email,
		account.Mobile,
		account.Password,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + ` WHERE a.hospital_id = $1 AND a.id = $2`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + ` WHERE a.email = $1`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmailOrMobile(ctx context.Context, username string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + ` WHERE a.email = $1 OR a.mobile = $1`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("account", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET role_id = $1, department_id = $2, name = $3,
		    email = $4, mobile = $5, updated_at = $6
		WHERE hospital_id = $7 AND id = $8
	`
	account.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		account.RoleID,
		account.DepartmentID,
		account.Name,
		account.Email,
		account.Mobile,
		account.UpdatedAt,
		account.HospitalID,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE accounts SET password = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, hash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + ` WHERE a.hospital_id = $1 ORDER BY a.created_at`

	var accounts []*model.Account
	if err := r.db.SelectContext(ctx, &accounts, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) CountAdmins(ctx context.Context, hospitalID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM accounts a
		JOIN roles r ON r.id = a.role_id
		WHERE a.hospital_id = $1 AND r.name = $2
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, hospitalID, model.AdminRoleName); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *accountRepository) GetDoctor(ctx context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + `
		WHERE a.hospital_id = $1 AND a.id = $2 AND r.name = $3`

	var account model.Account
	err := r.db.GetContext(ctx, &account, query, hospitalID, id, model.DoctorRoleName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("doctor", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) ListDoctorsByDepartment(ctx context.Context, hospitalID, departmentID uuid.UUID) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + accountJoins + `
		WHERE a.hospital_id = $1 AND a.department_id = $2 AND r.name = $3
		ORDER BY a.created_at`

	var accounts []*model.Account
	if err := r.db.SelectContext(ctx, &accounts, query, hospitalID, departmentID, model.DoctorRoleName); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return accounts, nil
}
