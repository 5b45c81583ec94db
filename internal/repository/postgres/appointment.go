package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

const appointmentColumns = `
	a.id, a.hospital_id, a.patient_id, a.doctor_id, a.department_id,
	a.date, a.present, a.diagnosed, a.created_at, a.updated_at,
	p.name AS patient_name,
	COALESCE(doc.name, '') AS doctor_name,
	COALESCE(dep.name, '') AS department_name
`

const appointmentJoins = `
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	LEFT JOIN accounts doc ON doc.id = a.doctor_id
	LEFT JOIN departments dep ON dep.id = a.department_id
`

// appointmentStore runs against either the pool or an open transaction.
// Slot validation and the final insert must share one transaction, so
// every query goes through the ext handle.
type appointmentStore struct {
	ext sqlx.ExtContext
}

type appointmentRepository struct {
	appointmentStore
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{appointmentStore{ext: db}, db}
}

// Transact runs fn against a store bound to a single transaction,
// committing on nil and rolling back otherwise.
func (r *appointmentRepository) Transact(ctx context.Context, fn func(repository.AppointmentStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&appointmentStore{ext: tx}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *appointmentStore) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE a.hospital_id = $1 AND a.id = $2`

	var appointment model.Appointment
	err := sqlx.GetContext(ctx, s.ext, &appointment, query, hospitalID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (s *appointmentStore) CountForSlot(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE hospital_id = $1 AND doctor_id = $2 AND date = $3
	`
	var count int
	if err := sqlx.GetContext(ctx, s.ext, &count, query, hospitalID, doctorID, date); err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (s *appointmentStore) FindDuplicate(ctx context.Context, hospitalID, doctorID, patientID, departmentID uuid.UUID, date string, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE hospital_id = $1 AND doctor_id = $2 AND patient_id = $3
		  AND department_id = $4 AND date = $5
	`
	args := []interface{}{hospitalID, doctorID, patientID, departmentID, date}
	if excludeID != nil {
		query += ` AND id <> $6`
		args = append(args, *excludeID)
	}

	var count int
	if err := sqlx.GetContext(ctx, s.ext, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check duplicate appointment: %w", err)
	}
	return count > 0, nil
}

func (s *appointmentStore) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, hospital_id, patient_id, doctor_id, department_id,
			date, present, diagnosed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := s.ext.ExecContext(ctx, query,
		appointment.ID,
		appointment.HospitalID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.DepartmentID,
		appointment.Date,
		appointment.Present,
		appointment.Diagnosed,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (s *appointmentStore) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, department_id = $3,
		    date = $4, updated_at = $5
		WHERE hospital_id = $6 AND id = $7
	`
	appointment.UpdatedAt = time.Now()

	result, err := s.ext.ExecContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.DepartmentID,
		appointment.Date,
		appointment.UpdatedAt,
		appointment.HospitalID,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE hospital_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + `
		WHERE a.hospital_id = $1 ORDER BY a.created_at`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ListForDate returns the token queue for a day: checked-in patients
// first, then arrival order.
func (r *appointmentRepository) ListForDate(ctx context.Context, hospitalID uuid.UUID, date string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + `
		WHERE a.hospital_id = $1 AND a.date = $2
		ORDER BY a.present DESC, a.created_at`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, hospitalID, date); err != nil {
		return nil, fmt.Errorf("failed to list appointments for date: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + `
		WHERE a.hospital_id = $1 AND a.doctor_id = $2
		ORDER BY a.created_at`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, hospitalID, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDoctorDate(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + `
		WHERE a.hospital_id = $1 AND a.doctor_id = $2 AND a.date = $3
		ORDER BY a.present DESC, a.created_at`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, hospitalID, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments for date: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) SetPresent(ctx context.Context, hospitalID, id uuid.UUID, present bool) error {
	query := `
		UPDATE appointments
		SET present = $1, updated_at = $2
		WHERE hospital_id = $3 AND id = $4
	`
	result, err := r.db.ExecContext(ctx, query, present, time.Now(), hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment presence: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) SetDiagnosed(ctx context.Context, hospitalID, id uuid.UUID) error {
	query := `
		UPDATE appointments
		SET diagnosed = TRUE, updated_at = $1
		WHERE hospital_id = $2 AND id = $3
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), hospitalID, id)
	if err != nil {
		return fmt.Errorf("failed to mark appointment diagnosed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}
