package model

import (
	"github.com/google/uuid"
)

// Appointment is a booking of a patient against a doctor for a
// calendar date. Date is stored as an ISO "2006-01-02" string so that
// lexicographic order is chronological order.
type Appointment struct {
	Base
	HospitalID   uuid.UUID     `json:"hospital_id" db:"hospital_id"`
	PatientID    uuid.UUID     `json:"patient_id" db:"patient_id"`
	DoctorID     uuid.NullUUID `json:"doctor_id" db:"doctor_id"`
	DepartmentID uuid.NullUUID `json:"department_id" db:"department_id"`
	Date         string        `json:"date" db:"date"`
	Present      bool          `json:"present" db:"present"`
	Diagnosed    bool          `json:"diagnosed" db:"diagnosed"`

	// Joined display fields, populated by list queries.
	PatientName    string `json:"patient_name,omitempty" db:"patient_name"`
	DoctorName     string `json:"doctor_name,omitempty" db:"doctor_name"`
	DepartmentName string `json:"department_name,omitempty" db:"department_name"`
}

type CreateAppointmentRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID     uuid.UUID `json:"doctor_id" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	Date         string    `json:"date" binding:"required"`
}

type UpdateAppointmentRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID     uuid.UUID `json:"doctor_id" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	Date         string    `json:"date" binding:"required"`
}
