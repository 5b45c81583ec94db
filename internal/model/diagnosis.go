package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PrescriptionLine is one medicine entry of a diagnosis. Name and
// price are captured at prescription time so later catalog edits do
// not rewrite history.
type PrescriptionLine struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Discount   float64   `json:"discount"`
	Quantity   int       `json:"quantity"`
}

// PrescriptionLines persists as a JSONB column.
type PrescriptionLines []PrescriptionLine

func (p PrescriptionLines) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]PrescriptionLine{})
	}
	return json.Marshal(p)
}

func (p *PrescriptionLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("prescription lines: cannot scan %T", src)
	}
}

// Diagnosis is the doctor's record for one appointment. At most one
// diagnosis exists per appointment.
type Diagnosis struct {
	Base
	HospitalID    uuid.UUID         `json:"hospital_id" db:"hospital_id"`
	AppointmentID uuid.UUID         `json:"appointment_id" db:"appointment_id"`
	DoctorID      uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Symptoms      string            `json:"symptoms" db:"symptoms"`
	Notes         string            `json:"notes" db:"notes"`
	Prescription  PrescriptionLines `json:"prescription" db:"prescription"`

	// Joined display fields, populated by list queries.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
	DoctorName  string `json:"doctor_name,omitempty" db:"doctor_name"`
	Date        string `json:"date,omitempty" db:"date"`
}

type PrescriptionLineRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
}

type CreateDiagnosisRequest struct {
	AppointmentID uuid.UUID                 `json:"appointment_id" binding:"required"`
	Symptoms      string                    `json:"symptoms" binding:"required,max=1000"`
	Notes         string                    `json:"notes" binding:"max=2000"`
	Prescription  []PrescriptionLineRequest `json:"prescription" binding:"dive"`
}
