package model

import (
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/pkg/dateset"
)

// DoctorAvailability holds the set of dates a doctor is marked
// unavailable. One row per doctor, dates kept sorted as a JSON array.
type DoctorAvailability struct {
	Base
	HospitalID uuid.UUID   `json:"hospital_id" db:"hospital_id"`
	DoctorID   uuid.UUID   `json:"doctor_id" db:"doctor_id"`
	Dates      dateset.Set `json:"dates" db:"dates"`
}

// AvailabilityDateRequest carries the date to add to or remove from
// the signed-in doctor's own unavailability set.
type AvailabilityDateRequest struct {
	Date string `json:"date" binding:"required"`
}
