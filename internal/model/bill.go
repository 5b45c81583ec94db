package model

import "github.com/google/uuid"

// Bill prices the prescription of a diagnosed appointment plus the
// department's consultation fees. At most one bill exists per
// appointment, and a paid bill can no longer change.
type Bill struct {
	Base
	HospitalID    uuid.UUID         `json:"hospital_id" db:"hospital_id"`
	AppointmentID uuid.UUID         `json:"appointment_id" db:"appointment_id"`
	Lines         PrescriptionLines `json:"lines" db:"lines"`
	Fees          float64           `json:"fees" db:"fees"`
	Total         float64           `json:"total" db:"total"`
	Paid          bool              `json:"paid" db:"paid"`

	// Joined display fields, populated by list queries.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
	DoctorName  string `json:"doctor_name,omitempty" db:"doctor_name"`
	Date        string `json:"date,omitempty" db:"date"`
}

type CreateBillRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
}

// LineTotal is the discounted price of one prescription line.
func LineTotal(l PrescriptionLine) float64 {
	return l.Price * (1 - l.Discount/100) * float64(l.Quantity)
}

// BillTotal sums the discounted line prices plus consultation fees.
func BillTotal(lines PrescriptionLines, fees float64) float64 {
	total := fees
	for _, l := range lines {
		total += LineTotal(l)
	}
	return total
}
