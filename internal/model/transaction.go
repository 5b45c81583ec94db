package model

import "github.com/google/uuid"

type PaymentMode string

const (
	PaymentModeCreditCard PaymentMode = "credit_card"
	PaymentModeDebitCard  PaymentMode = "debit_card"
	PaymentModeUPI        PaymentMode = "upi"
	PaymentModeNetBanking PaymentMode = "net_banking"
	PaymentModeCash       PaymentMode = "cash"
)

// Transaction records the settlement of a bill. Creating one marks the
// bill paid and decrements medicine stock.
type Transaction struct {
	Base
	HospitalID  uuid.UUID   `json:"hospital_id" db:"hospital_id"`
	BillID      uuid.UUID   `json:"bill_id" db:"bill_id"`
	Amount      float64     `json:"amount" db:"amount"`
	PaymentMode PaymentMode `json:"payment_mode" db:"payment_mode"`

	// Joined display fields, populated by list queries.
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
	Date        string `json:"date,omitempty" db:"date"`
}

type CreateTransactionRequest struct {
	BillID      uuid.UUID   `json:"bill_id" binding:"required"`
	PaymentMode PaymentMode `json:"payment_mode" binding:"required,oneof=credit_card debit_card upi net_banking cash"`
}
