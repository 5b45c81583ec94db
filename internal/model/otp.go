package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordOTP holds the latest one-time code issued for an account.
// A code is good for a single reset within its validity window and is
// rotated once used.
type PasswordOTP struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AccountID uuid.UUID `json:"account_id" db:"account_id"`
	Code      string    `json:"-" db:"code"`
	IssuedAt  time.Time `json:"issued_at" db:"issued_at"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
