package model

import "github.com/google/uuid"

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderOther  Gender = "o"
)

type Patient struct {
	Base
	HospitalID uuid.UUID `json:"hospital_id" db:"hospital_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Mobile     string    `json:"mobile" db:"mobile"`
	Gender     Gender    `json:"gender" db:"gender"`
	Age        int       `json:"age" db:"age"`
	Address    string    `json:"address" db:"address"`
}

type CreatePatientRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Mobile  string `json:"mobile" binding:"required"`
	Gender  Gender `json:"gender" binding:"required,oneof=m f o"`
	Age     int    `json:"age" binding:"required,gt=0,lt=150"`
	Address string `json:"address" binding:"max=500"`
}

type UpdatePatientRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Mobile  string `json:"mobile" binding:"required"`
	Gender  Gender `json:"gender" binding:"required,oneof=m f o"`
	Age     int    `json:"age" binding:"required,gt=0,lt=150"`
	Address string `json:"address" binding:"max=500"`
}

// PatientOption is the shape served by dropdown endpoints.
type PatientOption struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
