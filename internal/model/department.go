package model

import "github.com/google/uuid"

// AdminDepartmentName is seeded at hospital registration and cannot be
// renamed or deleted.
const AdminDepartmentName = "admin"

type Department struct {
	Base
	HospitalID uuid.UUID `json:"hospital_id" db:"hospital_id"`
	Name       string    `json:"name" db:"name"`
	Fees       float64   `json:"fees" db:"fees"`
}

type CreateDepartmentRequest struct {
	Name string  `json:"name" binding:"required,min=2,max=50"`
	Fees float64 `json:"fees" binding:"gte=0"`
}

type UpdateDepartmentRequest struct {
	Name string  `json:"name" binding:"required,min=2,max=50"`
	Fees float64 `json:"fees" binding:"gte=0"`
}

// DepartmentOption is the shape served by dropdown endpoints.
type DepartmentOption struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
