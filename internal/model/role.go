package model

import "github.com/google/uuid"

// AdminRoleName is seeded at hospital registration and cannot be
// renamed or deleted.
const AdminRoleName = "admin"

const DoctorRoleName = "doctor"

type Role struct {
	Base
	HospitalID uuid.UUID `json:"hospital_id" db:"hospital_id"`
	Name       string    `json:"name" db:"name"`
}

type CreateRoleRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

type UpdateRoleRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}
