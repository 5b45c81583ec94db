package model

import "github.com/google/uuid"

// Account is a staff member of a hospital: admins, doctors, and any
// other role the hospital defines. Doctors are accounts whose role is
// named "doctor".
type Account struct {
	Base
	HospitalID   uuid.UUID `json:"hospital_id" db:"hospital_id"`
	RoleID       uuid.UUID `json:"role_id" db:"role_id"`
	DepartmentID uuid.UUID `json:"department_id" db:"department_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Mobile       string    `json:"mobile" db:"mobile"`
	Password     string    `json:"-" db:"password"`

	// Joined display fields, populated by list queries.
	RoleName       string `json:"role_name,omitempty" db:"role_name"`
	DepartmentName string `json:"department_name,omitempty" db:"department_name"`
	HospitalName   string `json:"hospital_name,omitempty" db:"hospital_name"`
}

type CreateAccountRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100"`
	Email        string    `json:"email" binding:"required,email"`
	Mobile       string    `json:"mobile" binding:"required"`
	Password     string    `json:"password" binding:"required,min=8"`
	RoleID       uuid.UUID `json:"role_id" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

type UpdateAccountRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=100"`
	Email        string    `json:"email" binding:"required,email"`
	Mobile       string    `json:"mobile" binding:"required"`
	RoleID       uuid.UUID `json:"role_id" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
