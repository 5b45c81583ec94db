package model

// Hospital is the tenant root. Every other row hangs off a hospital,
// and all queries are scoped by hospital id.
type Hospital struct {
	Base
	Name string `json:"name" db:"name"`
}

type RegisterHospitalRequest struct {
	HospitalName string `json:"hospital_name" binding:"required,min=2,max=100"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Mobile       string `json:"mobile" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
}
