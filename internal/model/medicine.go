package model

import "github.com/google/uuid"

type Medicine struct {
	Base
	HospitalID uuid.UUID `json:"hospital_id" db:"hospital_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	Stock      int       `json:"stock" db:"stock"`
	Discount   float64   `json:"discount" db:"discount"`
}

type CreateMedicineRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
	Discount float64 `json:"discount" binding:"gte=0,lte=100"`
}

type UpdateMedicineRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
	Discount float64 `json:"discount" binding:"gte=0,lte=100"`
}
