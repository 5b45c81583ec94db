package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/medevel/hospital-api/internal/repository"
)

type hospitalRepository struct {
	db *sqlx.DB
}

type roleRepository struct {
	db *sqlx.DB
}

type departmentRepository struct {
	db *sqlx.DB
}

type accountRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type medicineRepository struct {
	db *sqlx.DB
}

type diagnosisRepository struct {
	db *sqlx.DB
}

type billRepository struct {
	db *sqlx.DB
}

type transactionRepository struct {
	db *sqlx.DB
}

type otpRepository struct {
	db *sqlx.DB
}

func NewHospitalRepository(db *sqlx.DB) repository.HospitalRepository {
	return &hospitalRepository{db: db}
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{db: db}
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewMedicineRepository(db *sqlx.DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

func NewDiagnosisRepository(db *sqlx.DB) repository.DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{db: db}
}

func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func NewOTPRepository(db *sqlx.DB) repository.OTPRepository {
	return &otpRepository{db: db}
}
