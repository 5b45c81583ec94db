package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
)

// All repository interfaces in one file
type (
	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		GetByName(ctx context.Context, name string) (*model.Hospital, error)
	}

	RoleRepository interface {
		Create(ctx context.Context, role *model.Role) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Role, error)
		GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Role, error)
		Update(ctx context.Context, role *model.Role) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Role, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Department, error)
		GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Department, error)
		Update(ctx context.Context, department *model.Department) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Department, error)
	}

	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		GetByEmailOrMobile(ctx context.Context, username string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Account, error)
		CountAdmins(ctx context.Context, hospitalID uuid.UUID) (int, error)
		GetDoctor(ctx context.Context, hospitalID, id uuid.UUID) (*model.Account, error)
		ListDoctorsByDepartment(ctx context.Context, hospitalID, departmentID uuid.UUID) ([]*model.Account, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Patient, error)
		FindByContact(ctx context.Context, hospitalID uuid.UUID, email, mobile string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Patient, error)
	}

	// AppointmentStore is the slice of appointment operations that can
	// run inside a transaction. Slot validation and the final write go
	// through one store so the capacity check and the insert see the
	// same snapshot.
	AppointmentStore interface {
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Appointment, error)
		CountForSlot(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) (int, error)
		FindDuplicate(ctx context.Context, hospitalID, doctorID, patientID, departmentID uuid.UUID, date string, excludeID *uuid.UUID) (bool, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		Update(ctx context.Context, appointment *model.Appointment) error
	}

	AppointmentRepository interface {
		AppointmentStore
		Transact(ctx context.Context, fn func(AppointmentStore) error) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Appointment, error)
		ListForDate(ctx context.Context, hospitalID uuid.UUID, date string) ([]*model.Appointment, error)
		ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.Appointment, error)
		ListForDoctorDate(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) ([]*model.Appointment, error)
		SetPresent(ctx context.Context, hospitalID, id uuid.UUID, present bool) error
		SetDiagnosed(ctx context.Context, hospitalID, id uuid.UUID) error
	}

	AvailabilityRepository interface {
		Get(ctx context.Context, hospitalID, doctorID uuid.UUID) (*model.DoctorAvailability, error)
		Create(ctx context.Context, availability *model.DoctorAvailability) error
		Update(ctx context.Context, availability *model.DoctorAvailability) error
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Medicine, error)
		GetByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.Medicine, error)
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Medicine, error)
		ListInStock(ctx context.Context, hospitalID uuid.UUID) ([]*model.Medicine, error)
		DecrementStock(ctx context.Context, hospitalID, id uuid.UUID, quantity int) error
	}

	DiagnosisRepository interface {
		Create(ctx context.Context, diagnosis *model.Diagnosis) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Diagnosis, error)
		GetByAppointment(ctx context.Context, hospitalID, appointmentID uuid.UUID) (*model.Diagnosis, error)
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Diagnosis, error)
		ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.Diagnosis, error)
	}

	BillRepository interface {
		Create(ctx context.Context, bill *model.Bill) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Bill, error)
		GetByAppointment(ctx context.Context, hospitalID, appointmentID uuid.UUID) (*model.Bill, error)
		MarkPaid(ctx context.Context, hospitalID, id uuid.UUID) error
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Bill, error)
	}

	TransactionRepository interface {
		Create(ctx context.Context, transaction *model.Transaction) error
		Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Transaction, error)
		List(ctx context.Context, hospitalID uuid.UUID) ([]*model.Transaction, error)
	}

	OTPRepository interface {
		Upsert(ctx context.Context, otp *model.PasswordOTP) error
		Get(ctx context.Context, accountID uuid.UUID) (*model.PasswordOTP, error)
	}
)
