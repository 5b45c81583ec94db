package billing

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
	"github.com/medevel/hospital-api/pkg/logger"
)

type fakeBills struct {
	repository.BillRepository
	records map[uuid.UUID]*model.Bill
}

func (f *fakeBills) Create(_ context.Context, bill *model.Bill) error {
	bill.ID = uuid.New()
	copied := *bill
	f.records[bill.ID] = &copied
	return nil
}

func (f *fakeBills) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Bill, error) {
	b, ok := f.records[id]
	if !ok || b.HospitalID != hospitalID {
		return nil, apperrors.NotFound("bill", nil)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBills) GetByAppointment(_ context.Context, hospitalID, appointmentID uuid.UUID) (*model.Bill, error) {
	for _, b := range f.records {
		if b.HospitalID == hospitalID && b.AppointmentID == appointmentID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("bill", nil)
}

func (f *fakeBills) MarkPaid(_ context.Context, hospitalID, id uuid.UUID) error {
	b, ok := f.records[id]
	if !ok || b.HospitalID != hospitalID {
		return apperrors.NotFound("bill", nil)
	}
	if b.Paid {
		return apperrors.Conflict("bill already paid", nil)
	}
	b.Paid = true
	return nil
}

type fakeTransactions struct {
	repository.TransactionRepository
	records map[uuid.UUID]*model.Transaction
}

func (f *fakeTransactions) Create(_ context.Context, transaction *model.Transaction) error {
	transaction.ID = uuid.New()
	copied := *transaction
	f.records[transaction.ID] = &copied
	return nil
}

func (f *fakeTransactions) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Transaction, error) {
	t, ok := f.records[id]
	if !ok || t.HospitalID != hospitalID {
		return nil, apperrors.NotFound("transaction", nil)
	}
	copied := *t
	return &copied, nil
}

type fakeDiagnoses struct {
	repository.DiagnosisRepository
	byAppointment map[uuid.UUID]*model.Diagnosis
}

func (f *fakeDiagnoses) GetByAppointment(_ context.Context, hospitalID, appointmentID uuid.UUID) (*model.Diagnosis, error) {
	d, ok := f.byAppointment[appointmentID]
	if !ok || d.HospitalID != hospitalID {
		return nil, apperrors.NotFound("diagnosis", nil)
	}
	return d, nil
}

type fakeAppointments struct {
	repository.AppointmentRepository
	records map[uuid.UUID]*model.Appointment
}

func (f *fakeAppointments) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.records[id]
	if !ok || a.HospitalID != hospitalID {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return a, nil
}

type fakeDepartments struct {
	repository.DepartmentRepository
	records map[uuid.UUID]*model.Department
}

func (f *fakeDepartments) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Department, error) {
	d, ok := f.records[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, apperrors.NotFound("department", nil)
	}
	return d, nil
}

type fakeMedicines struct {
	repository.MedicineRepository
	stock map[uuid.UUID]int
}

func (f *fakeMedicines) DecrementStock(_ context.Context, _ uuid.UUID, id uuid.UUID, quantity int) error {
	if f.stock[id] < quantity {
		return apperrors.Conflict("insufficient stock", nil)
	}
	f.stock[id] -= quantity
	return nil
}

type fakePatients struct {
	repository.PatientRepository
	records map[uuid.UUID]*model.Patient
}

func (f *fakePatients) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.records[id]
	if !ok || p.HospitalID != hospitalID {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

type fakeHospitals struct {
	repository.HospitalRepository
	hospital *model.Hospital
}

func (f *fakeHospitals) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	if f.hospital == nil || f.hospital.ID != id {
		return nil, apperrors.NotFound("hospital", nil)
	}
	return f.hospital, nil
}

type fakeMailer struct {
	sent int
	err  error
}

func (f *fakeMailer) SendOTP(context.Context, string, string, string) error { return nil }

func (f *fakeMailer) SendBill(_ context.Context, _, _ string, pdf []byte) error {
	if f.err != nil {
		return f.err
	}
	if len(pdf) == 0 {
		return errors.New("empty attachment")
	}
	f.sent++
	return nil
}

type fixture struct {
	service      *Service
	bills        *fakeBills
	transactions *fakeTransactions
	medicines    *fakeMedicines
	mailer       *fakeMailer
	hospitalID   uuid.UUID
	appointment  *model.Appointment
	medicineID   uuid.UUID
	departmentID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hospitalID := uuid.New()
	departmentID := uuid.New()
	medicineID := uuid.New()
	patientID := uuid.New()

	appointment := &model.Appointment{
		Base:         model.Base{ID: uuid.New()},
		HospitalID:   hospitalID,
		PatientID:    patientID,
		DepartmentID: uuid.NullUUID{UUID: departmentID, Valid: true},
		Date:         "2025-03-12",
		Diagnosed:    true,
	}

	bills := &fakeBills{records: make(map[uuid.UUID]*model.Bill)}
	transactions := &fakeTransactions{records: make(map[uuid.UUID]*model.Transaction)}
	medicines := &fakeMedicines{stock: map[uuid.UUID]int{medicineID: 10}}
	mailer := &fakeMailer{}

	diagnoses := &fakeDiagnoses{byAppointment: map[uuid.UUID]*model.Diagnosis{
		appointment.ID: {
			HospitalID:    hospitalID,
			AppointmentID: appointment.ID,
			Prescription: model.PrescriptionLines{
				{MedicineID: medicineID, Name: "paracetamol", Price: 40, Discount: 10, Quantity: 2},
			},
		},
	}}
	departments := &fakeDepartments{records: map[uuid.UUID]*model.Department{
		departmentID: {Base: model.Base{ID: departmentID}, HospitalID: hospitalID, Name: "cardiology", Fees: 500},
	}}
	patients := &fakePatients{records: map[uuid.UUID]*model.Patient{
		patientID: {Base: model.Base{ID: patientID}, HospitalID: hospitalID, Name: "Asha", Email: "asha@example.com"},
	}}
	hospitals := &fakeHospitals{hospital: &model.Hospital{Base: model.Base{ID: hospitalID}, Name: "city care"}}

	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	service := NewService(
		bills, transactions, diagnoses,
		&fakeAppointments{records: map[uuid.UUID]*model.Appointment{appointment.ID: appointment}},
		departments, medicines, patients, hospitals,
		mailer, log, nil,
	)

	return &fixture{
		service:      service,
		bills:        bills,
		transactions: transactions,
		medicines:    medicines,
		mailer:       mailer,
		hospitalID:   hospitalID,
		appointment:  appointment,
		medicineID:   medicineID,
		departmentID: departmentID,
	}
}

func TestCreateBillTotals(t *testing.T) {
	f := newFixture(t)

	bill, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	// 40 * 0.9 * 2 lines of paracetamol plus 500 consultation fees.
	assert.Equal(t, 500.0, bill.Fees)
	assert.Equal(t, 572.0, bill.Total)
	assert.False(t, bill.Paid)
}

func TestCreateBillRequiresDiagnosis(t *testing.T) {
	f := newFixture(t)
	f.appointment.Diagnosed = false

	_, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestCreateBillOncePerAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	_, err = f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestSettle(t *testing.T) {
	f := newFixture(t)

	bill, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	txn, err := f.service.Settle(context.Background(), f.hospitalID, &model.CreateTransactionRequest{
		BillID:      bill.ID,
		PaymentMode: model.PaymentModeUPI,
	})
	require.NoError(t, err)

	// The charged amount is always the bill total, regardless of input.
	assert.Equal(t, bill.Total, txn.Amount)
	assert.Equal(t, model.PaymentModeUPI, txn.PaymentMode)

	settled, err := f.service.GetBill(context.Background(), f.hospitalID, bill.ID)
	require.NoError(t, err)
	assert.True(t, settled.Paid)

	// Two units of the prescribed medicine left the stock.
	assert.Equal(t, 8, f.medicines.stock[f.medicineID])
	assert.Equal(t, 1, f.mailer.sent)
}

func TestSettleTwiceRejected(t *testing.T) {
	f := newFixture(t)

	bill, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	_, err = f.service.Settle(context.Background(), f.hospitalID, &model.CreateTransactionRequest{BillID: bill.ID, PaymentMode: model.PaymentModeCash})
	require.NoError(t, err)

	_, err = f.service.Settle(context.Background(), f.hospitalID, &model.CreateTransactionRequest{BillID: bill.ID, PaymentMode: model.PaymentModeCash})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
	assert.Len(t, f.transactions.records, 1)
}

func TestSettleMailFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp down")

	bill, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	txn, err := f.service.Settle(context.Background(), f.hospitalID, &model.CreateTransactionRequest{BillID: bill.ID, PaymentMode: model.PaymentModeCash})
	require.NoError(t, err)
	assert.Equal(t, bill.Total, txn.Amount)
}

func TestSettleInsufficientStockStillSettles(t *testing.T) {
	f := newFixture(t)
	f.medicines.stock[f.medicineID] = 1

	bill, err := f.service.CreateBill(context.Background(), f.hospitalID, &model.CreateBillRequest{AppointmentID: f.appointment.ID})
	require.NoError(t, err)

	_, err = f.service.Settle(context.Background(), f.hospitalID, &model.CreateTransactionRequest{BillID: bill.ID, PaymentMode: model.PaymentModeCash})
	require.NoError(t, err)

	// The guarded decrement refuses to go negative.
	assert.Equal(t, 1, f.medicines.stock[f.medicineID])
}
