package diagnosis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type fakeDiagnoses struct {
	repository.DiagnosisRepository
	records map[uuid.UUID]*model.Diagnosis
}

func (f *fakeDiagnoses) Create(_ context.Context, diagnosis *model.Diagnosis) error {
	diagnosis.ID = uuid.New()
	copied := *diagnosis
	f.records[diagnosis.ID] = &copied
	return nil
}

func (f *fakeDiagnoses) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Diagnosis, error) {
	d, ok := f.records[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, apperrors.NotFound("diagnosis", nil)
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDiagnoses) GetByAppointment(_ context.Context, hospitalID, appointmentID uuid.UUID) (*model.Diagnosis, error) {
	for _, d := range f.records {
		if d.HospitalID == hospitalID && d.AppointmentID == appointmentID {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("diagnosis", nil)
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

func (f *fakeAppointments) SetDiagnosed(_ context.Context, hospitalID, id uuid.UUID) error {
	a, ok := f.records[id]
	if !ok || a.HospitalID != hospitalID {
		return apperrors.NotFound("appointment", nil)
	}
	a.Diagnosed = true
	return nil
}

type fakeMedicines struct {
	repository.MedicineRepository
	records map[uuid.UUID]*model.Medicine
}

func (f *fakeMedicines) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Medicine, error) {
	m, ok := f.records[id]
	if !ok || m.HospitalID != hospitalID {
		return nil, apperrors.NotFound("medicine", nil)
	}
	return m, nil
}

type fixture struct {
	service      *Service
	appointments *fakeAppointments
	hospitalID   uuid.UUID
	doctorID     uuid.UUID
	appointment  *model.Appointment
	medicine     *model.Medicine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hospitalID := uuid.New()
	doctorID := uuid.New()

	appointment := &model.Appointment{
		Base:       model.Base{ID: uuid.New()},
		HospitalID: hospitalID,
		PatientID:  uuid.New(),
		DoctorID:   uuid.NullUUID{UUID: doctorID, Valid: true},
		Date:       "2025-03-12",
	}
	medicine := &model.Medicine{
		Base:       model.Base{ID: uuid.New()},
		HospitalID: hospitalID,
		Name:       "paracetamol",
		Price:      40,
		Stock:      5,
		Discount:   10,
	}

	appointments := &fakeAppointments{records: map[uuid.UUID]*model.Appointment{appointment.ID: appointment}}
	service := NewService(
		&fakeDiagnoses{records: make(map[uuid.UUID]*model.Diagnosis)},
		appointments,
		&fakeMedicines{records: map[uuid.UUID]*model.Medicine{medicine.ID: medicine}},
	)

	return &fixture{
		service:      service,
		appointments: appointments,
		hospitalID:   hospitalID,
		doctorID:     doctorID,
		appointment:  appointment,
		medicine:     medicine,
	}
}

func (f *fixture) request(quantity int) *model.CreateDiagnosisRequest {
	return &model.CreateDiagnosisRequest{
		AppointmentID: f.appointment.ID,
		Symptoms:      "fever",
		Prescription: []model.PrescriptionLineRequest{
			{MedicineID: f.medicine.ID, Quantity: quantity},
		},
	}
}

func TestCreateDiagnosisCapturesCatalogPrices(t *testing.T) {
	f := newFixture(t)

	diagnosis, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, f.request(2))
	require.NoError(t, err)
	require.Len(t, diagnosis.Prescription, 1)

	line := diagnosis.Prescription[0]
	assert.Equal(t, "paracetamol", line.Name)
	assert.Equal(t, 40.0, line.Price)
	assert.Equal(t, 10.0, line.Discount)
	assert.Equal(t, 2, line.Quantity)

	assert.True(t, f.appointment.Diagnosed)
}

func TestCreateDiagnosisWrongDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.hospitalID, uuid.New(), f.request(1))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrForbidden))
}

func TestCreateDiagnosisOncePerAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, f.request(1))
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.hospitalID, f.doctorID, f.request(1))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestCreateDiagnosisQuantityBounds(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, f.request(6))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	_, err = f.service.Create(context.Background(), f.hospitalID, f.doctorID, f.request(0))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestCreateDiagnosisDuplicateMedicine(t *testing.T) {
	f := newFixture(t)

	req := f.request(1)
	req.Prescription = append(req.Prescription, model.PrescriptionLineRequest{MedicineID: f.medicine.ID, Quantity: 1})

	_, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestCreateDiagnosisUnknownMedicine(t *testing.T) {
	f := newFixture(t)

	req := f.request(1)
	req.Prescription[0].MedicineID = uuid.New()

	_, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestCreateDiagnosisWithoutPrescription(t *testing.T) {
	f := newFixture(t)

	diagnosis, err := f.service.Create(context.Background(), f.hospitalID, f.doctorID, &model.CreateDiagnosisRequest{
		AppointmentID: f.appointment.ID,
		Symptoms:      "routine checkup",
	})
	require.NoError(t, err)
	assert.Empty(t, diagnosis.Prescription)
}
