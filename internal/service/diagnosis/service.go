package diagnosis

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type Service struct {
	diagnoses    repository.DiagnosisRepository
	appointments repository.AppointmentRepository
	medicines    repository.MedicineRepository
}

func NewService(
	diagnoses repository.DiagnosisRepository,
	appointments repository.AppointmentRepository,
	medicines repository.MedicineRepository,
) *Service {
	return &Service{diagnoses: diagnoses, appointments: appointments, medicines: medicines}
}

var columns = []datatable.Column[*model.Diagnosis]{
	{Name: "patient", Kind: datatable.ForeignKeyName, Value: func(d *model.Diagnosis) string { return d.PatientName }},
	{Name: "doctor", Kind: datatable.ForeignKeyName, Value: func(d *model.Diagnosis) string { return d.DoctorName }},
	{Name: "symptoms", Kind: datatable.Plain, Value: func(d *model.Diagnosis) string { return d.Symptoms }},
	{Name: "date", Kind: datatable.Date, Value: func(d *model.Diagnosis) string { return d.Date }},
}

// Create records the diagnosis for an appointment. Only the
// appointment's own doctor may diagnose, an appointment is diagnosed
// at most once, and every prescription line must name a distinct
// medicine with enough stock.
func (s *Service) Create(ctx context.Context, hospitalID, doctorID uuid.UUID, req *model.CreateDiagnosisRequest) (*model.Diagnosis, error) {
	appointment, err := s.appointments.Get(ctx, hospitalID, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.DoctorID.Valid || appointment.DoctorID.UUID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor")
	}

	if _, err := s.diagnoses.GetByAppointment(ctx, hospitalID, req.AppointmentID); err == nil {
		return nil, apperrors.Conflict("appointment is already diagnosed", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	lines, err := s.buildPrescription(ctx, hospitalID, req.Prescription)
	if err != nil {
		return nil, err
	}

	diagnosis := &model.Diagnosis{
		HospitalID:    hospitalID,
		AppointmentID: appointment.ID,
		DoctorID:      doctorID,
		Symptoms:      req.Symptoms,
		Notes:         req.Notes,
		Prescription:  lines,
	}
	if err := s.diagnoses.Create(ctx, diagnosis); err != nil {
		return nil, err
	}

	if err := s.appointments.SetDiagnosed(ctx, hospitalID, appointment.ID); err != nil {
		return nil, err
	}
	return s.diagnoses.Get(ctx, hospitalID, diagnosis.ID)
}

// buildPrescription validates each requested line against the catalog
// and captures name, price and discount at prescription time.
func (s *Service) buildPrescription(ctx context.Context, hospitalID uuid.UUID, reqs []model.PrescriptionLineRequest) (model.PrescriptionLines, error) {
	seen := make(map[uuid.UUID]bool, len(reqs))
	lines := make(model.PrescriptionLines, 0, len(reqs))

	for _, line := range reqs {
		if seen[line.MedicineID] {
			return nil, apperrors.BadRequest("prescription lists the same medicine twice", nil)
		}
		seen[line.MedicineID] = true

		medicine, err := s.medicines.Get(ctx, hospitalID, line.MedicineID)
		if err != nil {
			return nil, err
		}
		if line.Quantity < 1 || line.Quantity > medicine.Stock {
			return nil, apperrors.BadRequest(
				fmt.Sprintf("quantity for %s must be between 1 and %d", medicine.Name, medicine.Stock), nil)
		}

		lines = append(lines, model.PrescriptionLine{
			MedicineID: medicine.ID,
			Name:       medicine.Name,
			Price:      medicine.Price,
			Discount:   medicine.Discount,
			Quantity:   line.Quantity,
		})
	}
	return lines, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Diagnosis, error) {
	return s.diagnoses.Get(ctx, hospitalID, id)
}

func (s *Service) GetByAppointment(ctx context.Context, hospitalID, appointmentID uuid.UUID) (*model.Diagnosis, error) {
	return s.diagnoses.GetByAppointment(ctx, hospitalID, appointmentID)
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Diagnosis], error) {
	diagnoses, err := s.diagnoses.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return s.paginate(diagnoses, query)
}

// DoctorDatatable scopes the listing to diagnoses written by one doctor.
func (s *Service) DoctorDatatable(ctx context.Context, hospitalID, doctorID uuid.UUID, query url.Values) (*datatable.Result[*model.Diagnosis], error) {
	diagnoses, err := s.diagnoses.ListForDoctor(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	return s.paginate(diagnoses, query)
}

func (s *Service) paginate(diagnoses []*model.Diagnosis, query url.Values) (*datatable.Result[*model.Diagnosis], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")
	return datatable.Paginate(diagnoses, columns, req, dateRange, "date")
}
