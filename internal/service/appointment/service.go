package appointment

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
	"github.com/medevel/hospital-api/pkg/metrics"
)

// DefaultDailyCapacity is the number of appointments a doctor takes
// per day when no override is configured.
const DefaultDailyCapacity = 6

type Service struct {
	appointments repository.AppointmentRepository
	accounts     repository.AccountRepository
	availability repository.AvailabilityRepository
	capacity     int
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	accounts repository.AccountRepository,
	availability repository.AvailabilityRepository,
	capacity int,
	m *metrics.Metrics,
) *Service {
	if capacity <= 0 {
		capacity = DefaultDailyCapacity
	}
	return &Service{
		appointments: appointments,
		accounts:     accounts,
		availability: availability,
		capacity:     capacity,
		metrics:      m,
		now:          time.Now,
	}
}

var columns = []datatable.Column[*model.Appointment]{
	{Name: "patient", Kind: datatable.ForeignKeyName, Value: func(a *model.Appointment) string { return a.PatientName }},
	{Name: "doctor", Kind: datatable.ForeignKeyName, Value: func(a *model.Appointment) string { return a.DoctorName }},
	{Name: "department", Kind: datatable.ForeignKeyName, Value: func(a *model.Appointment) string { return a.DepartmentName }},
	{Name: "date", Kind: datatable.Date, Value: func(a *model.Appointment) string { return a.Date }},
}

// Create books a slot. Checks run in a fixed order, first failure
// wins: doctor membership, date validity, doctor availability,
// daily capacity, duplicate booking. Capacity and duplicate checks
// share one transaction with the insert.
func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.checkDoctor(ctx, hospitalID, req.DoctorID, req.DepartmentID)
	if err != nil {
		return nil, s.rejected(err)
	}
	if err := s.checkDate(req.Date); err != nil {
		return nil, s.rejected(err)
	}
	if err := s.checkUnavailable(ctx, hospitalID, doctor.ID, req.Date); err != nil {
		return nil, s.rejected(err)
	}

	appointment := &model.Appointment{
		HospitalID:   hospitalID,
		PatientID:    req.PatientID,
		DoctorID:     uuid.NullUUID{UUID: doctor.ID, Valid: true},
		DepartmentID: uuid.NullUUID{UUID: req.DepartmentID, Valid: true},
		Date:         req.Date,
	}

	err = s.appointments.Transact(ctx, func(store repository.AppointmentStore) error {
		count, err := store.CountForSlot(ctx, hospitalID, doctor.ID, req.Date)
		if err != nil {
			return err
		}
		if count >= s.capacity {
			return apperrors.New(apperrors.ErrCapacityExceeded, "doctor is fully booked for this date")
		}

		dup, err := store.FindDuplicate(ctx, hospitalID, doctor.ID, req.PatientID, req.DepartmentID, req.Date, nil)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.New(apperrors.ErrDuplicateAppointment, "patient already has an appointment for this date")
		}

		return store.Create(ctx, appointment)
	})
	if err != nil {
		return nil, s.rejected(err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}
	return s.appointments.Get(ctx, hospitalID, appointment.ID)
}

// Update rebooks an existing appointment under the same checks as
// Create. The capacity check is skipped when the doctor and date are
// unchanged, the booking already holds that slot. The duplicate check
// ignores the appointment itself.
func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	existing, err := s.appointments.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}

	doctor, err := s.checkDoctor(ctx, hospitalID, req.DoctorID, req.DepartmentID)
	if err != nil {
		return nil, s.rejected(err)
	}
	if err := s.checkDate(req.Date); err != nil {
		return nil, s.rejected(err)
	}
	if err := s.checkUnavailable(ctx, hospitalID, doctor.ID, req.Date); err != nil {
		return nil, s.rejected(err)
	}

	sameSlot := existing.DoctorID.Valid && existing.DoctorID.UUID == doctor.ID && existing.Date == req.Date

	err = s.appointments.Transact(ctx, func(store repository.AppointmentStore) error {
		if !sameSlot {
			count, err := store.CountForSlot(ctx, hospitalID, doctor.ID, req.Date)
			if err != nil {
				return err
			}
			if count >= s.capacity {
				return apperrors.New(apperrors.ErrCapacityExceeded, "doctor is fully booked for this date")
			}
		}

		dup, err := store.FindDuplicate(ctx, hospitalID, doctor.ID, req.PatientID, req.DepartmentID, req.Date, &id)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.New(apperrors.ErrDuplicateAppointment, "patient already has an appointment for this date")
		}

		existing.PatientID = req.PatientID
		existing.DoctorID = uuid.NullUUID{UUID: doctor.ID, Valid: true}
		existing.DepartmentID = uuid.NullUUID{UUID: req.DepartmentID, Valid: true}
		existing.Date = req.Date
		return store.Update(ctx, existing)
	})
	if err != nil {
		return nil, s.rejected(err)
	}

	return s.appointments.Get(ctx, hospitalID, id)
}

func (s *Service) checkDoctor(ctx context.Context, hospitalID, doctorID, departmentID uuid.UUID) (*model.Account, error) {
	doctor, err := s.accounts.GetDoctor(ctx, hospitalID, doctorID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, apperrors.New(apperrors.ErrDoctorNotInDepartment, "doctor does not belong to this department")
	}
	if err != nil {
		return nil, err
	}
	if doctor.DepartmentID != departmentID {
		return nil, apperrors.New(apperrors.ErrDoctorNotInDepartment, "doctor does not belong to this department")
	}
	return doctor, nil
}

func (s *Service) checkDate(date string) error {
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return apperrors.New(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD")
	}
	today := s.today()
	if parsed.Format(model.DateLayout) < today {
		return apperrors.New(apperrors.ErrDateInPast, "date is in the past")
	}
	return nil
}

func (s *Service) checkUnavailable(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) error {
	availability, err := s.availability.Get(ctx, hospitalID, doctorID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if availability.Dates.Contains(date) {
		return apperrors.New(apperrors.ErrDoctorUnavailable, "doctor is unavailable on this date")
	}
	return nil
}

func (s *Service) rejected(err error) error {
	if s.metrics == nil {
		return err
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrDoctorNotInDepartment:
		s.metrics.AppointmentsRejected.WithLabelValues("doctor_not_in_department").Inc()
	case apperrors.ErrMalformedDate:
		s.metrics.AppointmentsRejected.WithLabelValues("malformed_date").Inc()
	case apperrors.ErrDateInPast:
		s.metrics.AppointmentsRejected.WithLabelValues("date_in_past").Inc()
	case apperrors.ErrDoctorUnavailable:
		s.metrics.AppointmentsRejected.WithLabelValues("doctor_unavailable").Inc()
	case apperrors.ErrCapacityExceeded:
		s.metrics.AppointmentsRejected.WithLabelValues("capacity_exceeded").Inc()
	case apperrors.ErrDuplicateAppointment:
		s.metrics.AppointmentsRejected.WithLabelValues("duplicate").Inc()
	}
	return err
}

func (s *Service) today() string {
	return s.now().Format(model.DateLayout)
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, hospitalID, id)
}

func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	return s.appointments.Delete(ctx, hospitalID, id)
}

// AvailableDoctors lists the doctors of a department who can take a
// booking on the date, in the order they joined the hospital.
func (s *Service) AvailableDoctors(ctx context.Context, hospitalID, departmentID uuid.UUID, date string) ([]*model.Account, error) {
	if err := s.checkDate(date); err != nil {
		return nil, err
	}

	doctors, err := s.accounts.ListDoctorsByDepartment(ctx, hospitalID, departmentID)
	if err != nil {
		return nil, err
	}

	available := make([]*model.Account, 0, len(doctors))
	for _, doctor := range doctors {
		if err := s.checkUnavailable(ctx, hospitalID, doctor.ID, date); err != nil {
			if apperrors.IsCode(err, apperrors.ErrDoctorUnavailable) {
				continue
			}
			return nil, err
		}
		doctor.Password = ""
		available = append(available, doctor)
	}
	return available, nil
}

// TokenQueue pages through today's appointments. The store returns
// checked-in patients first; the stable sort keeps that order within
// equal sort keys.
func (s *Service) TokenQueue(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Appointment], error) {
	appointments, err := s.appointments.ListForDate(ctx, hospitalID, s.today())
	if err != nil {
		return nil, err
	}
	return s.paginate(appointments, query)
}

// DoctorQueue scopes the token queue to one doctor's appointments.
func (s *Service) DoctorQueue(ctx context.Context, hospitalID, doctorID uuid.UUID, query url.Values) (*datatable.Result[*model.Appointment], error) {
	appointments, err := s.appointments.ListForDoctorDate(ctx, hospitalID, doctorID, s.today())
	if err != nil {
		return nil, err
	}
	return s.paginate(appointments, query)
}

// SetPresent toggles the check-in flag. Only today's appointments can
// be checked in or out.
func (s *Service) SetPresent(ctx context.Context, hospitalID, id uuid.UUID, present bool) error {
	appointment, err := s.appointments.Get(ctx, hospitalID, id)
	if err != nil {
		return err
	}
	if appointment.Date != s.today() {
		return apperrors.BadRequest("appointment is not scheduled for today", nil)
	}
	return s.appointments.SetPresent(ctx, hospitalID, id, present)
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Appointment], error) {
	appointments, err := s.appointments.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return s.paginate(appointments, query)
}

// DoctorDatatable scopes the listing to one doctor's appointments.
func (s *Service) DoctorDatatable(ctx context.Context, hospitalID, doctorID uuid.UUID, query url.Values) (*datatable.Result[*model.Appointment], error) {
	appointments, err := s.appointments.ListForDoctor(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	return s.paginate(appointments, query)
}

func (s *Service) paginate(appointments []*model.Appointment, query url.Values) (*datatable.Result[*model.Appointment], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")
	return datatable.Paginate(appointments, columns, req, dateRange, "date")
}
