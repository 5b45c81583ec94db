package patient

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/datatable"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

// mobilePattern accepts ten digit numbers starting 6 through 9.
var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

type Service struct {
	patients repository.PatientRepository
}

func NewService(patients repository.PatientRepository) *Service {
	return &Service{patients: patients}
}

var columns = []datatable.Column[*model.Patient]{
	{Name: "name", Kind: datatable.Plain, Value: func(p *model.Patient) string { return p.Name }},
	{Name: "email", Kind: datatable.Plain, Value: func(p *model.Patient) string { return p.Email }},
	{Name: "mobile", Kind: datatable.Plain, Value: func(p *model.Patient) string { return p.Mobile }},
	{Name: "gender", Kind: datatable.Excluded, Value: func(p *model.Patient) string { return string(p.Gender) }},
	{Name: "age", Kind: datatable.Excluded, Value: func(p *model.Patient) string { return "" },
		Compare: func(a, b *model.Patient) int { return a.Age - b.Age }},
	{Name: "registered", Kind: datatable.Date, Value: func(p *model.Patient) string { return p.CreatedAt.Format(model.DateLayout) }},
}

func (s *Service) Create(ctx context.Context, hospitalID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !mobilePattern.MatchString(req.Mobile) {
		return nil, apperrors.BadRequest("invalid mobile number", nil)
	}

	if _, err := s.patients.FindByContact(ctx, hospitalID, email, req.Mobile); err == nil {
		return nil, apperrors.Conflict("patient with this email or mobile already exists", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	patient := &model.Patient{
		HospitalID: hospitalID,
		Name:       req.Name,
		Email:      email,
		Mobile:     req.Mobile,
		Gender:     req.Gender,
		Age:        req.Age,
		Address:    req.Address,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.Patient, error) {
	return s.patients.Get(ctx, hospitalID, id)
}

func (s *Service) Update(ctx context.Context, hospitalID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !mobilePattern.MatchString(req.Mobile) {
		return nil, apperrors.BadRequest("invalid mobile number", nil)
	}

	if other, err := s.patients.FindByContact(ctx, hospitalID, email, req.Mobile); err == nil {
		if other.ID != patient.ID {
			return nil, apperrors.Conflict("patient with this email or mobile already exists", nil)
		}
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, err
	}

	patient.Name = req.Name
	patient.Email = email
	patient.Mobile = req.Mobile
	patient.Gender = req.Gender
	patient.Age = req.Age
	patient.Address = req.Address
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, hospitalID, id uuid.UUID) error {
	return s.patients.Delete(ctx, hospitalID, id)
}

// Options serves the booking-form patient dropdown.
func (s *Service) Options(ctx context.Context, hospitalID uuid.UUID) ([]*model.PatientOption, error) {
	patients, err := s.patients.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	options := make([]*model.PatientOption, 0, len(patients))
	for _, p := range patients {
		options = append(options, &model.PatientOption{ID: p.ID, Name: p.Name})
	}
	return options, nil
}

func (s *Service) Datatable(ctx context.Context, hospitalID uuid.UUID, query url.Values) (*datatable.Result[*model.Patient], error) {
	req, err := datatable.ParseRequest(query)
	if err != nil {
		return nil, err
	}
	dateRange := datatable.ParseDateRange(query, "start_date", "end_date")

	patients, err := s.patients.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	return datatable.Paginate(patients, columns, req, dateRange, "registered")
}
