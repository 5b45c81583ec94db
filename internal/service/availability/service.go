package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	"github.com/medevel/hospital-api/pkg/dateset"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type Service struct {
	availability repository.AvailabilityRepository
	accounts     repository.AccountRepository
	now          func() time.Time
}

func NewService(availability repository.AvailabilityRepository, accounts repository.AccountRepository) *Service {
	return &Service{availability: availability, accounts: accounts, now: time.Now}
}

// MarkUnavailable adds a date to the doctor's unavailability set,
// creating the record on first use. Marking a date twice is rejected.
func (s *Service) MarkUnavailable(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) (*model.DoctorAvailability, error) {
	doctor, err := s.accounts.GetDoctor(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDate(date); err != nil {
		return nil, err
	}

	record, err := s.availability.Get(ctx, hospitalID, doctor.ID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		dates, err := dateset.New(date)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD", err)
		}
		record = &model.DoctorAvailability{
			HospitalID: hospitalID,
			DoctorID:   doctor.ID,
			Dates:      dates,
		}
		if err := s.availability.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}
	if err != nil {
		return nil, err
	}

	updated, err := record.Dates.Insert(date)
	if err == dateset.ErrExists {
		return nil, apperrors.New(apperrors.ErrAlreadyUnavailable, "doctor is already unavailable on this date")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD", err)
	}

	record.Dates = updated
	if err := s.availability.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// MarkAvailable removes a date from the doctor's unavailability set.
// A doctor with no record, or a date not in the set, is rejected.
// Past dates are removable, so stale holidays can be cleaned up.
func (s *Service) MarkAvailable(ctx context.Context, hospitalID, doctorID uuid.UUID, date string) (*model.DoctorAvailability, error) {
	doctor, err := s.accounts.GetDoctor(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFormat(date); err != nil {
		return nil, err
	}

	record, err := s.availability.Get(ctx, hospitalID, doctor.ID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return nil, apperrors.New(apperrors.ErrNoRecordExists, "doctor has no unavailability record")
	}
	if err != nil {
		return nil, err
	}

	updated, err := record.Dates.Remove(date)
	if err == dateset.ErrMissing {
		return nil, apperrors.NotFound("unavailability date", nil)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD", err)
	}

	record.Dates = updated
	if err := s.availability.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns the doctor's unavailable dates, empty when no record
// exists yet.
func (s *Service) Get(ctx context.Context, hospitalID, doctorID uuid.UUID) (*model.DoctorAvailability, error) {
	doctor, err := s.accounts.GetDoctor(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}

	record, err := s.availability.Get(ctx, hospitalID, doctor.ID)
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return &model.DoctorAvailability{
			HospitalID: hospitalID,
			DoctorID:   doctor.ID,
			Dates:      dateset.Set{},
		}, nil
	}
	return record, err
}

func (s *Service) checkFormat(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperrors.New(apperrors.ErrMalformedDate, "date must be formatted YYYY-MM-DD")
	}
	return nil
}

func (s *Service) checkDate(date string) error {
	if err := s.checkFormat(date); err != nil {
		return err
	}
	if date < s.now().Format(model.DateLayout) {
		return apperrors.New(apperrors.ErrDateInPast, "date is in the past")
	}
	return nil
}
