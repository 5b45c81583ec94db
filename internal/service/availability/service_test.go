package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type fakeAvailability struct {
	repository.AvailabilityRepository
	records map[uuid.UUID]*model.DoctorAvailability
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{records: make(map[uuid.UUID]*model.DoctorAvailability)}
}

func (f *fakeAvailability) Get(_ context.Context, hospitalID, doctorID uuid.UUID) (*model.DoctorAvailability, error) {
	a, ok := f.records[doctorID]
	if !ok || a.HospitalID != hospitalID {
		return nil, apperrors.NotFound("availability record", nil)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAvailability) Create(_ context.Context, availability *model.DoctorAvailability) error {
	availability.ID = uuid.New()
	copied := *availability
	f.records[availability.DoctorID] = &copied
	return nil
}

func (f *fakeAvailability) Update(_ context.Context, availability *model.DoctorAvailability) error {
	if _, ok := f.records[availability.DoctorID]; !ok {
		return apperrors.NotFound("availability record", nil)
	}
	copied := *availability
	f.records[availability.DoctorID] = &copied
	return nil
}

type fakeAccounts struct {
	repository.AccountRepository
	doctor *model.Account
}

func (f *fakeAccounts) GetDoctor(_ context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	if f.doctor == nil || f.doctor.ID != id || f.doctor.HospitalID != hospitalID {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return f.doctor, nil
}

func newTestService(t *testing.T) (*Service, uuid.UUID, uuid.UUID) {
	t.Helper()

	hospitalID := uuid.New()
	doctor := &model.Account{
		Base:       model.Base{ID: uuid.New()},
		HospitalID: hospitalID,
		Name:       "Dr. Rao",
	}

	service := NewService(newFakeAvailability(), &fakeAccounts{doctor: doctor})
	service.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return service, hospitalID, doctor.ID
}

func TestMarkUnavailableCreatesRecord(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	record, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, doctorID, record.DoctorID)
	assert.True(t, record.Dates.Contains("2025-03-15"))
	assert.Equal(t, 1, record.Dates.Len())
}

func TestMarkUnavailableAppendsToExistingRecord(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	record, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-12", "2025-03-15"}, record.Dates.Dates())
}

func TestMarkUnavailableTwiceRejected(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	_, err = service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrAlreadyUnavailable))
}

func TestMarkUnavailableRejectsBadDates(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "15-03-2025")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrMalformedDate))

	_, err = service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-01")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDateInPast))
}

func TestMarkUnavailableUnknownDoctor(t *testing.T) {
	service, hospitalID, _ := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, uuid.New(), "2025-03-15")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestMarkAvailableRoundTrip(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	record, err := service.MarkAvailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Dates.Len())
}

func TestMarkAvailablePastDateStillRemovable(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	// The holiday has since passed; cleaning it up must still work.
	service.now = func() time.Time {
		return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	}

	record, err := service.MarkAvailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Dates.Len())
}

func TestMarkAvailableRejectsMalformedDate(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	_, err = service.MarkAvailable(context.Background(), hospitalID, doctorID, "15-03-2025")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrMalformedDate))
}

func TestMarkAvailableNoRecord(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkAvailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNoRecordExists))
}

func TestMarkAvailableDateNotInSet(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	_, err := service.MarkUnavailable(context.Background(), hospitalID, doctorID, "2025-03-15")
	require.NoError(t, err)

	_, err = service.MarkAvailable(context.Background(), hospitalID, doctorID, "2025-03-16")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestGetWithoutRecordReturnsEmptySet(t *testing.T) {
	service, hospitalID, doctorID := newTestService(t)

	record, err := service.Get(context.Background(), hospitalID, doctorID)
	require.NoError(t, err)
	assert.Equal(t, 0, record.Dates.Len())
	assert.Equal(t, doctorID, record.DoctorID)
}
