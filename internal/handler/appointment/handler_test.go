package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medevel/hospital-api/internal/model"
	"github.com/medevel/hospital-api/internal/repository"
	availabilitysvc "github.com/medevel/hospital-api/internal/service/availability"
	"github.com/medevel/hospital-api/pkg/auth"
	apperrors "github.com/medevel/hospital-api/pkg/errors"
)

type fakeAvailabilityRepo struct {
	repository.AvailabilityRepository
	records map[uuid.UUID]*model.DoctorAvailability
}

func (f *fakeAvailabilityRepo) Get(_ context.Context, hospitalID, doctorID uuid.UUID) (*model.DoctorAvailability, error) {
	a, ok := f.records[doctorID]
	if !ok || a.HospitalID != hospitalID {
		return nil, apperrors.NotFound("availability record", nil)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, availability *model.DoctorAvailability) error {
	availability.ID = uuid.New()
	copied := *availability
	f.records[availability.DoctorID] = &copied
	return nil
}

type fakeDoctorAccounts struct {
	repository.AccountRepository
	doctors map[uuid.UUID]*model.Account
}

func (f *fakeDoctorAccounts) GetDoctor(_ context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	d, ok := f.doctors[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}

// Holiday mutations must act on the signed-in doctor's record; a
// doctor_id in the body is ignored.
func TestMarkUnavailableUsesCallerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hospitalID := uuid.New()
	caller := &model.Account{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: "Dr. Rao"}
	other := &model.Account{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: "Dr. Iyer"}

	repo := &fakeAvailabilityRepo{records: make(map[uuid.UUID]*model.DoctorAvailability)}
	accounts := &fakeDoctorAccounts{doctors: map[uuid.UUID]*model.Account{
		caller.ID: caller,
		other.ID:  other,
	}}
	h := NewHandler(nil, availabilitysvc.NewService(repo, accounts))

	body := `{"doctor_id": "` + other.ID.String() + `", "date": "2099-06-01"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/unavailable", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("claims", &auth.Claims{AccountID: caller.ID, HospitalID: hospitalID, Role: model.DoctorRoleName})

	h.MarkUnavailable(c)

	require.Equal(t, http.StatusOK, w.Code)
	record, ok := repo.records[caller.ID]
	require.True(t, ok)
	assert.True(t, record.Dates.Contains("2099-06-01"))
	_, leaked := repo.records[other.ID]
	assert.False(t, leaked)
}
