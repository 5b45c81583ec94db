package account

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

type fakeAccounts struct {
	repository.AccountRepository
	records map[uuid.UUID]*model.Account
	roles   map[uuid.UUID]*model.Role
}

func (f *fakeAccounts) roleName(roleID uuid.UUID) string {
	if r, ok := f.roles[roleID]; ok {
		return r.Name
	}
	return ""
}

func (f *fakeAccounts) Create(_ context.Context, account *model.Account) error {
	account.ID = uuid.New()
	copied := *account
	copied.RoleName = f.roleName(account.RoleID)
	f.records[account.ID] = &copied
	return nil
}

func (f *fakeAccounts) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Account, error) {
	a, ok := f.records[id]
	if !ok || a.HospitalID != hospitalID {
		return nil, apperrors.NotFound("account", nil)
	}
	copied := *a
	copied.RoleName = f.roleName(a.RoleID)
	return &copied, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.records {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccounts) Update(_ context.Context, account *model.Account) error {
	if _, ok := f.records[account.ID]; !ok {
		return apperrors.NotFound("account", nil)
	}
	copied := *account
	f.records[account.ID] = &copied
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, hospitalID, id uuid.UUID) error {
	a, ok := f.records[id]
	if !ok || a.HospitalID != hospitalID {
		return apperrors.NotFound("account", nil)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAccounts) CountAdmins(_ context.Context, hospitalID uuid.UUID) (int, error) {
	count := 0
	for _, a := range f.records {
		if a.HospitalID == hospitalID && f.roleName(a.RoleID) == model.AdminRoleName {
			count++
		}
	}
	return count, nil
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	a, ok := f.records[id]
	if !ok {
		return apperrors.NotFound("account", nil)
	}
	a.Password = hash
	return nil
}

type fakeRoles struct {
	repository.RoleRepository
	records map[uuid.UUID]*model.Role
}

func (f *fakeRoles) Get(_ context.Context, hospitalID, id uuid.UUID) (*model.Role, error) {
	r, ok := f.records[id]
	if !ok || r.HospitalID != hospitalID {
		return nil, apperrors.NotFound("role", nil)
	}
	return r, nil
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

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hashed, password string) error {
	if hashed != "hashed:"+password {
		return apperrors.New(apperrors.ErrUnauthorized, "password mismatch")
	}
	return nil
}

type fixture struct {
	service    *Service
	accounts   *fakeAccounts
	hospitalID uuid.UUID
	adminRole  *model.Role
	doctorRole *model.Role
	department *model.Department
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hospitalID := uuid.New()
	adminRole := &model.Role{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: model.AdminRoleName}
	doctorRole := &model.Role{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: model.DoctorRoleName}
	department := &model.Department{Base: model.Base{ID: uuid.New()}, HospitalID: hospitalID, Name: "cardiology", Fees: 500}

	roles := map[uuid.UUID]*model.Role{adminRole.ID: adminRole, doctorRole.ID: doctorRole}
	accounts := &fakeAccounts{records: make(map[uuid.UUID]*model.Account), roles: roles}
	service := NewService(
		accounts,
		&fakeRoles{records: roles},
		&fakeDepartments{records: map[uuid.UUID]*model.Department{department.ID: department}},
		fakeHasher{},
	)

	return &fixture{
		service:    service,
		accounts:   accounts,
		hospitalID: hospitalID,
		adminRole:  adminRole,
		doctorRole: doctorRole,
		department: department,
	}
}

func (f *fixture) create(t *testing.T, email string, roleID uuid.UUID) *model.Account {
	t.Helper()
	account, err := f.service.Create(context.Background(), f.hospitalID, &model.CreateAccountRequest{
		Name:         "Asha",
		Email:        email,
		Mobile:       "9876543210",
		Password:     "s3cret-pass",
		RoleID:       roleID,
		DepartmentID: f.department.ID,
	})
	require.NoError(t, err)
	return account
}

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)

	account := f.create(t, "Staff@Example.com", f.doctorRole.ID)
	assert.Equal(t, "staff@example.com", account.Email)
	assert.Empty(t, account.Password)
	assert.Equal(t, model.DoctorRoleName, account.RoleName)
	assert.Equal(t, "cardiology", account.DepartmentName)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.create(t, "staff@example.com", f.doctorRole.ID)

	_, err := f.service.Create(context.Background(), f.hospitalID, &model.CreateAccountRequest{
		Name:         "Other",
		Email:        "staff@example.com",
		Mobile:       "9876500000",
		Password:     "s3cret-pass",
		RoleID:       f.doctorRole.ID,
		DepartmentID: f.department.ID,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))
}

func TestCreateAccountUnknownRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), f.hospitalID, &model.CreateAccountRequest{
		Name:         "Asha",
		Email:        "staff@example.com",
		Mobile:       "9876543210",
		Password:     "s3cret-pass",
		RoleID:       uuid.New(),
		DepartmentID: f.department.ID,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestUpdateLastAdminKeepsAdminRole(t *testing.T) {
	f := newFixture(t)
	admin := f.create(t, "admin@example.com", f.adminRole.ID)

	_, err := f.service.Update(context.Background(), f.hospitalID, admin.ID, &model.UpdateAccountRequest{
		Name:         admin.Name,
		Email:        admin.Email,
		Mobile:       admin.Mobile,
		RoleID:       f.doctorRole.ID,
		DepartmentID: f.department.ID,
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	// With a second admin present the demotion goes through.
	f.create(t, "admin2@example.com", f.adminRole.ID)
	updated, err := f.service.Update(context.Background(), f.hospitalID, admin.ID, &model.UpdateAccountRequest{
		Name:         admin.Name,
		Email:        admin.Email,
		Mobile:       admin.Mobile,
		RoleID:       f.doctorRole.ID,
		DepartmentID: f.department.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DoctorRoleName, updated.RoleName)
}

func TestDeleteLastAdminRejected(t *testing.T) {
	f := newFixture(t)
	admin := f.create(t, "admin@example.com", f.adminRole.ID)

	err := f.service.Delete(context.Background(), f.hospitalID, admin.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	second := f.create(t, "admin2@example.com", f.adminRole.ID)
	assert.NoError(t, f.service.Delete(context.Background(), f.hospitalID, second.ID))
}

func TestDeleteNonAdmin(t *testing.T) {
	f := newFixture(t)
	doctor := f.create(t, "doc@example.com", f.doctorRole.ID)

	assert.NoError(t, f.service.Delete(context.Background(), f.hospitalID, doctor.ID))
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture(t)
	account := f.create(t, "staff@example.com", f.doctorRole.ID)

	err := f.service.UpdatePassword(context.Background(), f.hospitalID, account.ID, &model.UpdatePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "brand-new-pass",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))

	err = f.service.UpdatePassword(context.Background(), f.hospitalID, account.ID, &model.UpdatePasswordRequest{
		OldPassword: "s3cret-pass",
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:brand-new-pass", f.accounts.records[account.ID].Password)
}
